// Package router assembles the HTTP surface of the site.
package router

import (
	"net/http"

	"github.com/aurelhaus/backend/internal/config"
	"github.com/aurelhaus/backend/internal/handlers"
	"github.com/aurelhaus/backend/internal/middleware"
	"github.com/aurelhaus/backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New builds the gin engine with all routes and middleware attached.
func New(
	cfg *config.Config,
	redisClient *redis.Client,
	authService *services.AuthService,
	galleryService *services.GalleryService,
	storageService *services.StorageService,
	contactService *services.ContactService,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimiter(redisClient, cfg))

	authHandler := handlers.NewAuthHandler(authService)
	publicHandler := handlers.NewPublicHandler(galleryService, storageService, cfg.HomeLatestCount)
	contactHandler := handlers.NewContactHandler(contactService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Public routes
	r.GET("/", publicHandler.Home)
	r.GET("/gallery", publicHandler.Gallery)
	r.GET("/uploads/:filename", publicHandler.ServeUpload)
	r.GET("/thumbs/:filename", publicHandler.ServeThumb)
	r.POST("/contact", contactHandler.Submit)
	r.POST("/register", authHandler.Register)
	r.POST("/admin-login", authHandler.Login)

	// Session routes
	r.GET("/logout", middleware.Auth(authService), authHandler.Logout)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.Auth(authService))
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/admin-dashboard", galleryHandler.Dashboard)
		admin.POST("/admin-dashboard", galleryHandler.Upload)
		admin.POST("/delete/:filename", galleryHandler.Delete)
		admin.DELETE("/delete/:filename", galleryHandler.Delete)
	}

	return r
}
