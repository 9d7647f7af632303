package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aurelhaus/backend/internal/config"
	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/router"
	"github.com/aurelhaus/backend/internal/services"
	"github.com/aurelhaus/backend/internal/store"
	"github.com/aurelhaus/backend/internal/store/gormstore"
	"github.com/aurelhaus/backend/internal/store/memstore"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize stores
	var users store.Users
	var images store.Images
	if cfg.UseMemoryStore {
		log.Println("USE_MEMORY_STORE enabled: running on the in-memory store")
		users = memstore.NewUserStore()
		images = memstore.NewImageStore()
	} else {
		db, err := models.InitDB(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := models.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		users = gormstore.NewUserStore(db)
		images = gormstore.NewImageStore(db)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	authService := services.NewAuthService(users, redisClient, cfg)
	storageService := services.NewStorageService(cfg)
	galleryService := services.NewGalleryService(images, storageService, cfg)
	emailService := services.NewEmailService(cfg)
	contactService := services.NewContactService(emailService)

	// Create the admin account first so it gets ID 1
	if err := authService.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Setup router
	r := router.New(cfg, redisClient, authService, galleryService, storageService, contactService)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
