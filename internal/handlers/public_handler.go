package handlers

import (
	"net/http"

	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/services"
	"github.com/aurelhaus/backend/pkg/validation"
	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	galleryService *services.GalleryService
	storageService *services.StorageService
	latestCount    int
}

func NewPublicHandler(galleryService *services.GalleryService, storageService *services.StorageService, latestCount int) *PublicHandler {
	return &PublicHandler{
		galleryService: galleryService,
		storageService: storageService,
		latestCount:    latestCount,
	}
}

// Home returns the latest images for the landing page
// GET /
func (h *PublicHandler) Home(c *gin.Context) {
	images, err := h.galleryService.Latest(c.Request.Context(), h.latestCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": imageList(images)})
}

// Gallery returns the full catalog
// GET /gallery
func (h *PublicHandler) Gallery(c *gin.Context) {
	images, err := h.galleryService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": imageList(images)})
}

// ServeUpload serves an original image file
// GET /uploads/:filename
func (h *PublicHandler) ServeUpload(c *gin.Context) {
	h.serveAsset(c, services.NamespaceUploads)
}

// ServeThumb serves a thumbnail
// GET /thumbs/:filename
func (h *PublicHandler) ServeThumb(c *gin.Context) {
	h.serveAsset(c, services.NamespaceThumbs)
}

func (h *PublicHandler) serveAsset(c *gin.Context, namespace string) {
	name := c.Param("filename")
	// Re-sanitizing rejects traversal attempts: stored names are already
	// sanitized, so a mismatch means the request asked for something else.
	if sanitized := validation.SanitizeFilename(name); sanitized == "" || sanitized != name {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	if !h.storageService.Exists(namespace, name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.Header("Content-Type", services.ContentTypeByExtension(name))
	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(h.storageService.Path(namespace, name))
}

func imageList(images []models.Image) []gin.H {
	list := make([]gin.H, len(images))
	for i, img := range images {
		list[i] = gin.H{
			"id":         img.ID,
			"title":      img.Title,
			"filename":   img.Filename,
			"url":        "/uploads/" + img.Filename,
			"thumb_url":  "/thumbs/" + img.Filename,
			"created_at": img.CreatedAt,
		}
	}
	return list
}
