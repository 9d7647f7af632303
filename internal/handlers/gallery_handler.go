package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/aurelhaus/backend/internal/services"
	"github.com/aurelhaus/backend/internal/store"
	"github.com/gin-gonic/gin"
)

// GalleryHandler serves the admin dashboard: uploading and deleting
// gallery images. All routes sit behind Auth + AdminOnly.
type GalleryHandler struct {
	galleryService *services.GalleryService
}

func NewGalleryHandler(galleryService *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// Dashboard lists the full catalog for the admin view
// GET /admin-dashboard
func (h *GalleryHandler) Dashboard(c *gin.Context) {
	images, err := h.galleryService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": imageList(images)})
}

// Upload handles an image upload
// POST /admin-dashboard
// Multipart form: file (required), title (required)
func (h *GalleryHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	title := c.PostForm("title")

	image, err := h.galleryService.Upload(c.Request.Context(), title, data, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrEmptyFile),
			errors.Is(err, services.ErrUnsafeFilename),
			errors.Is(err, services.ErrUnsupportedFormat),
			errors.Is(err, services.ErrImageTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         image.ID,
		"title":      image.Title,
		"filename":   image.Filename,
		"url":        "/uploads/" + image.Filename,
		"thumb_url":  "/thumbs/" + image.Filename,
		"created_at": image.CreatedAt,
	})
}

// Delete removes a catalog entry and its stored files
// POST|DELETE /delete/:filename
func (h *GalleryHandler) Delete(c *gin.Context) {
	filename := c.Param("filename")

	if err := h.galleryService.Delete(c.Request.Context(), filename); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted successfully"})
}
