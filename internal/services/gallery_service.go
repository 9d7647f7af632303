package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aurelhaus/backend/internal/config"
	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/store"
	"github.com/aurelhaus/backend/pkg/validation"
	"github.com/disintegration/gift"
	"github.com/google/uuid"
)

var (
	ErrTitleRequired     = errors.New("title is required")
	ErrEmptyFile         = errors.New("file is empty")
	ErrUnsafeFilename    = errors.New("filename is not usable")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.New("image too large")
)

const thumbnailJPEGQuality = 90

// GalleryService owns the image asset lifecycle: upload (original +
// thumbnail + catalog row), listing and deletion. The catalog row and the
// two stored files are created and removed together; a failure at any step
// of an upload rolls back everything written so far.
type GalleryService struct {
	images  store.Images
	storage *StorageService
	cfg     *config.Config
}

func NewGalleryService(images store.Images, storage *StorageService, cfg *config.Config) *GalleryService {
	return &GalleryService{
		images:  images,
		storage: storage,
		cfg:     cfg,
	}
}

// Upload validates and stores an uploaded image, generates its thumbnail
// and inserts the catalog record.
func (s *GalleryService) Upload(ctx context.Context, title string, data []byte, originalFilename string) (*models.Image, error) {
	title = validation.SanitizeString(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.cfg.UploadMaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(data), s.cfg.UploadMaxImageSize)
	}

	filename := validation.SanitizeFilename(originalFilename)
	if filename == "" {
		return nil, ErrUnsafeFilename
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
	if !allowedExts[ext] {
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: content type %s", ErrUnsupportedFormat, mimeType)
	}

	// Decode before writing anything. A corrupt upload must leave no
	// stored bytes and no catalog row.
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	// Rename on collision instead of overwriting an existing asset.
	if s.storage.Exists(NamespaceUploads, filename) {
		filename = renameOnCollision(filename)
	}

	if _, _, err := s.storage.Save(ctx, NamespaceUploads, filename, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to store original: %w", err)
	}

	thumb, err := s.renderThumbnail(src, ext)
	if err != nil {
		_ = s.storage.Remove(NamespaceUploads, filename)
		return nil, fmt.Errorf("failed to render thumbnail: %w", err)
	}
	if _, _, err := s.storage.Save(ctx, NamespaceThumbs, filename, bytes.NewReader(thumb)); err != nil {
		_ = s.storage.Remove(NamespaceUploads, filename)
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	record := &models.Image{
		Title:    title,
		Filename: filename,
	}
	if err := s.images.Create(ctx, record); err != nil {
		_ = s.storage.Remove(NamespaceUploads, filename)
		_ = s.storage.Remove(NamespaceThumbs, filename)
		return nil, fmt.Errorf("failed to create catalog record: %w", err)
	}

	return record, nil
}

// Delete removes the catalog entry and both stored files. A missing catalog
// entry is store.ErrNotFound and mutates nothing; files already absent on
// disk are skipped without error.
func (s *GalleryService) Delete(ctx context.Context, filename string) error {
	if _, err := s.images.FindByFilename(ctx, filename); err != nil {
		return err
	}
	if err := s.images.DeleteByFilename(ctx, filename); err != nil {
		return err
	}

	if err := s.storage.Remove(NamespaceUploads, filename); err != nil {
		return err
	}
	return s.storage.Remove(NamespaceThumbs, filename)
}

// List returns all catalog entries, newest first.
func (s *GalleryService) List(ctx context.Context) ([]models.Image, error) {
	return s.images.List(ctx)
}

// Latest returns the n most recent catalog entries, newest first.
func (s *GalleryService) Latest(ctx context.Context, n int) ([]models.Image, error) {
	return s.images.Latest(ctx, n)
}

// renderThumbnail resizes to the fixed thumbnail resolution and re-encodes
// in the source format.
func (s *GalleryService) renderThumbnail(src image.Image, ext string) ([]byte, error) {
	g := gift.New(gift.ResizeToFill(s.cfg.ThumbnailWidth, s.cfg.ThumbnailHeight, gift.LanczosResampling, gift.CenterAnchor))
	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)

	var buf bytes.Buffer
	switch ext {
	case ".png":
		if err := png.Encode(&buf, dst); err != nil {
			return nil, err
		}
	case ".gif":
		if err := gif.Encode(&buf, dst, nil); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// renameOnCollision appends a short random suffix before the extension.
func renameOnCollision(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s%s", base, suffix, ext)
}
