package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aurelhaus/backend/internal/config"
)

// Storage namespaces. Originals and thumbnails live side by side under the
// local assets path.
const (
	NamespaceUploads = "uploads"
	NamespaceThumbs  = "thumbs"
)

// StorageService stores gallery assets on the local filesystem.
type StorageService struct {
	cfg *config.Config
}

func NewStorageService(cfg *config.Config) *StorageService {
	// ensure both namespaces exist
	_ = os.MkdirAll(filepath.Join(cfg.LocalAssetsPath, NamespaceUploads), 0o755)
	_ = os.MkdirAll(filepath.Join(cfg.LocalAssetsPath, NamespaceThumbs), 0o755)
	return &StorageService{cfg: cfg}
}

// Path returns the absolute path of a file in a namespace.
func (s *StorageService) Path(namespace, name string) string {
	return filepath.Join(s.cfg.LocalAssetsPath, namespace, name)
}

// Exists reports whether a file is present in a namespace.
func (s *StorageService) Exists(namespace, name string) bool {
	_, err := os.Stat(s.Path(namespace, name))
	return err == nil
}

// Save writes an incoming stream to a namespace. The write goes through a
// .part file and a rename so a failed write never leaves a half-written
// asset behind.
func (s *StorageService) Save(ctx context.Context, namespace, name string, r io.Reader) (string, int64, error) {
	absPath := s.Path(namespace, name)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", 0, err
	}

	tmp := absPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		_ = os.Remove(tmp)
		return "", 0, err
	}

	if err := f.Sync(); err != nil {
		_ = os.Remove(tmp)
		return "", 0, err
	}

	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return "", 0, err
	}

	return absPath, n, nil
}

// Remove deletes a file from a namespace. A file that is already absent is
// not an error; cleanup is best-effort.
func (s *StorageService) Remove(namespace, name string) error {
	err := os.Remove(s.Path(namespace, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s/%s: %w", namespace, name, err)
	}
	return nil
}

// ContentTypeByExtension returns the content type for a stored asset.
func ContentTypeByExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
