// Package store defines the persistence boundary of the application.
// Services receive these interfaces explicitly instead of reaching for a
// framework-managed database handle; gormstore is the Postgres-backed
// implementation and memstore the in-memory one.
package store

import (
	"context"
	"errors"

	"github.com/aurelhaus/backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("record already exists")
)

// Users persists account records.
type Users interface {
	// Create inserts a new user. Returns ErrConflict if the username is taken.
	Create(ctx context.Context, user *models.User) error
	// FindByUsername returns ErrNotFound if no such user exists.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// Images persists the gallery catalog.
type Images interface {
	// Create inserts a catalog entry. Returns ErrConflict if the filename
	// is already catalogued.
	Create(ctx context.Context, image *models.Image) error
	// FindByFilename returns ErrNotFound if the filename is not catalogued.
	FindByFilename(ctx context.Context, filename string) (*models.Image, error)
	// DeleteByFilename removes a catalog entry. Returns ErrNotFound if absent.
	DeleteByFilename(ctx context.Context, filename string) error
	// List returns all entries, newest first.
	List(ctx context.Context) ([]models.Image, error)
	// Latest returns the n most recently inserted entries, newest first.
	Latest(ctx context.Context, n int) ([]models.Image, error)
	Count(ctx context.Context) (int64, error)
}
