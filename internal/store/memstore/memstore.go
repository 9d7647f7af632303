// Package memstore is an in-memory implementation of the store interfaces,
// used for local development without a database and throughout the tests.
// Mutations are serialized behind a mutex.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/store"
)

type UserStore struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID: 1,
		users:  make(map[uint]models.User),
	}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return store.ErrConflict
		}
	}

	user.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	user := u
	return &user, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

type ImageStore struct {
	mu     sync.RWMutex
	nextID uint
	images map[uint]models.Image
}

func NewImageStore() *ImageStore {
	return &ImageStore{
		nextID: 1,
		images: make(map[uint]models.Image),
	}
}

func (s *ImageStore) Create(ctx context.Context, image *models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, img := range s.images {
		if img.Filename == image.Filename {
			return store.ErrConflict
		}
	}

	image.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	image.CreatedAt = now
	image.UpdatedAt = now
	s.images[image.ID] = *image
	return nil
}

func (s *ImageStore) FindByFilename(ctx context.Context, filename string) (*models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, img := range s.images {
		if img.Filename == filename {
			image := img
			return &image, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *ImageStore) DeleteByFilename(ctx context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, img := range s.images {
		if img.Filename == filename {
			delete(s.images, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *ImageStore) List(ctx context.Context) ([]models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDesc(), nil
}

func (s *ImageStore) Latest(ctx context.Context, n int) ([]models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	images := s.sortedDesc()
	if n < len(images) {
		images = images[:n]
	}
	return images, nil
}

func (s *ImageStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.images)), nil
}

func (s *ImageStore) sortedDesc() []models.Image {
	images := make([]models.Image, 0, len(s.images))
	for _, img := range s.images {
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].ID > images[j].ID
	})
	return images
}
