// Package gormstore implements the store interfaces on top of GORM/Postgres.
package gormstore

import (
	"context"
	"errors"

	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/store"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", user.Username).First(&existing).Error
		if err == nil {
			return store.ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(user).Error
	})
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

type ImageStore struct {
	db *gorm.DB
}

func NewImageStore(db *gorm.DB) *ImageStore {
	return &ImageStore{db: db}
}

func (s *ImageStore) Create(ctx context.Context, image *models.Image) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Image
		err := tx.Where("filename = ?", image.Filename).First(&existing).Error
		if err == nil {
			return store.ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(image).Error
	})
}

func (s *ImageStore) FindByFilename(ctx context.Context, filename string) (*models.Image, error) {
	var image models.Image
	if err := s.db.WithContext(ctx).Where("filename = ?", filename).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (s *ImageStore) DeleteByFilename(ctx context.Context, filename string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("filename = ?", filename).Delete(&models.Image{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *ImageStore) List(ctx context.Context) ([]models.Image, error) {
	var images []models.Image
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ImageStore) Latest(ctx context.Context, n int) ([]models.Image, error) {
	var images []models.Image
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(n).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ImageStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Image{}).Count(&count).Error
	return count, err
}
