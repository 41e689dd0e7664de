package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Create(ctx context.Context, u *models.User) error {
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return wrap(err)
	}
	return nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *GormStore) SetRefreshFingerprint(ctx context.Context, id uuid.UUID, fingerprint *string) error {
	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("refresh_token_hash", fingerprint)
	if result.Error != nil {
		return wrap(result.Error)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("email").Find(&users).Error; err != nil {
		return nil, wrap(err)
	}
	return users, nil
}

func wrap(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
