package services

import (
	"context"
	"errors"
	"time"

	"github.com/granitoskate/backoffice/internal/models"
	"gorm.io/gorm"
)

type GormAdminStore struct {
	db *gorm.DB
}

func NewGormAdminStore(db *gorm.DB) *GormAdminStore {
	return &GormAdminStore{db: db}
}

func (s *GormAdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *GormAdminStore) FindByID(ctx context.Context, id uint) (*models.Admin, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormAdminStore) first(ctx context.Context, query string, arg interface{}) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where(query, arg).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *GormAdminStore) Create(ctx context.Context, a *models.Admin) error {
	err := s.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (s *GormAdminStore) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("ultimo_login", at).Error
}

func (s *GormAdminStore) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("password", hash).Error
}
