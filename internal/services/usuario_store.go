package services

import (
	"context"
	"errors"

	"github.com/granitoskate/backoffice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUsuarioStore struct {
	db *gorm.DB
}

func NewGormUsuarioStore(db *gorm.DB) *GormUsuarioStore {
	return &GormUsuarioStore{db: db}
}

func (s *GormUsuarioStore) FindByShopifyID(ctx context.Context, shopifyCustomerID string) (*models.Usuario, error) {
	var u models.Usuario
	err := s.db.WithContext(ctx).Where("shopify_customer_id = ?", shopifyCustomerID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUsuarioNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUsuarioStore) CreateIfAbsent(ctx context.Context, u *models.Usuario) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "shopify_customer_id"}}, DoNothing: true}).
		Create(u)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	existing, err := s.FindByShopifyID(ctx, u.ShopifyCustomerID)
	if err != nil {
		return false, err
	}
	*u = *existing
	return false, nil
}

func (s *GormUsuarioStore) Upsert(ctx context.Context, u *models.Usuario, reactivate bool) error {
	cols := []string{"email", "nombre"}
	if reactivate {
		cols = append(cols, "activo")
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shopify_customer_id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(u).Error
}

func (s *GormUsuarioStore) Deactivate(ctx context.Context, shopifyCustomerID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Where("shopify_customer_id = ?", shopifyCustomerID).
		Update("activo", false)
	return res.RowsAffected > 0, res.Error
}

func (s *GormUsuarioStore) List(ctx context.Context, limit, offset int) ([]models.Usuario, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Usuario{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var usuarios []models.Usuario
	err := s.db.WithContext(ctx).
		Order("fecha_registro DESC").
		Limit(limit).Offset(offset).
		Find(&usuarios).Error
	return usuarios, total, err
}
