package audit

import (
	"context"

	"github.com/granitoskate/backoffice/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type Filter struct {
	Limit  int
	Offset int
	Actor  string
	Tipo   string
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, entry *models.AccionAdmin) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// List returns the newest entries first.
func (s *GormStore) List(ctx context.Context, f Filter) ([]models.AccionAdmin, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.AccionAdmin{})
	if f.Actor != "" {
		q = q.Where("admin_nombre = ?", f.Actor)
	}
	if f.Tipo != "" {
		q = q.Where("tipo_accion = ?", f.Tipo)
	}

	var entries []models.AccionAdmin
	err := q.Order("fecha_accion DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}
