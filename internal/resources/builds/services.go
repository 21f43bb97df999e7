package builds

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("build not found")

type Store interface {
	ListByUsuario(ctx context.Context, usuarioID uint) ([]Build, error)
	Create(ctx context.Context, b *Build) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, usuarioID uint) ([]Build, error) {
	return s.store.ListByUsuario(ctx, usuarioID)
}

func (s *Service) Create(ctx context.Context, usuarioID uint, req *CrearBuildRequest) (*Build, error) {
	otros := datatypes.JSONMap(req.OtrosComponentes)
	if otros == nil {
		otros = datatypes.JSONMap{}
	}
	b := &Build{
		UsuarioID:        usuarioID,
		NombreBuild:      req.NombreBuild,
		TablaID:          req.TablaID,
		RuedasID:         emptyToNil(req.RuedasID),
		EjesID:           emptyToNil(req.EjesID),
		GripID:           emptyToNil(req.GripID),
		OtrosComponentes: otros,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) ListByUsuario(ctx context.Context, usuarioID uint) ([]Build, error) {
	var out []Build
	err := g.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("fecha_creacion DESC").
		Find(&out).Error
	return out, err
}

func (g *GormStore) Create(ctx context.Context, b *Build) error {
	return g.db.WithContext(ctx).Create(b).Error
}

func (g *GormStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&Build{}, id)
	return res.RowsAffected > 0, res.Error
}
