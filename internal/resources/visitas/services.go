package visitas

import (
	"context"

	"gorm.io/gorm"
)

type Store interface {
	Create(ctx context.Context, v *Visita) error
	ListByProducto(ctx context.Context, idProducto string, limit int) ([]VisitaConUsuario, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Record(ctx context.Context, usuarioID uint, idProducto string) (*Visita, error) {
	v := &Visita{UsuarioID: usuarioID, IDProducto: idProducto}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListByProducto(ctx context.Context, idProducto string, limit int) ([]VisitaConUsuario, error) {
	return s.store.ListByProducto(ctx, idProducto, limit)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Create(ctx context.Context, v *Visita) error {
	return g.db.WithContext(ctx).Create(v).Error
}

func (g *GormStore) ListByProducto(ctx context.Context, idProducto string, limit int) ([]VisitaConUsuario, error) {
	var out []VisitaConUsuario
	err := g.db.WithContext(ctx).
		Table("visitas AS v").
		Select("v.*, u.shopify_customer_id, u.email, u.nombre").
		Joins("JOIN usuarios AS u ON u.id = v.usuario_id").
		Where("v.id_producto = ?", idProducto).
		Order("v.fecha_visita DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
