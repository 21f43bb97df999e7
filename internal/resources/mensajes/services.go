package mensajes

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("mensaje not found")
	ErrInvalidEstado = errors.New("invalid estado")
)

func validEstado(e string) bool {
	return e == EstadoPendiente || e == EstadoRespondido || e == EstadoCerrado
}

type Store interface {
	Create(ctx context.Context, m *Mensaje) error
	List(ctx context.Context, estado string) ([]MensajeConUsuario, error)
	Update(ctx context.Context, id uint, estado string, respuesta *string) (*Mensaje, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, usuarioID uint, asunto, contenido string) (*Mensaje, error) {
	m := &Mensaje{UsuarioID: usuarioID, Asunto: asunto, Contenido: contenido, Estado: EstadoPendiente}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns messages newest first, optionally filtered by estado.
func (s *Service) List(ctx context.Context, estado string) ([]MensajeConUsuario, error) {
	if estado != "" && !validEstado(estado) {
		return nil, ErrInvalidEstado
	}
	return s.store.List(ctx, estado)
}

func (s *Service) Update(ctx context.Context, id uint, estado string, respuesta *string) (*Mensaje, error) {
	if !validEstado(estado) {
		return nil, ErrInvalidEstado
	}
	return s.store.Update(ctx, id, estado, respuesta)
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

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Create(ctx context.Context, m *Mensaje) error {
	return g.db.WithContext(ctx).Create(m).Error
}

func (g *GormStore) List(ctx context.Context, estado string) ([]MensajeConUsuario, error) {
	q := g.db.WithContext(ctx).
		Table("mensajes AS m").
		Select("m.*, u.shopify_customer_id, u.email, u.nombre").
		Joins("JOIN usuarios AS u ON u.id = m.usuario_id")
	if estado != "" {
		q = q.Where("m.estado = ?", estado)
	}

	var out []MensajeConUsuario
	err := q.Order("m.fecha_envio DESC").Scan(&out).Error
	return out, err
}

func (g *GormStore) Update(ctx context.Context, id uint, estado string, respuesta *string) (*Mensaje, error) {
	updates := map[string]interface{}{"estado": estado}
	if respuesta != nil {
		updates["respuesta_admin"] = *respuesta
	}
	res := g.db.WithContext(ctx).Model(&Mensaje{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var m Mensaje
	if err := g.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (g *GormStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&Mensaje{}, id)
	return res.RowsAffected > 0, res.Error
}
