package encuestas

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("encuesta not found")
	ErrDuplicate = errors.New("encuesta already exists for this order")
)

type Store interface {
	Exists(ctx context.Context, usuarioID uint, idPedido string) (bool, error)
	Create(ctx context.Context, e *Encuesta) error
	List(ctx context.Context) ([]EncuestaConUsuario, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create rejects a second survey for the same (usuario, pedido) pair
// before inserting anything.
func (s *Service) Create(ctx context.Context, usuarioID uint, req *CrearEncuestaRequest) (*Encuesta, error) {
	exists, err := s.store.Exists(ctx, usuarioID, req.IDPedido.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	e := &Encuesta{
		UsuarioID:    usuarioID,
		IDPedido:     req.IDPedido.String(),
		Satisfaccion: req.Satisfaccion.Int(),
		Comentario:   req.Comentario,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]EncuestaConUsuario, error) {
	return s.store.List(ctx)
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

func (g *GormStore) Exists(ctx context.Context, usuarioID uint, idPedido string) (bool, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&Encuesta{}).
		Where("usuario_id = ? AND id_pedido = ?", usuarioID, idPedido).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (g *GormStore) Create(ctx context.Context, e *Encuesta) error {
	return g.db.WithContext(ctx).Create(e).Error
}

func (g *GormStore) List(ctx context.Context) ([]EncuestaConUsuario, error) {
	var out []EncuestaConUsuario
	err := g.db.WithContext(ctx).
		Table("encuestas AS e").
		Select("e.*, u.shopify_customer_id, u.email, u.nombre").
		Joins("JOIN usuarios AS u ON u.id = e.usuario_id").
		Order("e.fecha_creacion DESC").
		Scan(&out).Error
	return out, err
}

func (g *GormStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&Encuesta{}, id)
	return res.RowsAffected > 0, res.Error
}
