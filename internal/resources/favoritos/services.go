package favoritos

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("favorito not found")

type Store interface {
	ListByUsuario(ctx context.Context, usuarioID uint) ([]Favorito, error)
	// Find returns nil, nil when the pair is not stored.
	Find(ctx context.Context, usuarioID uint, idProducto string) (*Favorito, error)
	Create(ctx context.Context, f *Favorito) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, usuarioID uint) ([]Favorito, error) {
	return s.store.ListByUsuario(ctx, usuarioID)
}

// Add stores the (usuario, producto) pair once. Re-adding returns the stored
// row with created=false.
func (s *Service) Add(ctx context.Context, usuarioID uint, idProducto, nombre string) (*Favorito, bool, error) {
	existing, err := s.store.Find(ctx, usuarioID, idProducto)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	f := &Favorito{UsuarioID: usuarioID, IDProducto: idProducto, NombreProducto: nombre}
	if err := s.store.Create(ctx, f); err != nil {
		// Lost a race with a concurrent insert of the same pair.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.store.Find(ctx, usuarioID, idProducto)
			if ferr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return f, true, nil
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

func (g *GormStore) ListByUsuario(ctx context.Context, usuarioID uint) ([]Favorito, error) {
	var out []Favorito
	err := g.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("fecha_agregado DESC").
		Find(&out).Error
	return out, err
}

func (g *GormStore) Find(ctx context.Context, usuarioID uint, idProducto string) (*Favorito, error) {
	var f Favorito
	err := g.db.WithContext(ctx).
		Where("usuario_id = ? AND id_producto = ?", usuarioID, idProducto).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (g *GormStore) Create(ctx context.Context, f *Favorito) error {
	return g.db.WithContext(ctx).Create(f).Error
}

func (g *GormStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&Favorito{}, id)
	return res.RowsAffected > 0, res.Error
}
