package resenas

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("resena not found")

const columns = `id, nombre_cliente, id_producto, valoracion, comentario, fecha_creacion`

type Store interface {
	ListByProducto(ctx context.Context, idProducto string) ([]Resena, error)
	List(ctx context.Context, limit int) ([]Resena, error)
	Create(ctx context.Context, r *Resena) error
	Update(ctx context.Context, id uint, valoracion int, comentario *string) (*Resena, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListByProducto(ctx context.Context, idProducto string) ([]Resena, error) {
	return s.store.ListByProducto(ctx, idProducto)
}

func (s *Service) List(ctx context.Context, limit int) ([]Resena, error) {
	return s.store.List(ctx, limit)
}

func (s *Service) Create(ctx context.Context, req *CrearResenaRequest) (*Resena, error) {
	r := &Resena{
		NombreCliente: req.NombreCliente,
		IDProducto:    req.IDProducto,
		Valoracion:    req.Valoracion.Int(),
		Comentario:    req.Comentario,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, id uint, req *ActualizarResenaRequest) (*Resena, error) {
	return s.store.Update(ctx, id, req.Valoracion.Int(), req.Comentario)
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

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// SQLStore reads and writes the theme database's resenas table.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListByProducto(ctx context.Context, idProducto string) ([]Resena, error) {
	out := []Resena{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+columns+` FROM resenas WHERE id_producto = $1 ORDER BY fecha_creacion DESC`, idProducto)
	return out, err
}

func (s *SQLStore) List(ctx context.Context, limit int) ([]Resena, error) {
	out := []Resena{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+columns+` FROM resenas ORDER BY fecha_creacion DESC LIMIT $1`, limit)
	return out, err
}

func (s *SQLStore) Create(ctx context.Context, r *Resena) error {
	return s.db.QueryRowxContext(ctx,
		`INSERT INTO resenas (nombre_cliente, id_producto, valoracion, comentario)
		VALUES ($1, $2, $3, $4) RETURNING id, fecha_creacion`,
		r.NombreCliente, r.IDProducto, r.Valoracion, r.Comentario,
	).Scan(&r.ID, &r.FechaCreacion)
}

func (s *SQLStore) Update(ctx context.Context, id uint, valoracion int, comentario *string) (*Resena, error) {
	var r Resena
	err := s.db.QueryRowxContext(ctx,
		`UPDATE resenas SET valoracion = $1, comentario = $2 WHERE id = $3 RETURNING `+columns,
		valoracion, comentario, id,
	).StructScan(&r)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLStore) Delete(ctx context.Context, id uint) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resenas WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *SQLStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM resenas`)
	return n, err
}
