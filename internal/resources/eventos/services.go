package eventos

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("evento not found")

type Store interface {
	ListFrom(ctx context.Context, day string) ([]Evento, error)
	Create(ctx context.Context, e *Evento) error
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Upcoming lists events that have not ended yet, soonest first. "Today" is
// the UTC calendar date.
func (s *Service) Upcoming(ctx context.Context) ([]Evento, error) {
	return s.store.ListFrom(ctx, s.now().UTC().Format(dateLayout))
}

func (s *Service) Create(ctx context.Context, req *CrearEventoRequest) (*Evento, error) {
	inicio, fin := req.Dates()
	e := &Evento{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		FechaInicio: inicio,
		FechaFin:    fin,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
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

// SQLStore reads and writes the theme database's eventos table.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListFrom(ctx context.Context, day string) ([]Evento, error) {
	out := []Evento{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, titulo, descripcion, fecha_inicio, fecha_fin
		FROM eventos WHERE fecha_fin >= $1 ORDER BY fecha_inicio ASC`, day)
	return out, err
}

func (s *SQLStore) Create(ctx context.Context, e *Evento) error {
	return s.db.QueryRowxContext(ctx,
		`INSERT INTO eventos (titulo, descripcion, fecha_inicio, fecha_fin)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Titulo, e.Descripcion, e.FechaInicio.Format(dateLayout), e.FechaFin.Format(dateLayout),
	).Scan(&e.ID)
}

func (s *SQLStore) Delete(ctx context.Context, id uint) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM eventos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *SQLStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM eventos`)
	return n, err
}
