package services

import (
	"context"
	"fmt"

	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Counter counts rows of a table held outside the app database.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type LogReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AccionAdmin, error)
}

type AdminService struct {
	db      *gorm.DB
	resenas Counter
	eventos Counter
	log     LogReader
}

func NewAdminService(db *gorm.DB, resenas, eventos Counter, log LogReader) *AdminService {
	return &AdminService{db: db, resenas: resenas, eventos: eventos, log: log}
}

// Stats runs every count concurrently; the first failure cancels the rest.
func (s *AdminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var st dto.StatsResponse
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, table string, where ...interface{}) {
		g.Go(func() error {
			q := s.db.WithContext(ctx).Table(table)
			if len(where) > 0 {
				q = q.Where(where[0], where[1:]...)
			}
			if err := q.Count(dst).Error; err != nil {
				return fmt.Errorf("count %s: %w", table, err)
			}
			return nil
		})
	}
	count(&st.Usuarios, "usuarios")
	count(&st.Mensajes.Total, "mensajes")
	count(&st.Mensajes.Pendientes, "mensajes", "estado = ?", "pendiente")
	count(&st.Builds, "build_skates")

	g.Go(func() error {
		n, err := s.resenas.Count(ctx)
		st.Resenas = n
		return err
	})
	g.Go(func() error {
		n, err := s.eventos.Count(ctx)
		st.Eventos = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *AdminService) Log(ctx context.Context, f audit.Filter) ([]models.AccionAdmin, error) {
	return s.log.List(ctx, f)
}
