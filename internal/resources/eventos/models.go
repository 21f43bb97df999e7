package eventos

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// Evento is a shop event shown by the storefront theme.
type Evento struct {
	ID          int       `db:"id" json:"id"`
	Titulo      string    `db:"titulo" json:"titulo"`
	Descripcion string    `db:"descripcion" json:"descripcion"`
	FechaInicio time.Time `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFin    time.Time `db:"fecha_fin" json:"fecha_fin"`
}

type CrearEventoRequest struct {
	Titulo      string `json:"titulo" validate:"required,max=255"`
	Descripcion string `json:"descripcion" validate:"required"`
	FechaInicio string `json:"fecha_inicio" validate:"required"`
	FechaFin    string `json:"fecha_fin" validate:"required"`

	inicio time.Time
	fin    time.Time
}

// Validate parses both dates and rejects ranges that end before they start.
func (r *CrearEventoRequest) Validate() error {
	var err error
	if r.inicio, err = parseDate(r.FechaInicio); err != nil {
		return err
	}
	if r.fin, err = parseDate(r.FechaFin); err != nil {
		return err
	}
	if r.fin.Before(r.inicio) {
		return errors.New("La fecha de inicio debe ser anterior a la fecha de fin")
	}
	return nil
}

// Dates returns the values parsed by Validate.
func (r *CrearEventoRequest) Dates() (inicio, fin time.Time) {
	return r.inicio, r.fin
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("Formato de fecha inválido")
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
