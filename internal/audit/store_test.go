package audit

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/granitoskate/backoffice/internal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accionColumns = []string{"id", "admin_nombre", "tipo_accion", "detalles", "fecha_accion"}

func TestGormListFiltersAndPages(t *testing.T) {
	db, mock := dbtest.Gorm(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "acciones_admin" WHERE admin_nombre = $1 AND tipo_accion = $2 ORDER BY fecha_accion DESC LIMIT $3 OFFSET $4`)).
		WithArgs("Ana", "creacion_evento", 20, 40).
		WillReturnRows(sqlmock.NewRows(accionColumns).
			AddRow(61, "Ana", "creacion_evento", []byte(`{"id":3}`), time.Now()))

	out, err := NewGormStore(db).List(context.Background(), Filter{Limit: 20, Offset: 40, Actor: "Ana", Tipo: "creacion_evento"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "creacion_evento", out[0].TipoAccion)
	assert.JSONEq(t, `{"id":3}`, string(out[0].Detalles))
}

func TestGormListCapsLimit(t *testing.T) {
	db, mock := dbtest.Gorm(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "acciones_admin" ORDER BY fecha_accion DESC LIMIT $1`) + `$`).
		WithArgs(MaxListLimit).
		WillReturnRows(sqlmock.NewRows(accionColumns))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "acciones_admin" ORDER BY fecha_accion DESC LIMIT $1`) + `$`).
		WithArgs(DefaultListLimit).
		WillReturnRows(sqlmock.NewRows(accionColumns))

	_, err := NewGormStore(db).List(context.Background(), Filter{Limit: 10000, Offset: -5})
	require.NoError(t, err)
	_, err = NewGormStore(db).List(context.Background(), Filter{})
	require.NoError(t, err)
}
