package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

func TestNewAudit_ArrancaAbiertaConIdentidad(t *testing.T) {
	a := entity.NewAudit(10, 5, 7)

	assert.NotEmpty(t, a.ID(), "debe generar uuid")
	assert.False(t, a.IsClosed())
	assert.Nil(t, a.ClosedAt())
	assert.Equal(t, int64(10), a.LocalID())
	assert.Equal(t, int64(5), a.SupervisorID())
	assert.Equal(t, int64(7), a.CreatedBy())
	assert.Zero(t, a.RowID(), "sin id de fila hasta persistir")
}

func TestAudit_AddCategory(t *testing.T) {
	a := entity.NewAudit(1, 1, 1)
	cat := &entity.Category{Name: "Limpieza"}
	cat.AddItem(&entity.Item{Name: "Pisos"})

	require.NoError(t, a.AddCategory(cat))
	require.Len(t, a.Categories(), 1)
	assert.Equal(t, "Limpieza", a.Categories()[0].Name)
	assert.Len(t, a.Categories()[0].Items, 1)
}

func TestAudit_Close_EsTerminal(t *testing.T) {
	a := entity.NewAudit(1, 1, 1)

	require.NoError(t, a.Close())
	assert.True(t, a.IsClosed())
	require.NotNil(t, a.ClosedAt())

	// repetir el cierre falla
	err := a.Close()
	assert.ErrorIs(t, err, domain.ErrAuditClosed)
}

func TestAudit_Cerrada_RechazaMutaciones(t *testing.T) {
	a := entity.NewAudit(1, 1, 1)
	require.NoError(t, a.Close())

	err := a.AddCategory(&entity.Category{Name: "Seguridad"})
	assert.ErrorIs(t, err, domain.ErrAuditClosed)
	assert.Empty(t, a.Categories())
}

func TestRehydrateAudit_ConservaEstado(t *testing.T) {
	closed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cats := []*entity.Category{{ID: 3, Name: "Cocina"}}

	a := entity.RehydrateAudit(42, "uuid-x", 10, 5, 7,
		closed.Add(-48*time.Hour), &closed, 87, cats)

	assert.Equal(t, int64(42), a.RowID())
	assert.True(t, a.IsClosed())
	assert.Equal(t, 87, a.Score())
	assert.Equal(t, cats, a.Categories())
	assert.ErrorIs(t, a.Close(), domain.ErrAuditClosed)
}
