package importer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/application/importer"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

func TestAuditImporter_AppendAll(t *testing.T) {
	cats := &memCats{}
	items := &memItems{}
	im := importer.NewAuditImporter(cats, items)

	rows := []importer.Row{
		{N: 2, Category: "Cocina", Name: "Campana", RankingText: "CUMPLE"},
		{N: 3, Category: "Cocina", Name: "Campana", RankingText: "NO CUMPLE"},
		{N: 4, Category: "Baños", Name: "Dispensador", RankingText: "EN PROCESO"},
		{N: 5, Name: "Huérfano"}, // sin categoría: error por fila
		{N: 6, Category: "Cocina", Name: ""},
	}
	sum := im.AppendAll(context.Background(), 1, rows)

	assert.Equal(t, 2, sum.CategoriesCreated)
	assert.Equal(t, 3, sum.ItemsAdded)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0], "Fila 5:")

	// anexado puro: el nombre repetido genera dos filas de item
	require.Len(t, items.items, 3)
	assert.Equal(t, items.items[0].categoryID, items.items[1].categoryID)
	require.NotNil(t, items.items[0].item.Ranking)
	assert.Equal(t, 2, *items.items[0].item.Ranking)
	require.NotNil(t, items.items[1].item.Ranking)
	assert.Equal(t, 0, *items.items[1].item.Ranking)
	require.NotNil(t, items.items[2].item.Ranking)
	assert.Equal(t, 1, *items.items[2].item.Ranking)
}

func TestAuditImporter_MatchByName(t *testing.T) {
	cats := &memCats{}
	items := &memItems{}
	ctx := context.Background()

	cocina, _, err := cats.FindOrCreate(ctx, 1, "Cocina")
	require.NoError(t, err)
	obs := "viejo"
	require.NoError(t, items.Create(ctx, cocina.ID, &entity.Item{Name: "Campana", Observation: &obs}))

	im := importer.NewAuditImporter(cats, items)
	rows := []importer.Row{
		{N: 2, Category: "Cocina", Name: "Campana", Cumple: "x", Observation: "nueva"},
		// sin categoría: arrastra la corriente
		{N: 3, Name: "Horno", EnProceso: "x"},
		{N: 4, Category: "Seguridad", Name: "Extintor"},
	}
	sum := im.MatchByName(ctx, 1, rows)

	assert.Empty(t, sum.Errors)
	assert.Equal(t, 1, sum.Updated)
	assert.Equal(t, 2, sum.Created)
	require.Len(t, items.items, 3)

	// el match actualiza en sitio conservando el id
	campana := items.items[0]
	assert.Equal(t, int64(1), campana.item.ID)
	require.NotNil(t, campana.item.Ranking)
	assert.Equal(t, 2, *campana.item.Ranking)
	require.NotNil(t, campana.item.Observation)
	assert.Equal(t, "nueva", *campana.item.Observation)

	assert.Equal(t, cocina.ID, items.items[1].categoryID, "Horno cae en la categoría corriente")

	// sin marcas el ranking queda sin fijar
	assert.Nil(t, items.items[2].item.Ranking)
}

func TestAuditImporter_MatchByName_SinCategoriaInicial(t *testing.T) {
	im := importer.NewAuditImporter(&memCats{}, &memItems{})
	sum := im.MatchByName(context.Background(), 1, []importer.Row{
		{N: 2, Name: "Suelto"},
	})
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0], "Fila 2:")
	assert.Zero(t, sum.Created)
	assert.Zero(t, sum.Updated)
}
