package importer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/application/importer"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

func TestInventoryImporter_AppendAll(t *testing.T) {
	areas := &memAreas{}
	invs := &memInvs{}
	ctx := context.Background()

	// el área Bodega ya existe en el local: no debe recrearse
	require.NoError(t, areas.Create(ctx, &entity.InventoriesArea{LocalID: 9, Name: "Bodega"}))

	im := importer.NewInventoryImporter(areas, invs)
	rows := []importer.Row{
		{N: 2, SubArea: "Bodega", Name: "Arroz", TotalStock: 30},
		{N: 3, SubArea: "Cocina", Name: "Aceite"},
		{N: 4, SubArea: "Bodega", Name: "Arroz"},
		{N: 5, Name: "SinArea"}, // sin sub_area: se salta
	}
	sum := im.AppendAll(ctx, 9, rows)

	assert.Empty(t, sum.Errors)
	assert.Equal(t, 1, sum.AreasCreated, "solo Cocina es nueva")
	assert.Equal(t, 3, sum.ItemsAdded)
	require.Len(t, areas.areas, 2)
	require.Len(t, invs.invs, 3)

	// anexado puro: Arroz queda duplicado bajo Bodega
	bodega := areas.areas[0]
	assert.Equal(t, bodega.ID, invs.invs[0].AreaID)
	assert.Equal(t, bodega.ID, invs.invs[2].AreaID)
	assert.Equal(t, "Arroz", invs.invs[0].Name)
	assert.Equal(t, "Arroz", invs.invs[2].Name)
	assert.Nil(t, invs.invs[0].Ranking, "este formato no trae ranking")
}

func TestInventoryImporter_MatchByName(t *testing.T) {
	areas := &memAreas{}
	invs := &memInvs{}
	ctx := context.Background()

	created := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, invs.Create(ctx, &entity.Inventory{
		AreaID:       4,
		Name:         "Arroz",
		Stock:        10,
		CreationDate: created,
	}))

	im := importer.NewInventoryImporter(areas, invs)
	rows := []importer.Row{
		{N: 2, Name: "Arroz", Stock: 25, Cumple: "x"},
		{N: 3, Name: "Harina", NoCumple: "x"},
		{N: 4, Name: "Azúcar"},
	}
	sum := im.MatchByName(ctx, 4, rows)

	assert.Empty(t, sum.Errors)
	assert.Equal(t, 1, sum.Updated)
	assert.Equal(t, 2, sum.Created)
	require.Len(t, invs.invs, 3)

	arroz := invs.invs[0]
	assert.Equal(t, int64(1), arroz.ID, "update en sitio conserva el id")
	assert.Equal(t, 25, arroz.Stock)
	assert.Equal(t, created, arroz.CreationDate, "conserva la fecha de alta original")
	require.NotNil(t, arroz.Ranking)
	assert.Equal(t, 2, *arroz.Ranking)

	harina := invs.invs[1]
	require.NotNil(t, harina.Ranking)
	assert.Equal(t, 0, *harina.Ranking)

	assert.Nil(t, invs.invs[2].Ranking, "sin marcas queda sin fijar")
}
