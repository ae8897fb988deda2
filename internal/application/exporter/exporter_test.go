package exporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/application/exporter"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

func intPtr(v int) *int { return &v }

func TestAuditSheet(t *testing.T) {
	obs := "revisar"
	rows := []repository.ItemWithCategory{
		{Item: entity.Item{ID: 11, Name: "Campana", Ranking: intPtr(entity.RankingCompliant), Observation: &obs}, CategoryName: "Cocina"},
		{Item: entity.Item{ID: 12, Name: "Horno", Ranking: intPtr(entity.RankingInProgress)}, CategoryName: "Cocina"},
		{Item: entity.Item{ID: 31, Name: "Extintor", Ranking: intPtr(entity.RankingNotCompliant)}, CategoryName: "Seguridad"},
		{Item: entity.Item{ID: 7, Name: "Sin evaluar"}, CategoryName: "Seguridad"},
	}

	sheet := exporter.AuditSheet(rows)

	assert.Equal(t, "Auditoría", sheet.Name)
	assert.Equal(t, []string{"Nº", "CATEGORIA", "Item", "CUMPLE", "EN PROCESO", "NO CUMPLE", "OBSERVACIONES"}, sheet.Headers)
	require.Len(t, sheet.Rows, 4)

	// Nº lleva el id del item, no el correlativo de fila
	assert.Equal(t, []string{"11", "Cocina", "Campana", "X", "", "", "revisar"}, sheet.Rows[0])
	assert.Equal(t, []string{"12", "Cocina", "Horno", "", "X", "", ""}, sheet.Rows[1])
	assert.Equal(t, []string{"31", "Seguridad", "Extintor", "", "", "X", ""}, sheet.Rows[2])
	// ranking sin fijar: las tres columnas vacías
	assert.Equal(t, []string{"7", "Seguridad", "Sin evaluar", "", "", "", ""}, sheet.Rows[3])
}

func TestInventorySheet(t *testing.T) {
	rows := []repository.InventoryWithContext{
		{
			Inventory: entity.Inventory{
				Name: "Arroz", Price: 1200, Stock: 10, Income: 5,
				OtherIncome: 1, TotalStock: 16, PhysicalStock: 14, Difference: -2,
			},
			AreaName:  "Bodega",
			LocalName: "Sucursal Centro",
		},
	}

	sheet := exporter.InventorySheet(rows)

	assert.Equal(t, "Inventario", sheet.Name)
	require.Len(t, sheet.Headers, 11)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, []string{
		"Sucursal Centro", "Bodega", "Arroz", "1200", "10", "5", "1", "16", "14", "-2", "",
	}, sheet.Rows[0])
}
