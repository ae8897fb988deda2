package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/application/importer"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"42", 42},
		{" 42 ", 42},
		{"1,000", 1000},
		{"12 500", 12500},
		{"1000.0", 1000},
		{"-3", -3},
		{"abc", 0},
		{"12abc", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, importer.ParseNumber(tc.in), "entrada %q", tc.in)
	}
}

func TestRankingFromText(t *testing.T) {
	assert.Equal(t, 2, importer.RankingFromText("CUMPLE"))
	assert.Equal(t, 2, importer.RankingFromText(" cumple "))
	assert.Equal(t, 1, importer.RankingFromText("EN PROCESO"))
	assert.Equal(t, 1, importer.RankingFromText("en_proceso"))
	assert.Equal(t, 0, importer.RankingFromText("NO CUMPLE"))
	assert.Equal(t, 0, importer.RankingFromText(""))
	assert.Equal(t, 0, importer.RankingFromText("cualquier cosa"))
}

func TestIsMarked(t *testing.T) {
	for _, v := range []string{"x", "X", " ✓ ", "1", "true", "si", "sí", "YES", "check"} {
		assert.True(t, importer.IsMarked(v), "%q debe contar como marcada", v)
	}
	for _, v := range []string{"", "0", "no", "false", "-"} {
		assert.False(t, importer.IsMarked(v), "%q no debe contar como marcada", v)
	}
}

func TestRankingFromMarks_Precedencia(t *testing.T) {
	// cumple gana sobre las demás marcas
	r := importer.RankingFromMarks(importer.Row{Cumple: "x", EnProceso: "x", NoCumple: "x"})
	require.NotNil(t, r)
	assert.Equal(t, 2, *r)

	r = importer.RankingFromMarks(importer.Row{EnProceso: "x", NoCumple: "x"})
	require.NotNil(t, r)
	assert.Equal(t, 1, *r)

	r = importer.RankingFromMarks(importer.Row{NoCumple: "x"})
	require.NotNil(t, r)
	assert.Equal(t, 0, *r)

	assert.Nil(t, importer.RankingFromMarks(importer.Row{}), "sin marcas queda sin fijar")
}

func TestParseRows(t *testing.T) {
	records := []map[string]string{
		{
			"categoria":       "Cocina",
			"item":            " Campana ",
			"observaciones":   "con grasa",
			"ranking":         "EN PROCESO",
			"precio_unitario": "1,200",
			"stock_actual":    "7",
		},
		{
			"sub_area":    "Bodega",
			"descripcion": "Arroz",
			"total":       "30",
		},
	}
	rows := importer.ParseRows(records)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].N, "la primera fila de datos es la 2 de la planilla")
	assert.Equal(t, "Cocina", rows[0].Category)
	assert.Equal(t, "Campana", rows[0].Name, "item se recorta")
	assert.Equal(t, 1200, rows[0].Price)
	assert.Equal(t, 7, rows[0].Stock)

	assert.Equal(t, 3, rows[1].N)
	assert.Equal(t, "Arroz", rows[1].Name, "sin columna item cae a descripcion")
	assert.Equal(t, "Bodega", rows[1].SubArea)
	assert.Equal(t, 30, rows[1].TotalStock)
}
