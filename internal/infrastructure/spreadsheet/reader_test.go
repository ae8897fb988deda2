package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/application/exporter"
	"github.com/auditoriapp/auditoria-api/internal/infrastructure/spreadsheet"
)

func TestNormalizeHeading(t *testing.T) {
	cases := map[string]string{
		"Descripción":     "descripcion",
		"Sub area":        "sub_area",
		" CATEGORIA ":     "categoria",
		"Nº":              "n",
		"Precio Unitario": "precio_unitario",
		"Stock   físico":  "stock_fisico",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, spreadsheet.NormalizeHeading(in), "entrada %q", in)
	}
}

func TestRead_CSV(t *testing.T) {
	csv := strings.Join([]string{
		"Categoría,Item,Observaciones",
		"Cocina,Campana,con grasa",
		",,",          // fila vacía: se descarta
		"Baños,Espejo", // fila corta: la celda faltante queda vacía
	}, "\n")

	records, err := spreadsheet.Read("audit.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Cocina", records[0]["categoria"])
	assert.Equal(t, "Campana", records[0]["item"])
	assert.Equal(t, "con grasa", records[0]["observaciones"])

	assert.Equal(t, "Baños", records[1]["categoria"])
	assert.Equal(t, "", records[1]["observaciones"])
}

func TestRead_ExtensionNoSoportada(t *testing.T) {
	_, err := spreadsheet.Read("datos.pdf", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato no soportado")
}

func TestRead_XLS_SeDespacha(t *testing.T) {
	// un .xls corrupto debe fallar en el parser, no como formato rechazado
	_, err := spreadsheet.Read("legacy.xls", strings.NewReader("no es un libro binario"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xls")
	assert.NotContains(t, err.Error(), "formato no soportado")
}

func TestRead_XLSX_RoundTrip(t *testing.T) {
	sheet := exporter.Sheet{
		Name:    "Inventario",
		Headers: []string{"Sub area", "Descripción", "Total"},
		Rows: [][]string{
			{"Bodega", "Arroz", "30"},
			{"Cocina", "Aceite", "12"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteXLSX(&sheet, &buf))

	records, err := spreadsheet.Read("export.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Bodega", records[0]["sub_area"])
	assert.Equal(t, "Arroz", records[0]["descripcion"])
	assert.Equal(t, "30", records[0]["total"])
	assert.Equal(t, "Aceite", records[1]["descripcion"])
}
