package exporter

import (
	"strconv"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// Sheet es una planilla lista para escribir: encabezados más filas de
// celdas ya formateadas. El adaptador de salida decide el formato físico.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// AuditSheet arma la planilla de exportación de una auditoría con el
// layout que espera el cliente: una fila por item, ranking expandido en
// tres columnas marcadas con X. Las filas llegan ya ordenadas por
// (categoría, nombre). La columna Nº lleva el id del item, no un
// correlativo de fila.
func AuditSheet(rows []repository.ItemWithCategory) Sheet {
	sheet := Sheet{
		Name:    "Auditoría",
		Headers: []string{"Nº", "CATEGORIA", "Item", "CUMPLE", "EN PROCESO", "NO CUMPLE", "OBSERVACIONES"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		cumple, enProceso, noCumple := rankingMarks(r.Item.Ranking)
		sheet.Rows = append(sheet.Rows, []string{
			strconv.FormatInt(r.Item.ID, 10),
			r.CategoryName,
			r.Item.Name,
			cumple,
			enProceso,
			noCumple,
			strOrEmpty(r.Item.Observation),
		})
	}
	return sheet
}

// InventorySheet arma la planilla de exportación de inventarios: una
// fila por item con sus contadores tal como están almacenados (la
// diferencia NO se recalcula). Las filas llegan ordenadas por nombre.
func InventorySheet(rows []repository.InventoryWithContext) Sheet {
	sheet := Sheet{
		Name: "Inventario",
		Headers: []string{
			"Local", "Sub area", "Descripción", "Precio unitario", "Stock actual",
			"Ingresos", "Otros ingresos", "Total", "Stock físico", "Diferencia", "Observaciones",
		},
		Rows: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []string{
			r.LocalName,
			r.AreaName,
			r.Inventory.Name,
			strconv.Itoa(r.Inventory.Price),
			strconv.Itoa(r.Inventory.Stock),
			strconv.Itoa(r.Inventory.Income),
			strconv.Itoa(r.Inventory.OtherIncome),
			strconv.Itoa(r.Inventory.TotalStock),
			strconv.Itoa(r.Inventory.PhysicalStock),
			strconv.Itoa(r.Inventory.Difference),
			strOrEmpty(r.Inventory.Observation),
		})
	}
	return sheet
}

// rankingMarks expande el tri-estado en las tres columnas marcadas.
// Ranking sin fijar deja las tres vacías.
func rankingMarks(ranking *int) (cumple, enProceso, noCumple string) {
	if ranking == nil {
		return "", "", ""
	}
	switch *ranking {
	case entity.RankingCompliant:
		return "X", "", ""
	case entity.RankingInProgress:
		return "", "X", ""
	default:
		return "", "", "X"
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
