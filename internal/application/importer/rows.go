package importer

import (
	"strconv"
	"strings"
)

// Row es el esquema tipado de una fila de planilla. Se construye una
// sola vez a partir de las celdas crudas keyed por encabezado
// normalizado (minúsculas, espacios -> guión bajo, sin acentos), de modo
// que la lógica de negocio no vuelva a tocar valores crudos.
type Row struct {
	N int // número de fila en la planilla (el encabezado es la fila 1)

	Category    string // "categoria"
	SubArea     string // "sub_area"
	Name        string // "item" o, en su defecto, "descripcion"
	Observation string // "observaciones"

	RankingText string // "ranking" textual: CUMPLE / EN PROCESO / NO CUMPLE
	Cumple      string // celdas de columnas marcadas
	EnProceso   string
	NoCumple    string

	Price         int // "precio_unitario"
	Stock         int // "stock_actual"
	Income        int // "ingresos"
	OtherIncome   int // "otros_ingresos"
	TotalStock    int // "total"
	PhysicalStock int // "stock_fisico"
	Difference    int // "diferencia"
}

// ParseRows convierte los registros crudos (encabezado -> celda) en filas
// tipadas. La coerción numérica ocurre aquí, una sola vez.
func ParseRows(records []map[string]string) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec["item"])
		if name == "" {
			name = strings.TrimSpace(rec["descripcion"])
		}
		rows = append(rows, Row{
			N:             i + 2, // +1 por base cero, +1 por la fila de encabezado
			Category:      strings.TrimSpace(rec["categoria"]),
			SubArea:       strings.TrimSpace(rec["sub_area"]),
			Name:          name,
			Observation:   strings.TrimSpace(rec["observaciones"]),
			RankingText:   rec["ranking"],
			Cumple:        rec["cumple"],
			EnProceso:     rec["en_proceso"],
			NoCumple:      rec["no_cumple"],
			Price:         ParseNumber(rec["precio_unitario"]),
			Stock:         ParseNumber(rec["stock_actual"]),
			Income:        ParseNumber(rec["ingresos"]),
			OtherIncome:   ParseNumber(rec["otros_ingresos"]),
			TotalStock:    ParseNumber(rec["total"]),
			PhysicalStock: ParseNumber(rec["stock_fisico"]),
			Difference:    ParseNumber(rec["diferencia"]),
		})
	}
	return rows
}

// ParseNumber convierte una celda a entero tolerando separadores de
// miles ("1,000" -> 1000) y espacios. Valores no numéricos dan 0.
func ParseNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(s)
	// Celdas exportadas como decimal ("1000.0") también cuentan como enteros
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int(f)
	}
	return 0
}

// RankingFromText mapea el ranking textual a su valor: CUMPLE -> 2,
// EN PROCESO -> 1, NO CUMPLE -> 0. Insensible a mayúsculas, espacios y
// guiones bajos; valores no reconocidos dan 0.
func RankingFromText(s string) int {
	norm := strings.NewReplacer(" ", "", "_", "").Replace(strings.ToUpper(strings.TrimSpace(s)))
	switch norm {
	case "CUMPLE":
		return 2
	case "ENPROCESO":
		return 1
	default:
		// incluye "NOCUMPLE", vacío y cualquier otro valor
		return 0
	}
}

// IsMarked decide si una celda de columna de ranking cuenta como marcada:
// X, ✓, check, 1, true, si, sí, yes (insensible a mayúsculas).
func IsMarked(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "x", "✓", "check", "1", "true", "si", "sí", "yes":
		return true
	}
	return false
}

// RankingFromMarks deriva el ranking de las tres columnas marcadas, con
// precedencia cumple > en_proceso > no_cumple. Sin marcas devuelve nil.
func RankingFromMarks(r Row) *int {
	switch {
	case IsMarked(r.Cumple):
		return intPtr(2)
	case IsMarked(r.EnProceso):
		return intPtr(1)
	case IsMarked(r.NoCumple):
		return intPtr(0)
	}
	return nil
}

func intPtr(v int) *int { return &v }

// Summary acumula el resultado de un import: conteos de la política
// aplicada más los errores por fila que no abortaron el lote.
type Summary struct {
	Created           int
	Updated           int
	CategoriesCreated int
	AreasCreated      int
	ItemsAdded        int
	Errors            []string
}

// HasErrors indica si alguna fila falló.
func (s Summary) HasErrors() bool { return len(s.Errors) > 0 }
