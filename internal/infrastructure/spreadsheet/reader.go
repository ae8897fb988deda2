// Package spreadsheet lee y escribe planillas (xlsx y csv). Es el único
// punto del sistema que toca formatos físicos: hacia adentro viajan
// registros encabezado -> celda ya normalizados.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Read parsea la planilla según la extensión del nombre de archivo
// (.xlsx, .xls o .csv). La primera fila es el encabezado; cada fila
// siguiente se devuelve como mapa encabezado normalizado -> celda.
func Read(filename string, r io.Reader) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("formato no soportado: %s (se acepta .xlsx, .xls o .csv)", filepath.Ext(filename))
	}
}

func readXLSX(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx sin hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	return toRecords(rows), nil
}

// readXLS cubre los libros binarios legacy. El parser necesita un
// ReadSeeker, así que el archivo se carga completo en memoria (los
// imports son planillas chicas subidas a mano).
func readXLS(r io.Reader) ([]map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer xls: %w", err)
	}
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("abrir xls: %w", err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("xls sin hojas")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return toRecords(rows), nil
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // filas cortas son comunes en exports a mano
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return toRecords(rows), nil
}

// toRecords convierte la matriz cruda en registros keyed por encabezado
// normalizado. Filas completamente vacías se descartan.
func toRecords(rows [][]string) []map[string]string {
	if len(rows) == 0 {
		return nil
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeading(h)
	}

	var records []map[string]string
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			rec[h] = cell
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
	"º", "", "°", "",
)

// NormalizeHeading normaliza un encabezado de columna: minúsculas, sin
// acentos, espacios a guión bajo. "Descripción" -> "descripcion",
// "Sub area" -> "sub_area".
func NormalizeHeading(h string) string {
	h = accentReplacer.Replace(strings.TrimSpace(h))
	h = strings.ToLower(h)
	h = strings.Join(strings.Fields(h), "_")
	return h
}
