package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/auditoriapp/auditoria-api/internal/application/exporter"
)

// WriteXLSX escribe la planilla como xlsx en w: encabezados en la fila 1
// y una fila por registro.
func WriteXLSX(sheet *exporter.Sheet, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	index, err := f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	// excelize arranca con "Sheet1"; se elimina si la hoja pedida es otra
	if name != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := writeRow(f, name, 1, sheet.Headers); err != nil {
		return err
	}
	for i, row := range sheet.Rows {
		if err := writeRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("celda fila %d: %w", rowNum, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("fila %d: %w", rowNum, err)
	}
	return nil
}
