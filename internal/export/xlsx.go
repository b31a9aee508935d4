package export

import (
	"volby-harvest/internal/scrapers/volby"

	"github.com/xuri/excelize/v2"
)

const DefaultSheet = "Sheet1"

// XlsxWriter writes a header row followed by one row per record, vote
// counts are stored as numbers.
type XlsxWriter struct {
	Sheet string
}

func (XlsxWriter) Extension() string {
	return "xlsx"
}

func (w XlsxWriter) Write(path string, table volby.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != f.GetSheetName(0) {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return err
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(row))
		for j, field := range row {
			values[j] = field.Value.Any()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
