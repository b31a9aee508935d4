package export

import (
	"encoding/csv"
	"os"
	"volby-harvest/internal/scrapers/volby"
)

type CsvWriter struct{}

func (CsvWriter) Extension() string {
	return "csv"
}

func (CsvWriter) Write(path string, table volby.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, field := range row {
			record[i] = field.Value.String()
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
