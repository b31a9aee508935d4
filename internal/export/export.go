package export

import (
	"fmt"
	"os"
	"path/filepath"
	"volby-harvest/internal/components/chrono"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/internal/scrapers/volby"
)

const (
	report_export_write = "export.write"
	report_export_rows  = "export.rows"
)

// Writer serializes a unified table into a single file.
type Writer interface {
	Extension() string
	Write(path string, table volby.Table) error
}

func WriterFor(format string) (Writer, error) {
	switch format {
	case "xlsx":
		return XlsxWriter{Sheet: DefaultSheet}, nil
	case "csv":
		return CsvWriter{}, nil
	case "sqlite":
		return SqliteWriter{Table: DefaultSqliteTable}, nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// ResultName is the file name of a run's export, stamped with the run time.
func ResultName(clock chrono.API, ext string) string {
	return fmt.Sprintf("vysledky_%s.%s", chrono.Stamp(clock.Now()), ext)
}

// StagingName is the file name of a run's listing snapshot.
func StagingName(clock chrono.API, prefix string) string {
	return fmt.Sprintf("%s_%s.json", prefix, chrono.Stamp(clock.Now()))
}

type Exporter struct {
	Dir    string
	Writer Writer
	Clock  chrono.API

	tel telemetry.API
}

func NewExporter(dir string, writer Writer, clock chrono.API, tel telemetry.API) Exporter {
	return Exporter{
		Dir:    dir,
		Writer: writer,
		Clock:  clock,
		tel:    telemetry.NewScopedAPI("export", tel),
	}
}

// Export writes table into the output directory and returns the file path.
func (e Exporter) Export(table volby.Table) (string, error) {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(e.Dir, ResultName(e.Clock, e.Writer.Extension()))
	if err := e.Writer.Write(path, table); err != nil {
		e.tel.ReportBroken(report_export_write, err, path)
		return "", err
	}
	e.tel.ReportCount(report_export_rows, int64(len(table.Rows)))
	return path, nil
}
