package export

import (
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"volby-harvest/internal/components/chrono"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/internal/scrapers/volby"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() volby.Table {
	columns := []string{volby.FieldContinent, volby.FieldCountry, volby.FieldCity, "Strana A", "Strana \"B\""}
	rows := []volby.Fields{
		{
			{Name: volby.FieldContinent, Value: volby.Text("Europe")},
			{Name: volby.FieldCountry, Value: volby.Text("Germany")},
			{Name: volby.FieldCity, Value: volby.Text("Berlin")},
			{Name: "Strana A", Value: volby.Int(15)},
			{Name: "Strana \"B\"", Value: volby.Int(0)},
		},
		{
			{Name: volby.FieldContinent, Value: volby.Text("Europe")},
			{Name: volby.FieldCountry, Value: volby.Text("Germany")},
			{Name: volby.FieldCity, Value: volby.Text("Mnichov, Bavorsko")},
			{Name: "Strana A", Value: volby.Int(2)},
			{Name: "Strana \"B\"", Value: volby.Int(7)},
		},
	}
	return volby.Table{Columns: columns, Rows: rows}
}

func fixedClock() chrono.FixedImpl {
	return chrono.FixedImpl{At: time.Date(2017, 10, 21, 14, 5, 0, 0, time.UTC)}
}

func TestNames(t *testing.T) {
	require.Equal(t, "vysledky_20171021_1405.xlsx", ResultName(fixedClock(), "xlsx"))
	require.Equal(t, "obce_20171021_1405.json", StagingName(fixedClock(), "obce"))
}

func TestStaging(t *testing.T) {
	dir := t.TempDir()
	records := []volby.ListingRecord{
		{Continent: "Evropa", Country: "Německo", City: "Berlín", Precinct: "1", Link: "ps361?xjazyk=CZ&xokrsek=1"},
		{Continent: "Asie", Country: "Japonsko", City: "Tokio", Precinct: "2"},
	}

	staging, err := WriteStaging(dir, "zahranici.json", records)
	require.NoError(t, err)

	contents, err := os.ReadFile(staging.Path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"Země": "Německo"`)
	require.Contains(t, string(contents), `"Odkaz": "ps361?xjazyk=CZ&xokrsek=1"`)

	var decoded []volby.ListingRecord
	require.NoError(t, staging.Read(&decoded))
	require.Equal(t, records, decoded)

	require.NoError(t, staging.Remove())
	_, err = os.Stat(staging.Path)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NoError(t, staging.Remove())
}

func TestXlsxWriter(t *testing.T) {
	tel := telemetry.NewRecordingAPI()
	exporter := NewExporter(t.TempDir(), XlsxWriter{Sheet: DefaultSheet}, fixedClock(), tel)

	path, err := exporter.Export(sampleTable())
	require.NoError(t, err)
	require.Equal(t, "vysledky_20171021_1405.xlsx", filepath.Base(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Kontinent", "Země", "Město", "Strana A", "Strana \"B\""},
		{"Europe", "Germany", "Berlin", "15", "0"},
		{"Europe", "Germany", "Mnichov, Bavorsko", "2", "7"},
	}, rows)

	n, ok := tel.Count(report_export_rows)
	require.True(t, ok)
	require.Equal(t, int64(2), n)
}

func TestCsvWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, CsvWriter{}.Write(path, sampleTable()))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(contents))).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Kontinent", "Země", "Město", "Strana A", "Strana \"B\""},
		{"Europe", "Germany", "Berlin", "15", "0"},
		{"Europe", "Germany", "Mnichov, Bavorsko", "2", "7"},
	}, records)
}

func TestSqliteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	table := sampleTable()

	// a second write replaces the first
	require.NoError(t, SqliteWriter{}.Write(path, table))
	require.NoError(t, SqliteWriter{}.Write(path, table))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`select "Město", "Strana A", "Strana ""B""" from results order by rowid`)
	require.NoError(t, err)
	defer rows.Close()

	type result struct {
		city string
		a, b int64
	}
	var results []result
	for rows.Next() {
		var r result
		require.NoError(t, rows.Scan(&r.city, &r.a, &r.b))
		results = append(results, r)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []result{
		{city: "Berlin", a: 15, b: 0},
		{city: "Mnichov, Bavorsko", a: 2, b: 7},
	}, results)

	var columnType string
	err = db.QueryRow(`select type from pragma_table_info('results') where name = 'Strana A'`).Scan(&columnType)
	require.NoError(t, err)
	require.Equal(t, "INTEGER", columnType)
}

func TestWritersEmptyTable(t *testing.T) {
	writers := []Writer{XlsxWriter{}, CsvWriter{}, SqliteWriter{}}
	for _, writer := range writers {
		t.Run(writer.Extension(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vysledky."+writer.Extension())
			err := writer.Write(path, volby.Unify(volby.NewCollection()))
			require.NoError(t, err)
			_, err = os.Stat(path)
			require.NoError(t, err)
		})
	}

	path := filepath.Join(t.TempDir(), "vysledky.db")
	require.NoError(t, SqliteWriter{}.Write(path, volby.Table{}))
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var tables int
	require.NoError(t, db.QueryRow("select count(*) from sqlite_master").Scan(&tables))
	require.Equal(t, 0, tables)
}

func TestWriterFor(t *testing.T) {
	for format, ext := range map[string]string{"xlsx": "xlsx", "csv": "csv", "sqlite": "db"} {
		w, err := WriterFor(format)
		require.NoError(t, err)
		require.Equal(t, ext, w.Extension())
	}
	_, err := WriterFor("ods")
	require.Error(t, err)
}
