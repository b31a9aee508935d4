package export

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"volby-harvest/internal/scrapers/volby"

	_ "modernc.org/sqlite"
)

const DefaultSqliteTable = "results"

// SqliteWriter stores the table in a fresh database, one column per unified
// field. Columns holding vote counts are INTEGER, the rest TEXT.
type SqliteWriter struct {
	Table string
}

func (SqliteWriter) Extension() string {
	return "db"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnTypes(table volby.Table) []string {
	types := make([]string, len(table.Columns))
	for i := range types {
		types[i] = "TEXT"
	}
	if len(table.Rows) == 0 {
		return types
	}
	for i, field := range table.Rows[0] {
		if field.Value.Kind == volby.KindInt {
			types[i] = "INTEGER"
		}
	}
	return types
}

func (w SqliteWriter) Write(path string, table volby.Table) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	// nothing was harvested, leave an empty database behind
	if len(table.Columns) == 0 {
		return db.Ping()
	}

	name := w.Table
	if name == "" {
		name = DefaultSqliteTable
	}

	types := columnTypes(table)
	defs := make([]string, len(table.Columns))
	quoted := make([]string, len(table.Columns))
	placeholders := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		quoted[i] = quoteIdent(col)
		defs[i] = fmt.Sprintf("%s %s", quoted[i], types[i])
		placeholders[i] = "?"
	}

	_, err = db.Exec(fmt.Sprintf("create table %s (%s)", quoteIdent(name), strings.Join(defs, ", ")))
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(
		"insert into %s (%s) values (%s)",
		quoteIdent(name),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range table.Rows {
		args := make([]any, len(row))
		for i, field := range row {
			args[i] = field.Value.Any()
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
