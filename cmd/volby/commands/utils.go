package commands

import (
	"io"
	"volby-harvest/internal/harvest"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func renderResult(out io.Writer, result harvest.Result) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Soubor", "Lokality", "Záznamy", "Přeskočeno", "Strany", "Sloupce"})
	t.AppendRow(table.Row{
		result.Path,
		result.Leaves,
		result.Records,
		result.Skipped(),
		result.Parties,
		result.Columns,
	})
	t.Render()
}
