package volby

import (
	"errors"
	"fmt"
	"strconv"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var ErrNotEnoughTables = errors.New("not enough tables")

const report_detail_parse = "detail.parse"

// detail pages carry a metadata table followed by two results tables.
const (
	minDetailTables    = 3
	firstResultsTable  = 1
	resultsTablesCount = 2

	resultsPartyCell = 1
	resultsVotesCell = 2
)

type MetadataColumn struct {
	Index int
	Label string
}

// MetadataLayout says how the first table of a detail page becomes metadata.
// With no Columns every data row is mapped through the table's own header
// labels and later rows overwrite earlier ones. With Columns only the last
// row is read, and only when it has at least MinCells cells.
type MetadataLayout struct {
	MinCells int
	Columns  []MetadataColumn
}

var (
	// HeaderMapped is the foreign precinct summary table.
	HeaderMapped = MetadataLayout{}

	// Turnout is the municipality summary table, its last row holds totals.
	Turnout = MetadataLayout{
		MinCells: 8,
		Columns: []MetadataColumn{
			{Index: 3, Label: "Voliči celkem"},
			{Index: 6, Label: "Odevzdané obálky"},
			{Index: 7, Label: "Platné hlasy"},
		},
	}
)

// Detail is what one detail page contributes to its leaf's record.
type Detail struct {
	Metadata Fields
	Tally    PartyTally
}

// ParseDetail extracts the metadata table and sums the two results tables.
func ParseDetail(tel telemetry.API, doc *goquery.Document, layout MetadataLayout) (Detail, error) {
	tables := doc.Find(tableSelector)
	if tables.Length() < minDetailTables {
		return Detail{}, fmt.Errorf("%w: found %d, expected at least %d", ErrNotEnoughTables, tables.Length(), minDetailTables)
	}

	detail := Detail{
		Metadata: parseMetadata(tel, tables.Eq(0), layout),
		Tally:    NewPartyTally(),
	}
	tables.Slice(firstResultsTable, firstResultsTable+resultsTablesCount).Each(func(_ int, table *goquery.Selection) {
		tallyTable(tel, table, &detail.Tally)
	})
	return detail, nil
}

func parseMetadata(tel telemetry.API, table *goquery.Selection, layout MetadataLayout) Fields {
	if len(layout.Columns) == 0 {
		return parseHeaderMapped(tel, table)
	}

	fields := Fields{}
	cells := table.Find("tr").Last().Find("td")
	if cells.Length() < layout.MinCells {
		tel.ReportDebug(report_detail_parse, "metadata row too short", cells.Length())
		return fields
	}
	for _, col := range layout.Columns {
		fields.Set(col.Label, Text(htmlutil.CellText(cells.Eq(col.Index))))
	}
	return fields
}

func parseHeaderMapped(tel telemetry.API, table *goquery.Selection) Fields {
	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, htmlutil.HeaderLabel(th))
	})

	fields := Fields{}
	dataRows(table).Each(func(_ int, tr *goquery.Selection) {
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i >= len(headers) {
				tel.ReportDebug(report_detail_parse, "metadata cell without header", i)
				return
			}
			fields.Set(headers[i], Text(htmlutil.CellText(td)))
		})
	})
	return fields
}

func tallyTable(tel telemetry.API, table *goquery.Selection, tally *PartyTally) {
	dataRows(table).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() <= resultsVotesCell {
			return
		}
		party := htmlutil.CellText(cells.Eq(resultsPartyCell))
		votes, ok := ParseVotes(htmlutil.CellText(cells.Eq(resultsVotesCell)))
		if !ok {
			tel.ReportDebug(report_detail_parse, "dropped non-numeric votes", party)
			return
		}
		tally.Add(party, votes)
	})
}

// ParseVotes accepts only plain non-negative decimal integers, anything else
// (placeholders, separators, signs) is rejected rather than read as zero.
func ParseVotes(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
