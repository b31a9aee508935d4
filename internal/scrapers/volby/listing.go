package volby

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var ErrMissingTable = errors.New("missing table")

const (
	report_listing_find_table        = "listing.find-table"
	report_listing_classify_row      = "listing.classify-row"
	report_listing_extract_districts = "listing.extract-districts"
	report_listing_extract_municipal = "listing.extract-municipalities"
)

// tableSelector marks every data table on the results site.
const tableSelector = "table.table"

// dataRows is every row of a table after its header row.
func dataRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return rows
	}
	return rows.Slice(1, goquery.ToEnd)
}

func rowCells(tr *goquery.Selection) []Cell {
	tds := tr.Find("td")
	cells := make([]Cell, 0, tds.Length())
	tds.Each(func(_ int, td *goquery.Selection) {
		cell := Cell{Text: htmlutil.CellText(td)}
		if anchor, ok := htmlutil.FirstAnchor(td); ok {
			cell.Link = anchor.Href
		}
		cells = append(cells, cell)
	})
	return cells
}

// ExtractListing reads the first results table of a listing page into
// ListingRecords. A page without the table yields no records.
func ExtractListing(tel telemetry.API, doc *goquery.Document) []ListingRecord {
	table := doc.Find(tableSelector).First()
	if table.Length() == 0 {
		tel.ReportWarning(report_listing_find_table, ErrMissingTable, tableSelector)
		return nil
	}
	return ExtractRows(tel, table)
}

// ExtractRows classifies every row after the header in document order. Rows
// depend on the rows before them, so this must never run out of order.
func ExtractRows(tel telemetry.API, table *goquery.Selection) []ListingRecord {
	var records []ListingRecord
	state := CarryState{}

	dataRows(table).Each(func(i int, tr *goquery.Selection) {
		cells := rowCells(tr)
		if len(cells) == 0 {
			// header-only row (th cells)
			return
		}

		record, next, err := ClassifyRow(cells, state)
		if err != nil {
			tel.ReportWarning(report_listing_classify_row, err, i+1, cellTexts(cells))
			return
		}
		state = next

		tel.ReportDebug(report_listing_classify_row, i+1, record.String())
		records = append(records, record)
	})

	return records
}

func cellTexts(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}

var (
	districtNameHeaders = regexp.MustCompile(`t[1-9][0-4]?sa1 t[1-9][0-4]?sb2`)
	districtLinkHeaders = regexp.MustCompile(`t[1-9][0-4]?sa3`)
)

func findByHeaders(tr *goquery.Selection, re *regexp.Regexp) *goquery.Selection {
	return tr.Find("td").FilterFunction(func(_ int, td *goquery.Selection) bool {
		headers, ok := td.Attr("headers")
		return ok && re.MatchString(headers)
	}).First()
}

// ExtractDistricts reads the district index: every region heading is
// followed by a table of its districts. Districts are numbered from 1 across
// all regions in page order.
func ExtractDistricts(tel telemetry.API, doc *goquery.Document, base *url.URL) []District {
	var districts []District
	var pendingRegions []string

	doc.Find("h3.kraj, " + tableSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Is("h3") {
			pendingRegions = append(pendingRegions, htmlutil.HeaderLabel(s))
			return
		}
		for _, region := range pendingRegions {
			s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
				nameCell := findByHeaders(tr, districtNameHeaders)
				linkCell := findByHeaders(tr, districtLinkHeaders)
				if nameCell.Length() == 0 || linkCell.Length() == 0 {
					return
				}
				name := htmlutil.CellText(nameCell)
				anchor, ok := htmlutil.FirstAnchor(linkCell)
				if !ok {
					tel.ReportWarning(report_listing_extract_districts, "district without link", region, name)
					return
				}
				link, err := htmlutil.ResolveLink(base, anchor.Href)
				if err != nil {
					tel.ReportWarning(report_listing_extract_districts, fmt.Errorf("resolve link: %w", err), anchor.Href)
					return
				}
				districts = append(districts, District{
					Number: len(districts) + 1,
					Region: region,
					Name:   name,
					Link:   link,
				})
			})
		}
		pendingRegions = nil
	})

	if len(districts) == 0 {
		tel.ReportWarning(report_listing_extract_districts, ErrMissingTable, "h3.kraj")
	}
	return districts
}

// ExtractMunicipalities reads a district listing. Rows without a detail link
// (totals) are skipped.
func ExtractMunicipalities(tel telemetry.API, doc *goquery.Document, base *url.URL) []Municipality {
	var municipalities []Municipality

	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		numberCell := tr.Find("td.cislo").First()
		nameCell := tr.Find("td.overflow_name").First()
		if numberCell.Length() == 0 || nameCell.Length() == 0 {
			return
		}
		anchor, ok := htmlutil.FirstAnchor(numberCell)
		if !ok {
			return
		}
		link, err := htmlutil.ResolveLink(base, anchor.Href)
		if err != nil {
			tel.ReportWarning(report_listing_extract_municipal, fmt.Errorf("resolve link: %w", err), anchor.Href)
			return
		}
		municipalities = append(municipalities, Municipality{
			Number: htmlutil.CellText(numberCell),
			Name:   htmlutil.CellText(nameCell),
			Link:   link,
		})
	})

	if len(municipalities) == 0 {
		tel.ReportWarning(report_listing_extract_municipal, ErrMissingTable, "td.cislo")
	}
	return municipalities
}
