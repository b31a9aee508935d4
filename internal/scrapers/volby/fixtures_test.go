package volby

import (
	"strings"
	"testing"
	"volby-harvest/lib/testutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

var (
	listingHtml                 = testutil.Fixture("listing")
	foreignDetailHtml           = testutil.Fixture("foreign_detail")
	detailTwoTablesHtml         = testutil.Fixture("detail_two_tables")
	districtIndexHtml           = testutil.Fixture("district_index")
	municipalityListingHtml     = testutil.Fixture("municipality_listing")
	municipalityDetailHtml      = testutil.Fixture("municipality_detail")
	municipalityDetailShortHtml = testutil.Fixture("municipality_detail_short")
)

func parseDoc(t testing.TB, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}
