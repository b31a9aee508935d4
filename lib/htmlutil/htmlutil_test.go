package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const fragment = `<table>
<tr><th>Voliči<br/>v seznamu</th><th> Vydané
 obálky </th></tr>
<tr><td class="cislo"> <a href="ps311?xjazyk=CZ&amp;xobec=500054">500054</a> </td><td>1&nbsp;234</td><td>  </td></tr>
</table>`

func parse(t *testing.T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

func TestHeaderLabel(t *testing.T) {
	doc := parse(t)
	var labels []string
	doc.Find("th").Each(func(_ int, th *goquery.Selection) {
		labels = append(labels, HeaderLabel(th))
	})
	require.Equal(t, []string{"Voliči v seznamu", "Vydané\n obálky"}, labels)
}

func TestCellText(t *testing.T) {
	doc := parse(t)
	cells := doc.Find("td")
	require.Equal(t, "500054", CellText(cells.Eq(0)))
	require.Equal(t, "1\u00a0234", CellText(cells.Eq(1)))
	require.Equal(t, "", CellText(cells.Eq(2)))
}

func TestFirstAnchor(t *testing.T) {
	doc := parse(t)
	cells := doc.Find("td")

	anchor, ok := FirstAnchor(cells.Eq(0))
	require.True(t, ok)
	require.Equal(t, Anchor{Name: "500054", Href: "ps311?xjazyk=CZ&xobec=500054"}, anchor)

	_, ok = FirstAnchor(cells.Eq(1))
	require.False(t, ok)
}

func TestResolveLink(t *testing.T) {
	base, err := url.Parse("https://www.volby.cz/pls/ps2017nss/ps3?xjazyk=CZ")
	require.NoError(t, err)

	testCases := []struct {
		href     string
		expected string
	}{
		{href: "ps32?xjazyk=CZ&xkraj=1", expected: "https://www.volby.cz/pls/ps2017nss/ps32?xjazyk=CZ&xkraj=1"},
		{href: " /pls/ps2017nss/ps36 ", expected: "https://www.volby.cz/pls/ps2017nss/ps36"},
		{href: "https://example.com/x", expected: "https://example.com/x"},
	}

	for _, test := range testCases {
		resolved, err := ResolveLink(base, test.href)
		require.NoError(t, err)
		require.Equal(t, test.expected, resolved)
	}
}
