package htmlutil

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// StrippedStrings returns every descendant text node with surrounding
// whitespace (nbsp included) removed, skipping the ones left empty.
func StrippedStrings(node *html.Node) []string {
	var out []string
	collectStripped(node, &out)
	return out
}

func collectStripped(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*out = append(*out, text)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectStripped(child, out)
	}
}

func joinStripped(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		parts = append(parts, StrippedStrings(n)...)
	}
	return strings.Join(parts, sep)
}

// CellText is the text of a table cell: stripped fragments glued together.
func CellText(sel *goquery.Selection) string {
	return joinStripped(sel, "")
}

// HeaderLabel is the text of a header cell: stripped fragments joined by a
// space, so "<th>Voliči<br>v seznamu</th>" reads "Voliči v seznamu".
func HeaderLabel(sel *goquery.Selection) string {
	return joinStripped(sel, " ")
}

type Anchor struct {
	Name string
	Href string
}

// FirstAnchor returns the first <a href> nested in sel.
func FirstAnchor(sel *goquery.Selection) (Anchor, bool) {
	a := sel.Find("a").First()
	if a.Length() == 0 {
		return Anchor{}, false
	}
	href, ok := a.Attr("href")
	if !ok {
		return Anchor{}, false
	}
	return Anchor{Name: CellText(a), Href: href}, true
}

// ResolveLink resolves href against base, the way a browser would follow it.
func ResolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
