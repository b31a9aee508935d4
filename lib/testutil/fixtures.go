package testutil

import (
	"embed"
	"fmt"
)

//go:embed testdata/*.html
var fixtures embed.FS

// Fixture returns the html saved as testdata/<name>.html.
func Fixture(name string) string {
	contents, err := fixtures.ReadFile(fmt.Sprintf("testdata/%s.html", name))
	if err != nil {
		panic(err)
	}
	return string(contents)
}

// ElectionPages is a small election: a foreign listing of five precincts
// where precinct 3 has no party tables, and a district index where Benešov
// (district 2) has two municipalities.
func ElectionPages() Pages {
	return Pages{
		"ps36":               Fixture("crawl_listing"),
		"ps361?xokrsek=1":    Fixture("foreign_detail"),
		"ps361?xokrsek=2":    Fixture("foreign_detail"),
		"ps361?xokrsek=3":    Fixture("detail_two_tables"),
		"ps361?xokrsek=4":    Fixture("foreign_detail_b"),
		"ps361?xokrsek=5":    Fixture("foreign_detail"),
		"ps3":                Fixture("district_index"),
		"ps32?xnumnuts=2101": Fixture("municipality_listing"),
		"ps311?xobec=529303": Fixture("municipality_detail"),
		"ps311?xobec=532568": Fixture("municipality_detail_short"),
	}
}
