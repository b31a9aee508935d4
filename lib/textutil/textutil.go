package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name and drops diacritics and whitespace, so
// "Ústí nad Labem" and "ustinadlabem" compare equal.
func NormalizeName(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	folded = whitespaceRegex.ReplaceAllString(folded, "")
	return folded
}

type Match struct {
	Index      int
	Name       string
	Similarity float64
}

// RankByName scores every candidate against query and returns the matches
// most similar first. A candidate containing the query outright always
// scores 1.
func RankByName(query string, candidates []string) []Match {
	target := NormalizeName(query)

	matches := make([]Match, len(candidates))
	for i, c := range candidates {
		normalized := NormalizeName(c)
		similarity := matchr.JaroWinkler(target, normalized, false)
		if target != "" && strings.Contains(normalized, target) {
			similarity = 1
		}
		matches[i] = Match{Index: i, Name: c, Similarity: similarity}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}
