package volby

import (
	"strconv"
)

type Kind int

const (
	KindText Kind = iota
	KindInt
)

// Value is one exported cell, either page text or a vote count.
type Value struct {
	Kind Kind
	Text string
	Int  int64
}

func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func Int(n int64) Value {
	return Value{Kind: KindInt, Int: n}
}

func (v Value) String() string {
	if v.Kind == KindInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Text
}

// Any returns the value as a string or an int64, for serializers that
// distinguish the two.
func (v Value) Any() any {
	if v.Kind == KindInt {
		return v.Int
	}
	return v.Text
}

type Field struct {
	Name  string
	Value Value
}

// Fields is an ordered set of named values, a name appears at most once.
type Fields []Field

func (f Fields) Get(name string) (Value, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return Value{}, false
}

// Set overwrites an existing field in place or appends a new one.
func (f *Fields) Set(name string, value Value) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// PartyTally maps a party label to its summed vote count, in the order the
// parties were first seen.
type PartyTally struct {
	order []string
	votes map[string]int64
}

func NewPartyTally() PartyTally {
	return PartyTally{votes: map[string]int64{}}
}

// Add accumulates votes onto party, a repeated label is summed, not replaced.
func (p *PartyTally) Add(party string, votes int64) {
	if p.votes == nil {
		p.votes = map[string]int64{}
	}
	if _, ok := p.votes[party]; !ok {
		p.order = append(p.order, party)
	}
	p.votes[party] += votes
}

func (p PartyTally) Get(party string) (int64, bool) {
	n, ok := p.votes[party]
	return n, ok
}

func (p PartyTally) Parties() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

func (p PartyTally) Len() int {
	return len(p.order)
}

// Leaf is a location with its own detail page.
type Leaf interface {
	// Identity is the hierarchical identity copied into the merged record.
	Identity() Fields
	DetailLink() string
	String() string
}

// ListingRecord is one row of the foreign precinct listing. Continent and
// Country are carried forward from earlier rows when the source omits them.
type ListingRecord struct {
	Continent string `json:"Kontinent"`
	Country   string `json:"Země"`
	City      string `json:"Město"`
	Precinct  string `json:"Okrsek"`
	Link      string `json:"Odkaz,omitempty"`
}

const (
	FieldContinent = "Kontinent"
	FieldCountry   = "Země"
	FieldCity      = "Město"

	FieldMunicipalityNumber = "Číslo obce"
	FieldMunicipalityName   = "Název obce"
)

func (r ListingRecord) Identity() Fields {
	return Fields{
		{Name: FieldContinent, Value: Text(r.Continent)},
		{Name: FieldCountry, Value: Text(r.Country)},
		{Name: FieldCity, Value: Text(r.City)},
	}
}

func (r ListingRecord) DetailLink() string {
	return r.Link
}

func (r ListingRecord) String() string {
	return r.Continent + " | " + r.Country + " | " + r.City
}

// District is a top-level grouping of the domestic results, numbered in
// page order across all regions.
type District struct {
	Number int    `json:"cislo"`
	Region string `json:"kraj"`
	Name   string `json:"nazev"`
	Link   string `json:"odkaz"`
}

type Municipality struct {
	Number string `json:"cislo"`
	Name   string `json:"obec"`
	Link   string `json:"odkaz"`
}

func (m Municipality) Identity() Fields {
	return Fields{
		{Name: FieldMunicipalityNumber, Value: Text(m.Number)},
		{Name: FieldMunicipalityName, Value: Text(m.Name)},
	}
}

func (m Municipality) DetailLink() string {
	return m.Link
}

func (m Municipality) String() string {
	return m.Number + " - " + m.Name
}

// MergedRecord is one leaf's identity, metadata and party votes flattened
// into a single ordered field set.
type MergedRecord struct {
	Fields Fields
}

// Collection is the crawl's accumulated state: records in leaf order and
// every party label observed so far.
type Collection struct {
	Records []MergedRecord
	Parties []string
	seen    map[string]struct{}
}

func NewCollection() *Collection {
	return &Collection{seen: map[string]struct{}{}}
}

func (c *Collection) Append(record MergedRecord, parties []string) {
	if c.seen == nil {
		c.seen = map[string]struct{}{}
	}
	c.Records = append(c.Records, record)
	for _, p := range parties {
		if _, ok := c.seen[p]; ok {
			continue
		}
		c.seen[p] = struct{}{}
		c.Parties = append(c.Parties, p)
	}
}

// Merge builds the record for a leaf. Party votes are written last so a
// party label shadows a metadata label of the same name.
func Merge(leaf Leaf, detail Detail) MergedRecord {
	fields := leaf.Identity().Clone()
	for _, f := range detail.Metadata {
		fields.Set(f.Name, f.Value)
	}
	for _, party := range detail.Tally.Parties() {
		votes, _ := detail.Tally.Get(party)
		fields.Set(party, Int(votes))
	}
	return MergedRecord{Fields: fields}
}
