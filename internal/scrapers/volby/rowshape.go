package volby

import (
	"errors"
	"fmt"
)

var ErrMalformedRow = errors.New("malformed row")

// Cell is one <td> of a listing row.
type Cell struct {
	Text string
	// Link is the href of an anchor inside the cell, empty when there is none.
	Link string
}

// hierarchical fields of a foreign listing row, outermost first.
const (
	levelContinent = iota
	levelCountry
	levelCity
	levelPrecinct
	levelCount
)

// carried is how many leading levels may be omitted by the source.
const carried = levelCity

// RowShape is one way the source renders a listing row. Offsets[level] is the
// cell holding that level, -1 when the level is inherited from the previous
// row.
type RowShape struct {
	Name    string
	Cells   int
	Offsets [levelCount]int
}

// rowShapes is the closed set of valid shapes, indexed by cell count. Only a
// prefix of the carried levels is ever omitted.
var rowShapes = map[int]RowShape{
	4: {Name: "full", Cells: 4, Offsets: [levelCount]int{0, 1, 2, 3}},
	3: {Name: "omit-continent", Cells: 3, Offsets: [levelCount]int{-1, 0, 1, 2}},
	2: {Name: "omit-country", Cells: 2, Offsets: [levelCount]int{-1, -1, 0, 1}},
}

// ShapeOf resolves the shape for a row with the given cell count.
func ShapeOf(cells int) (RowShape, bool) {
	shape, ok := rowShapes[cells]
	return shape, ok
}

// CarryState holds the outer levels set by the most recent row that had them.
type CarryState struct {
	Continent string
	Country   string
}

func (s CarryState) get(level int) string {
	switch level {
	case levelContinent:
		return s.Continent
	case levelCountry:
		return s.Country
	}
	return ""
}

func (s *CarryState) set(level int, value string) {
	switch level {
	case levelContinent:
		s.Continent = value
	case levelCountry:
		s.Country = value
	}
}

// ClassifyRow maps one row onto a ListingRecord using only its cell count,
// restoring omitted outer levels from state. An empty outer cell keeps the
// carried value. The returned state is what the next row inherits.
func ClassifyRow(cells []Cell, state CarryState) (ListingRecord, CarryState, error) {
	shape, ok := ShapeOf(len(cells))
	if !ok {
		return ListingRecord{}, state, fmt.Errorf("%w: %d cells", ErrMalformedRow, len(cells))
	}

	for level := 0; level < carried; level++ {
		offset := shape.Offsets[level]
		if offset < 0 {
			continue
		}
		if text := cells[offset].Text; text != "" {
			state.set(level, text)
		}
	}

	last := cells[len(cells)-1]
	record := ListingRecord{
		Continent: state.get(levelContinent),
		Country:   state.get(levelCountry),
		City:      cells[shape.Offsets[levelCity]].Text,
		Precinct:  cells[shape.Offsets[levelPrecinct]].Text,
		Link:      last.Link,
	}
	return record, state, nil
}
