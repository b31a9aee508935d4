package harvest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"volby-harvest/internal/scrapers/volby"
)

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrNotANumber       = fmt.Errorf("%w: not a number", ErrInvalidSelection)
)

// messages shown to the operator, matching the wording of the results site.
const (
	MessageNotANumber       = "Chybný vstup! Zadejte číslo."
	MessageInvalidSelection = "Neplatný výběr!"
)

// Selection is what the operator picked, either one district or the
// foreign precincts.
type Selection struct {
	Foreign  bool
	District volby.District
}

// ParseSelection resolves the operator's input against the numbered
// districts. sentinel selects the foreign precincts.
func ParseSelection(input string, districts []volby.District, sentinel int) (Selection, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	if n == sentinel {
		return Selection{Foreign: true}, nil
	}
	for _, d := range districts {
		if d.Number == n {
			return Selection{District: d}, nil
		}
	}
	return Selection{}, fmt.Errorf("%w: %d", ErrInvalidSelection, n)
}

// SelectionMessage is the operator facing text for a selection error.
func SelectionMessage(err error) string {
	if errors.Is(err, ErrNotANumber) {
		return MessageNotANumber
	}
	return MessageInvalidSelection
}
