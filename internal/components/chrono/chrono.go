package chrono

import (
	"time"
	_ "time/tzdata"
)

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current time in Location.
	Now() time.Time
	Location() *time.Location
}

// StandardImpl is the system clock pinned to the election authority's timezone.
type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always returns the same instant.
type FixedImpl struct {
	At time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.At
}

func (f FixedImpl) Location() *time.Location {
	return f.At.Location()
}

// Stamp formats t the way run artifacts are named, e.g. 20241017_1530.
func Stamp(t time.Time) string {
	return t.Format("20060102_1504")
}
