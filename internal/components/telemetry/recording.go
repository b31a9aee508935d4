package telemetry

import (
	"strings"
	"sync"
)

type Report struct {
	Kind   string
	ID     string
	Params []any
}

// RecordingAPI keeps every report in memory, it is meant for tests that
// assert a component reported (or did not report) something.
type RecordingAPI struct {
	mu      *sync.Mutex
	reports *[]Report
	counts  map[string]int64
}

func NewRecordingAPI() RecordingAPI {
	return RecordingAPI{
		mu:      &sync.Mutex{},
		reports: &[]Report{},
		counts:  map[string]int64{},
	}
}

func (r RecordingAPI) record(kind, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.reports = append(*r.reports, Report{Kind: kind, ID: id, Params: params})
}

func (r RecordingAPI) ReportBroken(id string, params ...any) {
	r.record("broken", id, params)
}

func (r RecordingAPI) ReportWarning(id string, params ...any) {
	r.record("warning", id, params)
}

func (r RecordingAPI) ReportDebug(msg string, params ...any) {
	r.record("debug", msg, params)
}

func (r RecordingAPI) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[id] = count
}

// Reports returns every report of the given kind whose id ends with suffix.
func (r RecordingAPI) Reports(kind, suffix string) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Report
	for _, rep := range *r.reports {
		if rep.Kind == kind && strings.HasSuffix(rep.ID, suffix) {
			out = append(out, rep)
		}
	}
	return out
}

// Count returns the last count reported for an id ending with suffix.
func (r RecordingAPI) Count(suffix string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.counts {
		if strings.HasSuffix(id, suffix) {
			return n, true
		}
	}
	return 0, false
}
