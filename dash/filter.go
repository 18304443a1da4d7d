package dash

import (
	"strconv"
	"strings"
	"sync"

	"github.com/ozroads/charts/dataset"
)

// AllYears selects every year of the extract.
const AllYears = 0

// Filter holds one chart's selected facets. Every mutation notifies the
// owning pipeline exactly once; last state wins, there is no history.
// Mutations and Apply are safe to call from concurrent requests.
type Filter struct {
	mu            sync.Mutex
	year          int
	metric        string
	detection     string
	jurisdictions map[string]bool
	exclude       []string

	onChange func()
}

// NewFilter starts with every jurisdiction chip on, the Unknown bucket
// included, so the initial render matches the unfiltered extract.
func NewFilter(exclude []string) *Filter {
	f := Filter{
		year:          AllYears,
		jurisdictions: make(map[string]bool),
		exclude:       exclude,
	}
	for _, j := range dataset.Jurisdictions {
		f.jurisdictions[j] = true
	}
	f.jurisdictions[dataset.Unknown] = true
	return &f
}

func (f *Filter) notify() {
	if f.onChange != nil {
		f.onChange()
	}
}

// Year reports the selected year, AllYears when none is.
func (f *Filter) Year() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.year
}

// SetYear selects a single year, or every year with AllYears.
func (f *Filter) SetYear(year int) {
	f.mu.Lock()
	f.year = year
	f.mu.Unlock()
	f.notify()
}

func (f *Filter) SetMetric(metric string) {
	f.mu.Lock()
	f.metric = metric
	f.mu.Unlock()
	f.notify()
}

func (f *Filter) SetDetection(method string) {
	f.mu.Lock()
	f.detection = method
	f.mu.Unlock()
	f.notify()
}

// Toggle flips one jurisdiction chip.
func (f *Filter) Toggle(code string) {
	f.mu.Lock()
	f.jurisdictions[code] = !f.jurisdictions[code]
	f.mu.Unlock()
	f.notify()
}

// SelectAll enables every jurisdiction chip in one mutation.
func (f *Filter) SelectAll() {
	f.mu.Lock()
	for j := range f.jurisdictions {
		f.jurisdictions[j] = true
	}
	f.mu.Unlock()
	f.notify()
}

// ClearAll disables every jurisdiction chip in one mutation. The next render
// shows the no-data placeholder.
func (f *Filter) ClearAll() {
	f.mu.Lock()
	for j := range f.jurisdictions {
		f.jurisdictions[j] = false
	}
	f.mu.Unlock()
	f.notify()
}

func (f *Filter) excluded(rec dataset.Record) bool {
	for _, s := range f.exclude {
		if rec.AgeGroup == s || rec.Metric == s || rec.DetectionMethod == s {
			return true
		}
	}
	return false
}

// Apply keeps the records matching the current selection.
func (f *Filter) Apply(records []dataset.Record) []dataset.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dataset.Record
	for _, rec := range records {
		if f.year != AllYears && rec.Year != f.year {
			continue
		}
		if f.metric != "" && rec.Metric != f.metric {
			continue
		}
		if f.detection != "" && rec.DetectionMethod != f.detection {
			continue
		}
		if !f.jurisdictions[rec.Jurisdiction] {
			continue
		}
		if f.excluded(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FromQuery mutates the filter from URL-style parameters. Each recognized
// parameter is one mutation.
func (f *Filter) FromQuery(get func(string) string) {
	if y := get("year"); y != "" {
		if y == "all" {
			f.SetYear(AllYears)
		} else if n, err := strconv.Atoi(y); err == nil {
			f.SetYear(n)
		}
	}
	if m := get("metric"); m != "" {
		f.SetMetric(m)
	}
	if d := get("detection"); d != "" {
		f.SetDetection(d)
	}
	switch get("jurisdictions") {
	case "":
	case "all":
		f.SelectAll()
	case "none":
		f.ClearAll()
	default:
		f.ClearAll()
		for _, code := range strings.Split(get("jurisdictions"), ",") {
			if code = strings.TrimSpace(code); code != "" {
				f.Toggle(code)
			}
		}
	}
}
