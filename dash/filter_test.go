package dash

import (
	"sync"
	"testing"

	"github.com/ozroads/charts/dataset"
)

func testRecords() []dataset.Record {
	return []dataset.Record{
		{Jurisdiction: "NSW", Year: 2023, Metric: "breath_tests_conducted", Count: 100},
		{Jurisdiction: "NSW", Year: 2023, Metric: "drug_tests_conducted", Count: 20},
		{Jurisdiction: "VIC", Year: 2023, Metric: "breath_tests_conducted", Count: 50},
		{Jurisdiction: "VIC", Year: 2022, Metric: "breath_tests_conducted", Count: 40},
		{Jurisdiction: "QLD", Year: 2023, Metric: "breath_tests_conducted", Count: 30, AgeGroup: dataset.AllAges},
	}
}

func TestSelectAllReproducesUnfiltered(t *testing.T) {
	f := NewFilter(nil)
	f.ClearAll()
	f.SelectAll()
	if got := len(f.Apply(testRecords())); got != len(testRecords()) {
		t.Fatalf("select all: got %d records, want %d", got, len(testRecords()))
	}
	total := dataset.Total(dataset.Aggregate(f.Apply(testRecords()), []string{dataset.FieldJuris}, dataset.FieldCount))
	if total != 240 {
		t.Fatalf("unfiltered total: got %f, want 240", total)
	}
}

func TestClearAllYieldsNoRecords(t *testing.T) {
	f := NewFilter(nil)
	f.ClearAll()
	if got := f.Apply(testRecords()); len(got) != 0 {
		t.Fatalf("clear all: got %d records, want 0", len(got))
	}
}

func TestClearAllDropsUnknownJurisdiction(t *testing.T) {
	records := append(testRecords(), dataset.Record{
		Jurisdiction: dataset.Unknown, Year: 2023, Metric: "breath_tests_conducted", Count: 7,
	})
	f := NewFilter(nil)
	if got := len(f.Apply(records)); got != len(records) {
		t.Fatalf("unknown bucket must show by default: got %d, want %d", got, len(records))
	}
	f.ClearAll()
	if got := f.Apply(records); len(got) != 0 {
		t.Fatalf("clear all must also drop the unknown bucket, got %d records", len(got))
	}
	f.SelectAll()
	if got := len(f.Apply(records)); got != len(records) {
		t.Fatalf("select all must restore the unknown bucket: got %d", got)
	}
}

func TestFilterConcurrentUse(t *testing.T) {
	var (
		f       = NewFilter(nil)
		records = testRecords()
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.ClearAll()
				f.Toggle("NSW")
				f.SelectAll()
				f.SetYear(2023)
				f.Apply(records)
			}
		}()
	}
	wg.Wait()
	f.SelectAll()
	f.SetYear(AllYears)
	if got := len(f.Apply(records)); got != len(records) {
		t.Fatalf("filter state corrupted by concurrent use: got %d records", got)
	}
}

func TestYearFilter(t *testing.T) {
	f := NewFilter(nil)
	f.SetYear(2022)
	got := f.Apply(testRecords())
	if len(got) != 1 || got[0].Jurisdiction != "VIC" {
		t.Fatalf("year 2022: got %+v", got)
	}
	f.SetYear(AllYears)
	if len(f.Apply(testRecords())) != len(testRecords()) {
		t.Fatal("all years must reproduce the full set")
	}
}

func TestToggleChip(t *testing.T) {
	f := NewFilter(nil)
	f.Toggle("NSW")
	for _, r := range f.Apply(testRecords()) {
		if r.Jurisdiction == "NSW" {
			t.Fatal("toggled-off jurisdiction still present")
		}
	}
	f.Toggle("NSW")
	if len(f.Apply(testRecords())) != len(testRecords()) {
		t.Fatal("re-toggling must restore the jurisdiction")
	}
}

func TestExcludeSentinels(t *testing.T) {
	f := NewFilter([]string{dataset.AllAges})
	for _, r := range f.Apply(testRecords()) {
		if r.AgeGroup == dataset.AllAges {
			t.Fatal("excluded bucket still present")
		}
	}
}

func TestEveryMutationNotifiesOnce(t *testing.T) {
	f := NewFilter(nil)
	var calls int
	f.onChange = func() { calls++ }

	f.SetYear(2023)
	f.SetMetric("breath_tests_conducted")
	f.Toggle("NSW")
	f.SelectAll()
	f.ClearAll()
	if calls != 5 {
		t.Fatalf("five mutations must notify five times, got %d", calls)
	}
}

func TestFromQuery(t *testing.T) {
	f := NewFilter(nil)
	params := map[string]string{
		"year":          "2023",
		"metric":        "breath_tests_conducted",
		"jurisdictions": "NSW,VIC",
	}
	f.FromQuery(func(k string) string { return params[k] })

	if f.Year() != 2023 {
		t.Fatalf("year: got %d", f.Year())
	}
	got := f.Apply(testRecords())
	for _, r := range got {
		if r.Jurisdiction == "QLD" {
			t.Fatal("QLD should be deselected")
		}
		if r.Metric != "breath_tests_conducted" {
			t.Fatalf("metric filter leaked %s", r.Metric)
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}
