package dataset

import (
	"math"
	"reflect"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{Jurisdiction: "NSW", Year: 2023, Metric: "breath_tests_conducted", Count: 100},
		{Jurisdiction: "NSW", Year: 2023, Metric: "drug_tests_conducted", Count: 20},
		{Jurisdiction: "VIC", Year: 2023, Metric: "breath_tests_conducted", Count: 50},
	}
}

func TestAggregateByJurisdiction(t *testing.T) {
	entries := Aggregate(sampleRecords(), []string{FieldJuris}, FieldCount)
	if len(entries) != 2 {
		t.Fatalf("groups: got %d, want 2", len(entries))
	}
	want := map[string]float64{"NSW": 120, "VIC": 50}
	for _, e := range entries {
		if e.Value != want[e.Key()] {
			t.Errorf("%s: got %f, want %f", e.Key(), e.Value, want[e.Key()])
		}
	}
}

func TestAggregateTotalsMatchFlatSum(t *testing.T) {
	records := sampleRecords()
	var flat float64
	for _, r := range records {
		flat += r.Count
	}
	for _, keys := range [][]string{
		{FieldJuris},
		{FieldMetric},
		{FieldJuris, FieldMetric},
		{FieldYear, FieldJuris, FieldMetric},
	} {
		if got := Total(Aggregate(records, keys, FieldCount)); got != flat {
			t.Errorf("group by %v: total %f, want %f", keys, got, flat)
		}
	}
}

func TestRankDescStableTies(t *testing.T) {
	entries := []Entry{
		{Keys: []string{"QLD"}, Value: 30},
		{Keys: []string{"NSW"}, Value: 120},
		{Keys: []string{"SA"}, Value: 30},
		{Keys: []string{"VIC"}, Value: 50},
	}
	fst := RankDesc(entries)
	snd := RankDesc(entries)
	if !reflect.DeepEqual(fst, snd) {
		t.Fatal("ranking must be deterministic")
	}
	order := []string{"NSW", "VIC", "QLD", "SA"}
	for i, want := range order {
		if fst[i].Key() != want {
			t.Fatalf("rank %d: got %s, want %s", i+1, fst[i].Key(), want)
		}
	}
}

func TestRankingScenario(t *testing.T) {
	entries := RankDesc(Aggregate(sampleRecords(), []string{FieldJuris}, FieldCount))
	if entries[0].Key() != "NSW" || entries[0].Value != 120 {
		t.Fatalf("#1 should be NSW (120), got %s (%f)", entries[0].Key(), entries[0].Value)
	}
	if entries[1].Key() != "VIC" || entries[1].Value != 50 {
		t.Fatalf("#2 should be VIC (50), got %s (%f)", entries[1].Key(), entries[1].Value)
	}
}

func TestAlcoholShare(t *testing.T) {
	var (
		records = sampleRecords()
		nsw     []Record
	)
	for _, r := range records {
		if r.Jurisdiction == "NSW" {
			nsw = append(nsw, r)
		}
	}
	byMetric := Aggregate(nsw, []string{FieldMetric}, FieldCount)
	var alcohol float64
	for _, e := range byMetric {
		if e.Key() == "breath_tests_conducted" {
			alcohol = e.Value
		}
	}
	got := Share(alcohol, Total(byMetric))
	if math.Abs(got-83.3) > 0.1 {
		t.Fatalf("alcohol share: got %.1f%%, want 83.3%%", got)
	}
}

func TestShareZeroTotal(t *testing.T) {
	if got := Share(0, 0); got != 0 {
		t.Fatalf("0/0 share must be 0, got %f", got)
	}
	if got := Share(10, 0); got != 0 {
		t.Fatalf("n/0 share must be 0, got %f", got)
	}
	if math.IsNaN(Share(0, 0)) {
		t.Fatal("share must never be NaN")
	}
}

func TestSortByKeyNumeric(t *testing.T) {
	entries := []Entry{
		{Keys: []string{"2023"}},
		{Keys: []string{"2008"}},
		{Keys: []string{"2015"}},
	}
	sorted := SortByKey(entries)
	want := []string{"2008", "2015", "2023"}
	for i, e := range sorted {
		if e.Key() != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, e.Key(), want[i])
		}
	}
}

func TestUnknownBucketKept(t *testing.T) {
	records := append(sampleRecords(), Record{
		Jurisdiction: Unknown, Year: 2023, Metric: "breath_tests_conducted", Count: 7,
	})
	entries := Aggregate(records, []string{FieldJuris}, FieldCount)
	var found bool
	for _, e := range entries {
		if e.Key() == Unknown && e.Value == 7 {
			found = true
		}
	}
	if !found {
		t.Fatal("unknown bucket must survive aggregation")
	}
}

func TestTop(t *testing.T) {
	entries := Aggregate(sampleRecords(), []string{FieldJuris}, FieldCount)
	if got := Top(entries, 1); len(got) != 1 || got[0].Key() != "NSW" {
		t.Fatalf("top 1: got %v", got)
	}
	if got := Top(entries, 0); len(got) != 2 {
		t.Fatalf("top 0 keeps all: got %d", len(got))
	}
}
