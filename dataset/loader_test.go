package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extract.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testLoader(cache *Cache) *Loader {
	return NewLoader(cache, zerolog.Nop())
}

const sampleCSV = `YEAR,JURISDICTION,METRIC,COUNT,AGE_GROUP
2023,NSW,breath_tests_conducted,100,All ages
2023,NSW,drug_tests_conducted,20,All ages
2023,VIC,breath_tests_conducted,50,All ages
`

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	records, err := testLoader(nil).Load(path, DefaultSchema())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records: got %d, want 3", len(records))
	}
	r := records[0]
	if r.Year != 2023 || r.Jurisdiction != "NSW" || r.Count != 100 {
		t.Fatalf("first record mismatch: %+v", r)
	}
	if r.AgeGroup != AllAges {
		t.Fatalf("age group: got %q", r.AgeGroup)
	}
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, "YEAR,METRIC,COUNT\n2023,breath_tests_conducted,10\n")
	_, err := testLoader(nil).Load(path, DefaultSchema())
	if err == nil {
		t.Fatal("missing JURISDICTION must fail the load")
	}
	var le LoadError
	if !errors.As(err, &le) {
		t.Fatalf("want LoadError, got %T", err)
	}
}

func TestLoadCoercesBadCounts(t *testing.T) {
	path := writeCSV(t, "YEAR,JURISDICTION,METRIC,COUNT\n2023,NSW,fines_issued,n/a\n2023,VIC,fines_issued,-5\n")
	records, err := testLoader(nil).Load(path, DefaultSchema())
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.Count != 0 {
			t.Fatalf("invalid count must coerce to 0, got %f", r.Count)
		}
	}
}

func TestLoadBlankCategoricalBecomesUnknown(t *testing.T) {
	path := writeCSV(t, "YEAR,JURISDICTION,METRIC,COUNT,AGE_GROUP\n2023,NSW,arrests,3,\n")
	records, err := testLoader(nil).Load(path, DefaultSchema())
	if err != nil {
		t.Fatal(err)
	}
	if records[0].AgeGroup != Unknown {
		t.Fatalf("blank age group: got %q, want %q", records[0].AgeGroup, Unknown)
	}
}

func TestLoadRejectsBadJurisdiction(t *testing.T) {
	path := writeCSV(t, "YEAR,JURISDICTION,METRIC,COUNT\n2023,XYZ,arrests,3\n")
	if _, err := testLoader(nil).Load(path, DefaultSchema()); err == nil {
		t.Fatal("unknown jurisdiction code must fail the load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := testLoader(nil).Load(filepath.Join(t.TempDir(), "nope.csv"), DefaultSchema())
	var le LoadError
	if !errors.As(err, &le) {
		t.Fatalf("want LoadError, got %v", err)
	}
}

func TestLoaderCache(t *testing.T) {
	var (
		cache = NewCache()
		path  = writeCSV(t, sampleCSV)
	)
	fst, err := testLoader(cache).Load(path, DefaultSchema())
	if err != nil {
		t.Fatal(err)
	}
	// breaking the file proves the second load is served from cache
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	snd, err := testLoader(cache).Load(path, DefaultSchema())
	if err != nil {
		t.Fatal(err)
	}
	if len(fst) != len(snd) {
		t.Fatal("cache miss on identical location")
	}
}

func TestCacheKeyedBySchema(t *testing.T) {
	var (
		cache = NewCache()
		path  = writeCSV(t, "YEAR,JURISDICTION,METRIC,COUNT,SUM(COUNT)\n2023,NSW,breath_tests_conducted,10,42\n")
	)
	plain, err := testLoader(cache).Load(path, DefaultSchema())
	if err != nil {
		t.Fatal(err)
	}
	if plain[0].Count != 10 {
		t.Fatalf("default schema count: got %f, want 10", plain[0].Count)
	}

	renamed := DefaultSchema()
	renamed.CountField = "SUM(COUNT)"
	summed, err := testLoader(cache).Load(path, renamed)
	if err != nil {
		t.Fatal(err)
	}
	if summed[0].Count != 42 {
		t.Fatalf("renamed schema must not reuse the previous parse: got %f, want 42", summed[0].Count)
	}
}

func TestCountFieldRename(t *testing.T) {
	path := writeCSV(t, "YEAR,JURISDICTION,METRIC,SUM(COUNT)\n2023,NSW,breath_tests_conducted,42\n")
	schema := DefaultSchema()
	schema.CountField = "SUM(COUNT)"
	records, err := testLoader(nil).Load(path, schema)
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Count != 42 {
		t.Fatalf("renamed count column: got %f, want 42", records[0].Count)
	}
}
