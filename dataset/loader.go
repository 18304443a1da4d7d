package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// LoadError wraps a network or parse failure on a data file. Callers render
// a visible error state in place of the chart, never a blank one.
type LoadError struct {
	Source string
	Err    error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Source, e.Err)
}

func (e LoadError) Unwrap() error {
	return e.Err
}

func loadErr(source string, err error) error {
	return LoadError{Source: source, Err: err}
}

// Schema maps a file's header row onto Record fields. Required columns fail
// the whole load when absent; optional ones default per field kind.
type Schema struct {
	Required []string
	// CountField renames a dataset-specific count column (e.g. "SUM(COUNT)")
	// onto the canonical COUNT field.
	CountField string
}

func DefaultSchema() Schema {
	return Schema{
		Required: []string{FieldYear, FieldJuris, FieldMetric},
	}
}

// Loader reads enforcement extracts into typed records. All state is carried
// by the struct; nothing package-level, so lifecycle is the caller's call.
type Loader struct {
	cache *Cache
	check *validator.Validate
	log   zerolog.Logger
}

func NewLoader(cache *Cache, log zerolog.Logger) *Loader {
	return &Loader{
		cache: cache,
		check: validator.New(),
		log:   log.With().Str("component", "loader").Logger(),
	}
}

// Load fetches and parses the file at location, which can be a local path or
// an http(s) URL. Results are cached per location and schema when a cache is
// attached, since the schema changes how the same file parses.
func (ld *Loader) Load(location string, schema Schema) ([]Record, error) {
	key := cacheKey(location, schema)
	if ld.cache != nil {
		if rs, ok := ld.cache.Get(key); ok {
			return rs, nil
		}
	}
	r, err := Open(location)
	if err != nil {
		return nil, loadErr(location, err)
	}
	defer r.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(stripQuery(location))) {
	case ".xlsx", ".xlsm":
		rows, err = sheetRows(r)
	default:
		rows, err = csvRows(r)
	}
	if err != nil {
		return nil, loadErr(location, err)
	}
	records, err := ld.parse(rows, schema)
	if err != nil {
		return nil, loadErr(location, err)
	}
	ld.log.Info().Str("source", location).Int("records", len(records)).Msg("dataset loaded")
	if ld.cache != nil {
		ld.cache.Put(key, records)
	}
	return records, nil
}

func cacheKey(location string, schema Schema) string {
	parts := append([]string{location, schema.CountField}, schema.Required...)
	return strings.Join(parts, "\x1f")
}

func (ld *Loader) parse(rows [][]string, schema Schema) ([]Record, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}
	cols, err := mapHeader(rows[0], schema)
	if err != nil {
		return nil, err
	}
	var list []Record
	for i, row := range rows[1:] {
		rec, err := cols.record(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := ld.check.Struct(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		list = append(list, rec)
	}
	return list, nil
}

type columns map[string]int

func mapHeader(header []string, schema Schema) (columns, error) {
	cols := make(columns)
	for i, h := range header {
		name := strings.ToUpper(strings.TrimSpace(h))
		if schema.CountField != "" && name == strings.ToUpper(schema.CountField) {
			name = FieldCount
		}
		cols[name] = i
	}
	for _, req := range schema.Required {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("missing required column %s", req)
		}
	}
	return cols, nil
}

func (c columns) record(row []string) (Record, error) {
	var (
		rec Record
		err error
	)
	rec.Year, err = c.intAt(row, FieldYear)
	if err != nil {
		return rec, err
	}
	rec.Jurisdiction = c.category(row, FieldJuris)
	if rec.Jurisdiction != Unknown && !ValidJurisdiction(rec.Jurisdiction) {
		return rec, fmt.Errorf("unknown jurisdiction %q", rec.Jurisdiction)
	}
	rec.Metric = c.category(row, FieldMetric)
	rec.AgeGroup = c.category(row, FieldAge)
	rec.DetectionMethod = c.category(row, FieldDetection)

	rec.Count = c.count(row, FieldCount)
	rec.Fines = c.count(row, FieldFines)
	rec.Arrests = c.count(row, FieldArrests)
	rec.Charges = c.count(row, FieldCharges)

	rec.Start = c.date(row, FieldStart)
	rec.End = c.date(row, FieldEnd)
	return rec, nil
}

func (c columns) at(row []string, field string) (string, bool) {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func (c columns) intAt(row []string, field string) (int, error) {
	s, ok := c.at(row, field)
	if !ok || s == "" {
		return 0, fmt.Errorf("missing %s value", field)
	}
	return strconv.Atoi(s)
}

// category keeps blank and absent values as the Unknown bucket instead of
// dropping the row.
func (c columns) category(row []string, field string) string {
	s, ok := c.at(row, field)
	if !ok || s == "" {
		return Unknown
	}
	return s
}

// count coerces an invalid or missing numeric to 0.
func (c columns) count(row []string, field string) float64 {
	s, ok := c.at(row, field)
	if !ok || s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func (c columns) date(row []string, field string) (t time.Time) {
	s, ok := c.at(row, field)
	if !ok || s == "" {
		return t
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2006"} {
		if v, err := time.Parse(layout, s); err == nil {
			return v
		}
	}
	return t
}

func csvRows(r io.Reader) ([][]string, error) {
	rs := csv.NewReader(r)
	rs.FieldsPerRecord = -1
	return rs.ReadAll()
}

func sheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// Open fetches a local path or http(s) URL as a reader. The geography loader
// shares it.
func Open(location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("fetch ends with status %s", res.Status)
		}
		return res.Body, nil
	case "", "file":
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("%s: unsupported scheme", u.Scheme)
	}
}

func stripQuery(location string) string {
	if i := strings.IndexByte(location, '?'); i >= 0 {
		return location[:i]
	}
	return location
}
