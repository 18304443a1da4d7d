// Package geo loads the external geography file for choropleth charts and
// matches its features to jurisdiction codes.
package geo

import (
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ozroads/charts/dataset"
)

// GeoLoadError marks a failed geography fetch. It is recoverable: callers
// substitute the fallback features and keep drawing.
type GeoLoadError struct {
	Source string
	Err    error
}

func (e GeoLoadError) Error() string {
	return fmt.Sprintf("geography %s: %s", e.Source, e.Err)
}

func (e GeoLoadError) Unwrap() error {
	return e.Err
}

// Feature is one named region resolved to a jurisdiction code.
type Feature struct {
	Name     string
	Code     string
	Geometry orb.Geometry
}

// names maps every accepted spelling, uppercased, to its code. Codes map to
// themselves so a dataset-style feature name like "NSW" resolves too.
var names = map[string]string{
	"ACT": "ACT", "AUSTRALIAN CAPITAL TERRITORY": "ACT",
	"NSW": "NSW", "NEW SOUTH WALES": "NSW",
	"NT": "NT", "NORTHERN TERRITORY": "NT",
	"QLD": "QLD", "QUEENSLAND": "QLD",
	"SA": "SA", "SOUTH AUSTRALIA": "SA",
	"TAS": "TAS", "TASMANIA": "TAS",
	"VIC": "VIC", "VICTORIA": "VIC",
	"WA": "WA", "WESTERN AUSTRALIA": "WA",
}

// MatchCode resolves a feature name to a jurisdiction code, first exactly,
// then by substring ("New South Wales (Mainland)" still maps to NSW).
func MatchCode(name string) (string, bool) {
	up := strings.ToUpper(strings.TrimSpace(name))
	if code, ok := names[up]; ok {
		return code, true
	}
	for n, code := range names {
		if len(n) > 3 && strings.Contains(up, n) {
			return code, true
		}
	}
	return "", false
}

// property keys observed across public Australian boundary files.
var nameKeys = []string{"STATE_NAME", "STE_NAME16", "STE_NAME21", "name", "NAME"}

// Load fetches and parses a GeoJSON boundary file. Features whose name
// matches no jurisdiction are skipped.
func Load(location string) ([]Feature, error) {
	r, err := dataset.Open(location)
	if err != nil {
		return nil, GeoLoadError{Source: location, Err: err}
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, GeoLoadError{Source: location, Err: err}
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, GeoLoadError{Source: location, Err: err}
	}

	var list []Feature
	for _, f := range fc.Features {
		name := featureName(f)
		code, ok := MatchCode(name)
		if !ok {
			continue
		}
		list = append(list, Feature{
			Name:     name,
			Code:     code,
			Geometry: f.Geometry,
		})
	}
	if len(list) == 0 {
		return nil, GeoLoadError{Source: location, Err: fmt.Errorf("no matching features")}
	}
	return list, nil
}

func featureName(f *geojson.Feature) string {
	for _, k := range nameKeys {
		if v, ok := f.Properties[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Fallback returns one crude bounding polygon per jurisdiction so a
// choropleth stays drawable when the geography fetch fails. Coordinates are
// rough lon/lat boxes, geographically uninformative on purpose.
func Fallback() []Feature {
	boxes := map[string][4]float64{
		// minLon, minLat, maxLon, maxLat
		"WA":  {112.9, -35.2, 129.0, -13.7},
		"NT":  {129.0, -26.0, 138.0, -10.9},
		"SA":  {129.0, -38.1, 141.0, -26.0},
		"QLD": {138.0, -29.2, 153.6, -10.7},
		"NSW": {141.0, -37.5, 153.6, -28.2},
		"VIC": {141.0, -39.2, 150.0, -34.0},
		"TAS": {144.6, -43.7, 148.5, -40.6},
		"ACT": {148.8, -35.9, 149.4, -35.1},
	}
	var list []Feature
	for _, code := range dataset.Jurisdictions {
		b := boxes[code]
		ring := orb.Ring{
			{b[0], b[1]},
			{b[2], b[1]},
			{b[2], b[3]},
			{b[0], b[3]},
			{b[0], b[1]},
		}
		list = append(list, Feature{
			Name:     code,
			Code:     code,
			Geometry: orb.Polygon{ring},
		})
	}
	return list
}
