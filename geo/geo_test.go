package geo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ozroads/charts"
	"github.com/ozroads/charts/dataset"
)

func TestMatchCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"NSW", "NSW"},
		{"New South Wales", "NSW"},
		{"NEW SOUTH WALES", "NSW"},
		{"New South Wales (Mainland)", "NSW"},
		{"queensland", "QLD"},
		{"Australian Capital Territory", "ACT"},
		{"Northern Territory", "NT"},
	}
	for _, c := range tests {
		got, ok := MatchCode(c.name)
		if !ok || got != c.want {
			t.Errorf("%q: got %q (%v), want %q", c.name, got, ok, c.want)
		}
	}
	if _, ok := MatchCode("Auckland"); ok {
		t.Error("foreign region must not match")
	}
}

func TestMatchCodeAgreement(t *testing.T) {
	long, _ := MatchCode("New South Wales")
	short, _ := MatchCode("NSW")
	if long != short {
		t.Fatalf("full name and code must agree: %q vs %q", long, short)
	}
	scale := charts.SequentialScaler("#eff3ff", "#08519c", 120)
	values := map[string]float64{long: 120}
	if scale.At(values[long]) != scale.At(values[short]) {
		t.Fatal("same code must receive the same fill")
	}
}

func TestFallbackCoversAllJurisdictions(t *testing.T) {
	features := Fallback()
	if len(features) != len(dataset.Jurisdictions) {
		t.Fatalf("fallback features: got %d, want %d", len(features), len(dataset.Jurisdictions))
	}
	seen := make(map[string]bool)
	for _, f := range features {
		seen[f.Code] = true
	}
	for _, code := range dataset.Jurisdictions {
		if !seen[code] {
			t.Errorf("missing fallback polygon for %s", code)
		}
	}
}

func TestChoroplethDrawsFallback(t *testing.T) {
	choro := Choropleth{
		Features: Fallback(),
		Width:    640,
		Height:   460,
		Color:    charts.SequentialScaler("#eff3ff", "#08519c", 120),
		Values:   map[string]float64{"NSW": 120, "VIC": 50},
		Titles:   map[string]string{"NSW": "NSW: 120 (70.6%)"},
	}
	var buf bytes.Buffer
	charts.RenderElement(&buf, choro.Render())
	out := buf.String()
	if !strings.Contains(out, "path") {
		t.Fatal("choropleth should draw polygons")
	}
	if !strings.Contains(out, "NSW: 120") {
		t.Fatal("tooltip title missing")
	}
}

func TestProjectionFlipsLatitude(t *testing.T) {
	features := Fallback()
	proj := FitProjection(features, 640, 460)

	var north, south Feature
	for _, f := range features {
		switch f.Code {
		case "NT":
			north = f
		case "TAS":
			south = f
		}
	}
	_, yn := proj.Point(north.Geometry.Bound().Max)
	_, ys := proj.Point(south.Geometry.Bound().Min)
	if yn >= ys {
		t.Fatalf("north must project above south: %f >= %f", yn, ys)
	}
}
