package charts

import (
	"bytes"
	"strings"
	"testing"
)

func TestBandedDetection(t *testing.T) {
	if !banded[string](StringScaler([]string{"NSW", "VIC"}, NewRange(0, 200))) {
		t.Fatal("band scale must report banded")
	}
	if banded[float64](CountScaler(100, NewRange(0, 200))) {
		t.Fatal("linear scale must not report banded")
	}
}

func TestAxisCentersBandTicks(t *testing.T) {
	ax := Axis[string]{
		Orientation:    OrientBottom,
		Scaler:         StringScaler([]string{"NSW", "VIC"}, NewRange(0, 200)),
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	var buf bytes.Buffer
	RenderElement(&buf, ax.Render(200, 100, 0, 0))
	out := buf.String()
	if !strings.Contains(out, "NSW") || !strings.Contains(out, "VIC") {
		t.Fatalf("band labels missing: %.120s", out)
	}
}
