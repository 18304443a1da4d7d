package charts

import (
	"bytes"
	"strings"
	"testing"
)

func testSerie() Serie[string, float64] {
	x := StringScaler([]string{"NSW", "VIC"}, NewRange(0, 640))
	y := CountScaler(120, NewRange(0, 460))
	return Serie[string, float64]{
		Title: "tests by jurisdiction",
		X:     x,
		Y:     y,
		Points: []Point[string, float64]{
			CategoryPoint("NSW", 120),
			CategoryPoint("VIC", 50),
		},
		Renderer: BarRenderer[string, float64]{
			Fill:  Tableau10,
			Width: 0.7,
		},
	}
}

func testChart() Chart[string, float64] {
	ch := Chart[string, float64]{
		Width:  800,
		Height: 600,
		Padding: Padding{
			Top:    40,
			Right:  80,
			Bottom: 60,
			Left:   80,
		},
	}
	ch.Bottom = Axis[string]{
		Orientation:    OrientBottom,
		Scaler:         StringScaler([]string{"NSW", "VIC"}, NewRange(0, ch.DrawingWidth())),
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	return ch
}

func TestChartRenderDeterministic(t *testing.T) {
	ch := testChart()
	var fst, snd bytes.Buffer
	ch.Render(&fst, testSerie())
	ch.Render(&snd, testSerie())
	if fst.Len() == 0 {
		t.Fatal("render produced no output")
	}
	if !bytes.Equal(fst.Bytes(), snd.Bytes()) {
		t.Fatal("two renders of the same state must be identical")
	}
}

func TestChartRenderFreshDocument(t *testing.T) {
	ch := testChart()
	var buf bytes.Buffer
	ch.Render(&buf, testSerie())
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("missing svg root: %.80s", out)
	}
	// a second render may not accumulate shapes
	first := strings.Count(out, "<rect")
	buf.Reset()
	ch.Render(&buf, testSerie())
	if got := strings.Count(buf.String(), "<rect"); got != first {
		t.Fatalf("shape count changed between renders: %d != %d", got, first)
	}
}

func TestPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	RenderElement(&buf, Placeholder(800, 600, "no data for selection"))
	if !strings.Contains(buf.String(), "no data for selection") {
		t.Fatal("placeholder message missing from output")
	}
}

func TestLegendTitleDrawn(t *testing.T) {
	ch := testChart()
	ch.Legend.Orient = OrientRight
	ch.Legend.Title = "Jurisdiction"
	ch.Legend.Entries = []LegendEntry{
		{Label: "NSW", Color: Tableau10[0]},
		{Label: "VIC", Color: Tableau10[1]},
	}
	var buf bytes.Buffer
	ch.Render(&buf, testSerie())
	out := buf.String()
	for _, want := range []string{"Jurisdiction", "NSW", "VIC"} {
		if !strings.Contains(out, want) {
			t.Fatalf("legend text %q missing", want)
		}
	}
}

func TestPieZeroTotal(t *testing.T) {
	s := testSerie()
	s.Points = []Point[string, float64]{
		CategoryPoint("NSW", 0),
		CategoryPoint("VIC", 0),
	}
	s.Renderer = PieRenderer[string, float64]{
		Fill:        Tableau10,
		OuterRadius: 200,
	}
	if el := s.Render(); el == nil {
		t.Fatal("zero total must still yield an element")
	}
}
