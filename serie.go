package charts

import (
	"time"

	"github.com/midbel/svg"
)

// Data is what a Chart knows how to place on its drawing area.
type Data interface {
	Render() svg.Element
	OffsetX() float64
	OffsetY() float64
}

type Serie[T, U ScalerConstraint] struct {
	Color         string
	Title         string
	IgnoreMissing bool

	X      Scaler[T]
	Y      Scaler[U]
	Points []Point[T, U]
	Series []Serie[T, U]

	Renderer Renderer[T, U]
}

func (s Serie[T, U]) Render() svg.Element {
	return s.Renderer.Render(s)
}

func (s Serie[T, U]) OffsetX() float64 {
	return 0
}

func (s Serie[T, U]) OffsetY() float64 {
	return 0
}

func (s Serie[T, U]) Sum() float64 {
	return sumY(s.Points)
}

type Point[T, U ScalerConstraint] struct {
	X T
	Y U

	// Label overrides the default tooltip text of the shape drawn for this
	// point. Sub carries the breakdown of a grouped or stacked point.
	Label string
	Sub   []Point[T, U]
}

func NumberPoint(x, y float64) Point[float64, float64] {
	return Point[float64, float64]{
		X: x,
		Y: y,
	}
}

func TimePoint(x time.Time, y float64) Point[time.Time, float64] {
	return Point[time.Time, float64]{
		X: x,
		Y: y,
	}
}

func CategoryPoint(x string, y float64) Point[string, float64] {
	return Point[string, float64]{
		X: x,
		Y: y,
	}
}

func (p Point[T, U]) Reverse() Point[U, T] {
	return Point[U, T]{
		X: p.Y,
		Y: p.X,
	}
}

func (p Point[T, U]) Title() string {
	if p.Label != "" {
		return p.Label
	}
	if s, ok := any(p.X).(string); ok {
		return s
	}
	return ""
}

func sumY[T, U ScalerConstraint](points []Point[T, U]) float64 {
	var sum float64
	for _, pt := range points {
		if f, ok := isFloat(pt.Y); ok {
			sum += f
		}
	}
	return sum
}
