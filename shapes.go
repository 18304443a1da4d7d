package charts

import (
	"github.com/midbel/svg"
)

// MarkerSize is the edge or diameter of the point markers drawn on lines.
var MarkerSize float64 = 4

// PointFunc draws the marker for one data point of a line serie.
type PointFunc func(svg.Pos) svg.Element

func GetCircle(pos svg.Pos) svg.Element {
	var el svg.Circle
	el.Pos = pos
	el.Fill = svg.NewFill(currentColour)
	el.Radius = MarkerSize / 2
	return el.AsElement()
}

func GetSquare(pos svg.Pos) svg.Element {
	half := MarkerSize / 2
	pos.X -= half
	pos.Y -= half

	var el svg.Rect
	el.Pos = pos
	el.Dim = svg.NewDim(MarkerSize, MarkerSize)
	el.Fill = svg.NewFill(currentColour)

	return el.AsElement()
}
