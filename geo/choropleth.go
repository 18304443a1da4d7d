package geo

import (
	"github.com/midbel/svg"
	"github.com/paulmach/orb"

	"github.com/ozroads/charts"
)

// Choropleth fills each jurisdiction's polygon from a sequential color scale
// over its aggregated value. It implements charts.Data so a Chart can place
// it like any serie.
type Choropleth struct {
	Features []Feature
	Width    float64
	Height   float64

	Color  charts.ColorScaler
	Values map[string]float64
	Titles map[string]string

	Stroke string
}

func (c Choropleth) OffsetX() float64 {
	return 0
}

func (c Choropleth) OffsetY() float64 {
	return 0
}

func (c Choropleth) Render() svg.Element {
	var grp svg.Group
	grp.Class = append(grp.Class, "choropleth")

	var (
		proj   = FitProjection(c.Features, c.Width, c.Height)
		stroke = c.Stroke
	)
	if stroke == "" {
		stroke = "#ffffff"
	}
	for _, f := range c.Features {
		val := c.Values[f.Code]
		for _, poly := range polygons(f.Geometry) {
			var pat svg.Path
			pat.Rendering = "geometricPrecision"
			pat.Fill = svg.NewFill(c.Color.At(val))
			pat.Fill.Opacity = c.Color.Opacity(val)
			pat.Stroke = svg.NewStroke(stroke, 1)
			pat.Title = c.title(f)

			for _, ring := range poly {
				for i, pt := range ring {
					x, y := proj.Point(pt)
					if i == 0 {
						pat.AbsMoveTo(svg.NewPos(x, y))
					} else {
						pat.AbsLineTo(svg.NewPos(x, y))
					}
				}
				pat.ClosePath()
			}
			grp.Append(pat.AsElement())
		}
	}
	return grp.AsElement()
}

func (c Choropleth) title(f Feature) string {
	if t, ok := c.Titles[f.Code]; ok {
		return t
	}
	return f.Name
}

func polygons(g orb.Geometry) []orb.Polygon {
	switch g := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	default:
		return nil
	}
}
