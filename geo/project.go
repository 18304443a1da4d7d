package geo

import (
	"github.com/paulmach/orb"
)

// Projection maps lon/lat onto a drawing area with an equirectangular fit:
// the feature set's bound is scaled uniformly and centered, latitude flipped
// so north is up.
type Projection struct {
	bound  orb.Bound
	scale  float64
	offX   float64
	offY   float64
	height float64
}

func FitProjection(features []Feature, width, height float64) Projection {
	var bound orb.Bound
	for i, f := range features {
		if i == 0 {
			bound = f.Geometry.Bound()
			continue
		}
		bound = bound.Union(f.Geometry.Bound())
	}
	var (
		spanX = bound.Max[0] - bound.Min[0]
		spanY = bound.Max[1] - bound.Min[1]
		p     = Projection{bound: bound, height: height}
	)
	if spanX <= 0 || spanY <= 0 {
		p.scale = 1
		return p
	}
	sx := width / spanX
	sy := height / spanY
	p.scale = sx
	if sy < sx {
		p.scale = sy
	}
	p.offX = (width - spanX*p.scale) / 2
	p.offY = (height - spanY*p.scale) / 2
	return p
}

func (p Projection) Point(pt orb.Point) (float64, float64) {
	x := (pt[0]-p.bound.Min[0])*p.scale + p.offX
	y := p.height - ((pt[1]-p.bound.Min[1])*p.scale + p.offY)
	return x, y
}
