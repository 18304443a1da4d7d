package charts

import (
	"github.com/midbel/svg"
)

type LineStyle int

const (
	StyleStraight LineStyle = iota
	StyleDotted
	StyleDashed
)

func (i LineStyle) apply(pat *svg.Path) {
	switch i {
	case StyleDotted:
		pat.Stroke.DashArray = []int{2}
	case StyleDashed:
		pat.Stroke.DashArray = []int{8}
	default:
	}
}
