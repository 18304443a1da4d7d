package charts

import (
	"fmt"
	"strconv"
)

type Palette = []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// ColorScaler maps a count in [0, Max] onto a sequential ramp between two hex
// colors. Opacity is a separate linear map floored well above zero so that
// small non-zero values stay visibly distinct from no-data regions.
type ColorScaler struct {
	Low  string
	High string
	Max  float64

	MinOpacity float64
}

func SequentialScaler(low, high string, max float64) ColorScaler {
	return ColorScaler{
		Low:        low,
		High:       high,
		Max:        max,
		MinOpacity: 0.35,
	}
}

func (c ColorScaler) At(v float64) string {
	t := c.fraction(v)
	lr, lg, lb := splitHex(c.Low)
	hr, hg, hb := splitHex(c.High)
	var (
		r = lr + int(t*float64(hr-lr))
		g = lg + int(t*float64(hg-lg))
		b = lb + int(t*float64(hb-lb))
	)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func (c ColorScaler) Opacity(v float64) float64 {
	if v <= 0 {
		return c.MinOpacity
	}
	return c.MinOpacity + (1-c.MinOpacity)*c.fraction(v)
}

func (c ColorScaler) fraction(v float64) float64 {
	if c.Max <= 0 || v <= 0 {
		return 0
	}
	if v >= c.Max {
		return 1
	}
	return v / c.Max
}

func splitHex(str string) (int, int, int) {
	if len(str) > 0 && str[0] == '#' {
		str = str[1:]
	}
	if len(str) != 6 {
		return 0, 0, 0
	}
	r, _ := strconv.ParseInt(str[0:2], 16, 32)
	g, _ := strconv.ParseInt(str[2:4], 16, 32)
	b, _ := strconv.ParseInt(str[4:6], 16, 32)
	return int(r), int(g), int(b)
}
