// Package dash runs one chart's pipeline: load the extract, apply the filter
// state, aggregate, and draw the SVG.
package dash

import (
	"github.com/go-playground/validator/v10"

	"github.com/ozroads/charts"
	"github.com/ozroads/charts/dataset"
)

type Kind string

const (
	KindBar        Kind = "bar"
	KindLine       Kind = "line"
	KindPie        Kind = "pie"
	KindStacked    Kind = "stacked"
	KindHeatmap    Kind = "heatmap"
	KindChoropleth Kind = "choropleth"
)

var (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	DefaultPad = charts.Padding{
		Top:    40,
		Right:  60,
		Bottom: 60,
		Left:   80,
	}
)

// Config describes one chart with named fields instead of an option bag.
// Zero values fall back to the documented defaults in Default.
type Config struct {
	// Name identifies the chart to the server and in logs.
	Name  string `validate:"required"`
	Title string
	Kind  Kind `validate:"required,oneof=bar line pie stacked heatmap choropleth"`

	// Source is the data file, local path or http(s) URL, .csv or .xlsx.
	Source string `validate:"required"`
	Schema dataset.Schema

	// GeoSource is the boundary file URL; choropleth only.
	GeoSource string `validate:"required_if=Kind choropleth"`

	Width  float64 `validate:"gte=0"`
	Height float64 `validate:"gte=0"`
	Pad    charts.Padding

	// GroupKey is the primary category (bar categories, pie slices, stacked
	// bars, heatmap columns). SubKey is the secondary one (stacked segments,
	// heatmap rows). ValueField is the summed count column.
	GroupKey   string `validate:"required"`
	SubKey     string `validate:"required_if=Kind stacked,required_if=Kind heatmap"`
	ValueField string `validate:"required"`

	// Ranked sorts bar categories by value descending; trend charts always
	// sort ascending by key instead. TopN keeps the n best ranked groups.
	Ranked bool
	TopN   int `validate:"gte=0"`

	Palette     []string
	LegendPos   charts.Orientation
	LegendTitle string

	// Sequential ramp endpoints for heatmap and choropleth fills.
	ColorLow  string
	ColorHigh string

	// PointShape picks the marker drawn on line charts: circle or square.
	PointShape string `validate:"omitempty,oneof=circle square"`
	// LineStyle sets the stroke pattern on line charts.
	LineStyle string `validate:"omitempty,oneof=straight dotted dashed"`

	// Exclude drops sentinel buckets ("All ages", "Unknown") before
	// aggregation for charts that break down by the affected field.
	Exclude []string
}

// Default fills the blanks of a config with the usual chart setup.
func Default(cfg Config) Config {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Pad == (charts.Padding{}) {
		cfg.Pad = DefaultPad
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = charts.Tableau10
	}
	if len(cfg.Schema.Required) == 0 {
		cfg.Schema = dataset.DefaultSchema()
	}
	if cfg.ValueField == "" {
		cfg.ValueField = dataset.FieldCount
	}
	if cfg.ColorLow == "" {
		cfg.ColorLow = "#eff3ff"
	}
	if cfg.ColorHigh == "" {
		cfg.ColorHigh = "#08519c"
	}
	if cfg.LegendPos == 0 && legendKind(cfg.Kind) {
		cfg.LegendPos = charts.OrientRight | charts.OrientTop
	}
	return cfg
}

func legendKind(k Kind) bool {
	return k == KindPie || k == KindStacked
}

func (c Config) Check(check *validator.Validate) error {
	return check.Struct(c)
}

func (c Config) drawingWidth() float64 {
	return c.Width - c.Pad.Horizontal()
}

func (c Config) drawingHeight() float64 {
	return c.Height - c.Pad.Vertical()
}
