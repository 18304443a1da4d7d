package dash

import (
	"fmt"
	"strconv"

	"github.com/midbel/svg"

	"github.com/ozroads/charts"
	"github.com/ozroads/charts/dataset"
	"github.com/ozroads/charts/geo"
)

// buildChart aggregates the filtered records and draws the configured kind.
// Each kind contributes only its serie construction; axes, legends and
// tooltips come from the shared chart machinery.
func buildChart(cfg Config, records []dataset.Record, features []geo.Feature) (svg.Element, error) {
	switch cfg.Kind {
	case KindBar:
		return buildBar(cfg, records), nil
	case KindLine:
		return buildLine(cfg, records), nil
	case KindPie:
		return buildPie(cfg, records), nil
	case KindStacked:
		return buildStacked(cfg, records), nil
	case KindHeatmap:
		return buildHeatmap(cfg, records), nil
	case KindChoropleth:
		return buildChoropleth(cfg, records, features), nil
	default:
		return nil, fmt.Errorf("unsupported chart kind %s", cfg.Kind)
	}
}

func buildBar(cfg Config, records []dataset.Record) svg.Element {
	entries := dataset.Aggregate(records, []string{cfg.GroupKey}, cfg.ValueField)
	switch {
	case cfg.Ranked:
		entries = dataset.Top(entries, cfg.TopN)
	case cfg.GroupKey == dataset.FieldYear:
		entries = dataset.SortByKey(entries)
	}
	var (
		total  = dataset.Total(entries)
		domain = make([]string, len(entries))
		points = make([]charts.Point[string, float64], len(entries))
		max    float64
	)
	for i, e := range entries {
		domain[i] = e.Key()
		points[i] = charts.CategoryPoint(e.Key(), e.Value)
		points[i].Label = shareLabel(e.Label(), e.Value, total)
		if e.Value > max {
			max = e.Value
		}
	}
	var (
		xscale = charts.StringScaler(domain, charts.NewRange(0, cfg.drawingWidth()))
		yscale = charts.CountScaler(max, charts.NewRange(0, cfg.drawingHeight()))
	)
	serie := charts.Serie[string, float64]{
		Title:  cfg.Name,
		X:      xscale,
		Y:      yscale,
		Points: points,
		Renderer: charts.BarRenderer[string, float64]{
			Fill:  cfg.Palette,
			Width: 0.7,
		},
	}
	ch := makeChart[string, float64](cfg)
	ch.Bottom = categoryAxis(xscale)
	ch.Left = countAxis(yscale)
	return ch.Drawn(serie)
}

func buildLine(cfg Config, records []dataset.Record) svg.Element {
	entries := dataset.SortByKey(dataset.Aggregate(records, []string{dataset.FieldYear}, cfg.ValueField))
	var (
		years  = make([]float64, len(entries))
		points = make([]charts.Point[float64, float64], len(entries))
		max    float64
	)
	for i, e := range entries {
		y, _ := strconv.Atoi(e.Key())
		years[i] = float64(y)
		points[i] = charts.NumberPoint(float64(y), e.Value)
		points[i].Label = fmt.Sprintf("%s: %.0f", e.Key(), e.Value)
		if e.Value > max {
			max = e.Value
		}
	}
	var (
		fst, lst = years[0], years[len(years)-1]
		xscale   = charts.NumberScaler(charts.NumberDomain(fst, lst), charts.NewRange(0, cfg.drawingWidth()))
		yscale   = charts.CountScaler(max, charts.NewRange(0, cfg.drawingHeight()))
	)
	if fst == lst {
		xscale = charts.NumberScaler(charts.NumberDomain(fst-1, lst+1), charts.NewRange(0, cfg.drawingWidth()))
	}
	serie := charts.Serie[float64, float64]{
		Title:  cfg.Name,
		X:      xscale,
		Y:      yscale,
		Points: points,
		Renderer: charts.LinearRenderer[float64, float64]{
			Color: cfg.Palette[0],
			Point: pointFunc(cfg.PointShape),
			Style: lineStyle(cfg.LineStyle),
		},
	}
	ch := makeChart[float64, float64](cfg)
	ch.Bottom = charts.Axis[float64]{
		Orientation:    charts.OrientBottom,
		Scaler:         xscale,
		Domain:         years,
		Format:         yearFormat,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	ch.Left = countAxis(yscale)
	return ch.Drawn(serie)
}

func buildPie(cfg Config, records []dataset.Record) svg.Element {
	entries := dataset.RankDesc(dataset.Aggregate(records, []string{cfg.GroupKey}, cfg.ValueField))
	var (
		total  = dataset.Total(entries)
		points = make([]charts.Point[string, float64], len(entries))
	)
	for i, e := range entries {
		points[i] = charts.CategoryPoint(e.Key(), e.Value)
		points[i].Label = shareLabel(e.Label(), e.Value, total)
	}
	radius := cfg.drawingWidth() / 2
	if h := cfg.drawingHeight() / 2; h < radius {
		radius = h
	}
	serie := charts.Serie[string, float64]{
		Title:  cfg.Name,
		X:      charts.StringScaler(nil, charts.NewRange(0, cfg.drawingWidth())),
		Y:      charts.NumberScaler(charts.NumberDomain(1, 0), charts.NewRange(0, cfg.drawingHeight())),
		Points: points,
		Renderer: charts.PieRenderer[string, float64]{
			Fill:        cfg.Palette,
			OuterRadius: radius,
		},
	}
	ch := makeChart[string, float64](cfg)
	for i, e := range entries {
		ch.Legend.Entries = append(ch.Legend.Entries, charts.LegendEntry{
			Label: e.Label(),
			Color: cfg.Palette[i%len(cfg.Palette)],
		})
	}
	return ch.Drawn(serie)
}

func buildStacked(cfg Config, records []dataset.Record) svg.Element {
	var (
		entries      = dataset.Aggregate(records, []string{cfg.GroupKey, cfg.SubKey}, cfg.ValueField)
		groups, subs = keyOrders(entries)
		cells        = make(map[[2]string]float64, len(entries))
		total        = dataset.Total(entries)
	)
	for _, e := range entries {
		cells[[2]string{e.Keys[0], e.Keys[1]}] = e.Value
	}
	var (
		parent charts.Serie[string, float64]
		max    float64
	)
	for _, g := range groups {
		sub := charts.Serie[string, float64]{Title: g}
		var sum float64
		for _, s := range subs {
			v := cells[[2]string{g, s}]
			pt := charts.CategoryPoint(s, v)
			pt.Label = shareLabel(g+" / "+s, v, total)
			sub.Points = append(sub.Points, pt)
			sum += v
		}
		if sum > max {
			max = sum
		}
		parent.Series = append(parent.Series, sub)
	}
	var (
		xscale = charts.StringScaler(groups, charts.NewRange(0, cfg.drawingWidth()))
		yscale = charts.CountScaler(max, charts.NewRange(0, cfg.drawingHeight()))
	)
	parent.Title = cfg.Name
	parent.X = xscale
	parent.Y = yscale
	parent.Renderer = charts.StackedRenderer[string, float64]{
		Fill:  cfg.Palette,
		Width: 0.7,
	}
	ch := makeChart[string, float64](cfg)
	ch.Bottom = categoryAxis(xscale)
	ch.Left = countAxis(yscale)
	for i, s := range subs {
		ch.Legend.Entries = append(ch.Legend.Entries, charts.LegendEntry{
			Label: s,
			Color: cfg.Palette[i%len(cfg.Palette)],
		})
	}
	return ch.Drawn(parent)
}

func buildHeatmap(cfg Config, records []dataset.Record) svg.Element {
	var (
		entries    = dataset.Aggregate(records, []string{cfg.SubKey, cfg.GroupKey}, cfg.ValueField)
		rows, cols = keyOrders(entries)
		max        float64
	)
	if cfg.GroupKey == dataset.FieldYear {
		cols = sortNumeric(cols)
	}
	for _, e := range entries {
		if e.Value > max {
			max = e.Value
		}
	}
	var (
		parent = charts.Serie[string, float64]{Title: cfg.Name}
		cells  = make(map[[2]string]float64, len(entries))
	)
	for _, e := range entries {
		cells[[2]string{e.Keys[0], e.Keys[1]}] = e.Value
	}
	for _, r := range rows {
		sub := charts.Serie[string, float64]{Title: r}
		for _, c := range cols {
			v := cells[[2]string{r, c}]
			pt := charts.CategoryPoint(c, v)
			pt.Label = fmt.Sprintf("%s / %s: %.0f", r, c, v)
			sub.Points = append(sub.Points, pt)
		}
		parent.Series = append(parent.Series, sub)
	}
	var (
		xscale = charts.StringScaler(cols, charts.NewRange(0, cfg.drawingWidth()))
		yscale = charts.NumberScaler(charts.NumberDomain(1, 0), charts.NewRange(0, cfg.drawingHeight()))
		rscale = charts.StringScaler(rows, charts.NewRange(0, cfg.drawingHeight()))
	)
	parent.X = xscale
	parent.Y = yscale
	parent.Renderer = charts.HeatmapRenderer[string, float64]{
		Rows:  rows,
		Color: charts.SequentialScaler(cfg.ColorLow, cfg.ColorHigh, max),
		Gap:   2,
	}
	ch := makeChart[string, float64](cfg)
	ch.Bottom = categoryAxis(xscale)
	ch.Left = charts.Axis[string]{
		Orientation:    charts.OrientLeft,
		Scaler:         rscale,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	return ch.Drawn(parent)
}

func buildChoropleth(cfg Config, records []dataset.Record, features []geo.Feature) svg.Element {
	var (
		entries = dataset.Aggregate(records, []string{dataset.FieldJuris}, cfg.ValueField)
		total   = dataset.Total(entries)
		values  = make(map[string]float64, len(entries))
		titles  = make(map[string]string, len(entries))
		max     float64
	)
	for _, e := range entries {
		values[e.Key()] = e.Value
		titles[e.Key()] = shareLabel(e.Key(), e.Value, total)
		if e.Value > max {
			max = e.Value
		}
	}
	choro := geo.Choropleth{
		Features: features,
		Width:    cfg.drawingWidth(),
		Height:   cfg.drawingHeight(),
		Color:    charts.SequentialScaler(cfg.ColorLow, cfg.ColorHigh, max),
		Values:   values,
		Titles:   titles,
	}
	ch := makeChart[string, float64](cfg)
	return ch.Drawn(choro)
}

func makeChart[T, U charts.ScalerConstraint](cfg Config) charts.Chart[T, U] {
	ch := charts.Chart[T, U]{
		Title:   cfg.Title,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Padding: cfg.Pad,
	}
	ch.Legend.Orient = cfg.LegendPos
	ch.Legend.Title = cfg.LegendTitle
	return ch
}

func categoryAxis(scale charts.Scaler[string]) charts.Axis[string] {
	return charts.Axis[string]{
		Orientation:    charts.OrientBottom,
		Scaler:         scale,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
}

func countAxis(scale charts.Scaler[float64]) charts.Axis[float64] {
	return charts.Axis[float64]{
		Ticks:          10,
		Orientation:    charts.OrientLeft,
		Scaler:         scale,
		WithInnerTicks: true,
		WithLabelTicks: true,
		WithOuterTicks: true,
		Format: func(f float64) string {
			return strconv.FormatFloat(f, 'f', 0, 64)
		},
	}
}

func pointFunc(shape string) charts.PointFunc {
	if shape == "square" {
		return charts.GetSquare
	}
	return charts.GetCircle
}

func lineStyle(style string) charts.LineStyle {
	switch style {
	case "dotted":
		return charts.StyleDotted
	case "dashed":
		return charts.StyleDashed
	default:
		return charts.StyleStraight
	}
}

func yearFormat(f float64) string {
	return strconv.Itoa(int(f))
}

func shareLabel(label string, value, total float64) string {
	return fmt.Sprintf("%s: %.0f (%.1f%%)", label, value, dataset.Share(value, total))
}

// keyOrders returns the distinct first and second key values in first-seen
// order.
func keyOrders(entries []dataset.Entry) ([]string, []string) {
	var (
		fst, snd []string
		seen1    = make(map[string]struct{})
		seen2    = make(map[string]struct{})
	)
	for _, e := range entries {
		if len(e.Keys) < 2 {
			continue
		}
		if _, ok := seen1[e.Keys[0]]; !ok {
			seen1[e.Keys[0]] = struct{}{}
			fst = append(fst, e.Keys[0])
		}
		if _, ok := seen2[e.Keys[1]]; !ok {
			seen2[e.Keys[1]] = struct{}{}
			snd = append(snd, e.Keys[1])
		}
	}
	return fst, snd
}

func sortNumeric(keys []string) []string {
	entries := make([]dataset.Entry, len(keys))
	for i, k := range keys {
		entries[i] = dataset.Entry{Keys: []string{k}}
	}
	sorted := dataset.SortByKey(entries)
	out := make([]string, len(sorted))
	for i, e := range sorted {
		out[i] = e.Key()
	}
	return out
}
