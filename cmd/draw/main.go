package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ozroads/charts/dash"
	"github.com/ozroads/charts/dataset"
)

func main() {
	var (
		title   = flag.String("title", "", "chart title")
		kind    = flag.String("type", "bar", "chart type (bar, line, pie, stacked, heatmap, choropleth)")
		geoland = flag.String("geo", "", "boundary file for choropleth charts")
		group   = flag.String("group", dataset.FieldJuris, "primary group column")
		sub     = flag.String("sub", "", "secondary group column (stacked, heatmap)")
		value   = flag.String("value", dataset.FieldCount, "count column to sum")
		width   = flag.Float64("width", 0, "chart width")
		height  = flag.Float64("height", 0, "chart height")
		ranked  = flag.Bool("ranked", false, "sort groups by value descending")
		top     = flag.Int("top", 0, "keep only the n best ranked groups")
		year    = flag.String("year", "all", "selected year")
		metric  = flag.String("metric", "", "selected metric")
		juris   = flag.String("jurisdictions", "all", "comma separated jurisdiction codes")
		exclude = flag.String("exclude", "", "comma separated categories to drop")
		result  = flag.String("file", "", "output file (default stdout)")
		verbose = flag.Bool("verbose", false, "log progress")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: draw [options] <data file or url>")
		os.Exit(2)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	cfg := dash.Config{
		Name:       "draw",
		Title:      *title,
		Kind:       dash.Kind(*kind),
		Source:     flag.Arg(0),
		GeoSource:  *geoland,
		Width:      *width,
		Height:     *height,
		GroupKey:   *group,
		SubKey:     *sub,
		ValueField: *value,
		Ranked:     *ranked,
		TopN:       *top,
	}
	if *exclude != "" {
		cfg.Exclude = strings.Split(*exclude, ",")
	}

	if err := run(cfg, log, *year, *metric, *juris, *result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg dash.Config, log zerolog.Logger, year, metric, juris, result string) error {
	loader := dataset.NewLoader(dataset.NewCache(), log)
	pipe, err := dash.New(cfg, loader, log)
	if err != nil {
		return err
	}
	if err := pipe.Init(context.Background()); err != nil {
		return err
	}

	params := map[string]string{
		"year":          year,
		"metric":        metric,
		"jurisdictions": juris,
	}
	pipe.Filter().FromQuery(func(key string) string {
		return params[key]
	})

	var w *os.File = os.Stdout
	if result != "" {
		w, err = os.Create(result)
		if err != nil {
			return err
		}
		defer w.Close()
	}
	_, err = pipe.WriteTo(w)
	return err
}
