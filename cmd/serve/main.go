package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ozroads/charts/dash"
	"github.com/ozroads/charts/dataset"
)

func main() {
	var (
		addr  = flag.String("a", ":8080", "listening address")
		pages = flag.String("d", "public", "static page directory")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "serve").Logger()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: serve [options] <charts config file>")
		os.Exit(2)
	}
	configs, err := readConfigs(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("read chart configs")
	}

	var (
		loader = dataset.NewLoader(dataset.NewCache(), log)
		board  = make(map[string]*dash.Pipeline, len(configs))
	)
	for _, cfg := range configs {
		pipe, err := dash.New(cfg, loader, log)
		if err != nil {
			log.Fatal().Err(err).Str("chart", cfg.Name).Msg("bad chart config")
		}
		board[cfg.Name] = pipe
	}

	// Load every chart up front. A failed chart stays registered and serves
	// its error box; the rest of the page is unaffected.
	grp, ctx := errgroup.WithContext(context.Background())
	for name, pipe := range board {
		name, pipe := name, pipe
		grp.Go(func() error {
			if err := pipe.Init(ctx); err != nil {
				log.Error().Err(err).Str("chart", name).Msg("chart disabled")
			}
			return nil
		})
	}
	grp.Wait()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Get("/charts/{name}.svg", chartHandler(board, log))
	r.Handle("/*", http.FileServer(http.Dir(*pages)))

	log.Info().Str("addr", *addr).Int("charts", len(board)).Msg("listening")
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func chartHandler(board map[string]*dash.Pipeline, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pipe, ok := board[chi.URLParam(r, "name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		query := r.URL.Query()
		pipe.Filter().FromQuery(query.Get)
		if wd, ht := dim(query.Get("width")), dim(query.Get("height")); wd > 0 && ht > 0 {
			pipe.Resize(wd, ht)
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		if _, err := pipe.WriteTo(w); err != nil {
			log.Error().Err(err).Str("chart", chi.URLParam(r, "name")).Msg("write chart")
		}
	}
}

func dim(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func readConfigs(file string) ([]dash.Config, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var configs []dash.Config
	if err := json.NewDecoder(r).Decode(&configs); err != nil {
		return nil, err
	}
	return configs, nil
}
