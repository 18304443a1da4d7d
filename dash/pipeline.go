package dash

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ozroads/charts"
	"github.com/ozroads/charts/dataset"
	"github.com/ozroads/charts/geo"
)

type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	Rendering
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Rendering:
		return "rendering"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned when output is requested before Init succeeded.
var ErrNotReady = errors.New("pipeline not initialized")

// Pipeline owns one chart instance end to end: source records, geography,
// filter state, and the current SVG snapshot. Instances share nothing but
// the loader cache they were handed.
type Pipeline struct {
	cfg    Config
	loader *dataset.Loader
	log    zerolog.Logger

	filter *Filter
	resize *Debouncer
	flight singleflight.Group

	mu       sync.Mutex
	state    State
	failure  error
	records  []dataset.Record
	features []geo.Feature
	degraded bool
	snapshot []byte
	renders  int
	seq      int
	rendered int
}

func New(cfg Config, loader *dataset.Loader, log zerolog.Logger) (*Pipeline, error) {
	cfg = Default(cfg)
	if err := cfg.Check(validator.New()); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfg.Name, err)
	}
	p := Pipeline{
		cfg:    cfg,
		loader: loader,
		log:    log.With().Str("chart", cfg.Name).Logger(),
		filter: NewFilter(cfg.Exclude),
		resize: NewDebouncer(ResizeDelay),
		state:  Uninitialized,
	}
	p.filter.onChange = p.invalidate
	return &p, nil
}

// Init fetches the data file, and the geography file for choropleths, then
// renders the first snapshot. A load failure is terminal for this chart; a
// geography failure only degrades it to the fallback polygons.
func (p *Pipeline) Init(ctx context.Context) error {
	p.mu.Lock()
	p.state = Loading
	p.mu.Unlock()

	var (
		grp, _   = errgroup.WithContext(ctx)
		records  []dataset.Record
		features []geo.Feature
		degraded bool
	)
	grp.Go(func() error {
		var err error
		records, err = p.loader.Load(p.cfg.Source, p.cfg.Schema)
		return err
	})
	if p.cfg.Kind == KindChoropleth {
		grp.Go(func() error {
			var err error
			features, err = geo.Load(p.cfg.GeoSource)
			if err != nil {
				p.log.Warn().Err(err).Msg("geography fetch failed, using fallback polygons")
				features = geo.Fallback()
				degraded = true
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		p.mu.Lock()
		p.state = Failed
		p.failure = err
		p.mu.Unlock()
		p.log.Error().Err(err).Msg("load failed")
		return err
	}

	p.mu.Lock()
	p.records = records
	p.features = features
	p.degraded = degraded
	p.state = Ready
	p.mu.Unlock()
	p.log.Info().Int("records", len(records)).Bool("degraded", degraded).Msg("pipeline ready")

	p.invalidate()
	return nil
}

// Filter exposes the chart's facet state. Mutating it re-renders the
// snapshot synchronously, once per mutation.
func (p *Pipeline) Filter() *Filter {
	return p.filter
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Resize records new dimensions and re-renders after the debounce delay.
// Bursts coalesce; the last dimensions win.
func (p *Pipeline) Resize(width, height float64) {
	p.mu.Lock()
	p.cfg.Width = width
	p.cfg.Height = height
	p.seq++
	p.mu.Unlock()
	p.resize.Trigger(p.refresh)
}

// WriteTo writes the current snapshot. A failed pipeline writes its error
// box so the page never shows an empty container.
func (p *Pipeline) WriteTo(w io.Writer) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case Failed:
		var buf bytes.Buffer
		charts.RenderElement(&buf, charts.ErrorBox(p.cfg.Width, p.cfg.Height, "failed to load chart data"))
		n, err := w.Write(buf.Bytes())
		return int64(n), err
	case Uninitialized, Loading:
		return 0, ErrNotReady
	}
	n, err := w.Write(p.snapshot)
	return int64(n), err
}

// Renders reports how many render cycles have run.
func (p *Pipeline) Renders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renders
}

// invalidate marks the current snapshot stale and refreshes.
func (p *Pipeline) invalidate() {
	p.mu.Lock()
	p.seq++
	p.mu.Unlock()
	p.refresh()
}

// refresh redraws until the snapshot reflects the newest state. Concurrent
// refreshes collapse into one flight, but a mutation landing while a render
// is in flight bumps seq past the generation that render captured, so the
// loop runs one more flight; the last mutation always gets drawn.
func (p *Pipeline) refresh() {
	for {
		p.mu.Lock()
		stale := (p.state == Ready || p.state == Rendering) && p.rendered != p.seq
		p.mu.Unlock()
		if !stale {
			return
		}
		p.flight.Do("render", func() (any, error) {
			p.render()
			return nil, nil
		})
	}
}

func (p *Pipeline) render() {
	p.mu.Lock()
	if p.state != Ready && p.state != Rendering {
		p.mu.Unlock()
		return
	}
	p.state = Rendering
	var (
		seq      = p.seq
		cfg      = p.cfg
		records  = p.filter.Apply(p.records)
		features = p.features
	)
	p.mu.Unlock()

	var buf bytes.Buffer
	if len(records) == 0 {
		charts.RenderElement(&buf, charts.Placeholder(cfg.Width, cfg.Height, "no data for selection"))
	} else {
		el, err := buildChart(cfg, records, features)
		if err != nil {
			p.log.Error().Err(err).Msg("render failed")
			charts.RenderElement(&buf, charts.ErrorBox(cfg.Width, cfg.Height, "failed to draw chart"))
		} else {
			charts.RenderElement(&buf, el)
		}
	}

	p.mu.Lock()
	p.snapshot = buf.Bytes()
	p.renders++
	p.rendered = seq
	p.state = Ready
	p.mu.Unlock()
}
