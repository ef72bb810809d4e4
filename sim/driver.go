package sim

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/model"
	"github.com/sheikhrachel/libgol/utils"
)

// Renderer consumes one read-only snapshot per generation
type Renderer interface {
	Render(s *model.Snapshot) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(s *model.Snapshot) error

// Render calls f(s).
func (f RendererFunc) Render(s *model.Snapshot) error { return f(s) }

// Discard is a Renderer that drops every snapshot
var Discard Renderer = RendererFunc(func(*model.Snapshot) error { return nil })

// Outcome says why Run stopped
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	// OutcomeInterrupted means the context was cancelled between generations.
	OutcomeInterrupted
	// OutcomeGenerationLimit means Options.MaxGenerations was reached.
	OutcomeGenerationLimit
	// OutcomeStable means the grid died out or started repeating.
	OutcomeStable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeGenerationLimit:
		return "generation limit"
	case OutcomeStable:
		return "stable"
	default:
		return "unknown"
	}
}

// Options tune a Driver
type Options struct {
	Interval       time.Duration // pause between generations; 0 runs flat out
	MaxGenerations int           // 0 means no limit
	StopWhenStable bool
	Workers        int // > 1 steps with Grid.StepParallel
	Logger         *log.Logger
	Verbose        bool
}

// Driver steps one grid and forwards each generation to a renderer. It is
// not safe for concurrent use; whoever schedules ticks owns it.
type Driver struct {
	grid    *model.Grid
	sink    Renderer
	opts    Options
	logger  *log.Logger
	stats   *utils.Stats
	history model.History

	generation int
	lastTick   time.Time
	stable     bool
}

// NewDriver creates a driver for grid. A nil sink discards output.
func NewDriver(grid *model.Grid, sink Renderer, opts Options) *Driver {
	if sink == nil {
		sink = Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	d := &Driver{
		grid:     grid,
		sink:     sink,
		opts:     opts,
		logger:   logger,
		stats:    utils.NewStats(),
		lastTick: time.Now(),
	}
	d.observe()
	return d
}

// Generation returns how many times the grid has been stepped
func (d *Driver) Generation() int { return d.generation }

// Stats returns a copy of the running statistics
func (d *Driver) Stats() utils.Stats { return *d.stats }

// observe updates stability tracking for the current generation
func (d *Driver) observe() {
	hash := d.grid.Hash()
	d.stable = d.grid.Population() == 0 || d.history.Repeats(hash)
	d.history.Record(hash)
}

// Render hands the current generation to the renderer
func (d *Driver) Render() error {
	if err := d.sink.Render(d.grid.Snapshot()); err != nil {
		return errors.Wrapf(err, "[Render] generation %d", d.generation)
	}
	return nil
}

// Tick advances the grid one generation and renders the result.
func (d *Driver) Tick() error {
	if d.opts.Workers > 1 {
		d.grid.StepParallel(d.opts.Workers)
	} else {
		d.grid.Step()
	}
	d.generation++

	now := time.Now()
	population := d.grid.Population()
	d.stats.Update(d.generation, population, now.Sub(d.lastTick))
	d.lastTick = now
	d.observe()

	if d.opts.Verbose {
		d.logger.Printf("gen: %d | living: %d | %.1f gen/sec | avg pop: %.1f",
			d.generation, population, d.stats.GenerationsPerSecond, d.stats.AveragePopulation)
	}

	return d.Render()
}

// Finished reports whether the driver has reached a configured stopping point
func (d *Driver) Finished() (Outcome, bool) {
	if d.opts.MaxGenerations > 0 && d.generation >= d.opts.MaxGenerations {
		return OutcomeGenerationLimit, true
	}
	if d.opts.StopWhenStable && d.stable {
		return OutcomeStable, true
	}
	return OutcomeUnknown, false
}

// Run renders the current generation and then ticks every Interval until
// ctx is cancelled or a stopping point is reached. Cancellation is only
// observed between generations, so the grid is always left whole.
// Cancellation is not an error; it is reported as OutcomeInterrupted.
func (d *Driver) Run(ctx context.Context) (Outcome, error) {
	if err := d.Render(); err != nil {
		return OutcomeUnknown, err
	}
	if outcome, done := d.Finished(); done {
		return outcome, nil
	}

	var tick <-chan time.Time
	if d.opts.Interval > 0 {
		ticker := time.NewTicker(d.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if ctx.Err() != nil {
			return OutcomeInterrupted, nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return OutcomeInterrupted, nil
			case <-tick:
			}
		}

		if err := d.Tick(); err != nil {
			return OutcomeUnknown, err
		}
		if outcome, done := d.Finished(); done {
			return outcome, nil
		}
	}
}
