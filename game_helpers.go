package main

import (
	"context"
	"io"
	"log"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/libgol/model"
	"github.com/sheikhrachel/libgol/render"
	"github.com/sheikhrachel/libgol/seed"
	"github.com/sheikhrachel/libgol/sim"
	"github.com/sheikhrachel/libgol/utils"
)

// newTerminal takes over the screen for the terminal renderer
var newTerminal = render.NewTerminal

// game bundles the driver with whichever interactive renderer owns the screen
type game struct {
	config   utils.Config
	grid     *model.Grid
	driver   *sim.Driver
	terminal *render.Terminal
	window   *render.Window
}

// initializeGame sets up the grid, renderer and driver for a validated config
func initializeGame(config utils.Config, stdout io.Writer, logger *log.Logger) (*game, error) {
	initial, err := seed.Select(config.Init, config.Width, config.Height, config.SeedValue())
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] initial pattern")
	}
	grid, err := model.NewGrid(config.Width, config.Height, initial)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] grid")
	}

	// log before the terminal renderer takes over the screen
	displayGameInfo(logger, config, grid)

	g := &game{config: config, grid: grid}
	var sink sim.Renderer
	switch config.Renderer {
	case utils.RendererASCII:
		sink = render.NewASCII(stdout)
	case utils.RendererTerminal:
		if g.terminal, err = newTerminal(); err != nil {
			return nil, errors.Wrap(err, "[initializeGame]")
		}
		sink = g.terminal
	case utils.RendererWindow:
		if g.window, err = render.NewWindow(config.Width, config.Height, config.Scale); err != nil {
			return nil, errors.Wrap(err, "[initializeGame]")
		}
		sink = g.window
	default:
		sink = sim.Discard
	}

	g.driver = sim.NewDriver(grid, sink, sim.Options{
		Interval:       config.Delay(),
		MaxGenerations: config.MaxGenerations,
		StopWhenStable: config.StopWhenStable,
		Workers:        config.Workers,
		Logger:         logger,
		// per-generation lines would scribble over a full-screen terminal
		Verbose: config.Verbose > 0 && g.terminal == nil,
	})
	return g, nil
}

// displayGameInfo logs the initial game information
func displayGameInfo(logger *log.Logger, config utils.Config, grid *model.Grid) {
	logger.Printf("grid: %dx%d | init: %s | renderer: %s | delay: %v",
		grid.Width(), grid.Height(), config.Init, config.Renderer, config.Delay())
	logger.Printf("initial living cells: %d", grid.Population())
	if config.Verbose > 1 {
		logger.Printf("initial live cells: %v", grid.LiveCells())
	}
}

// run drives the simulation until it finishes, the context is cancelled or
// the user quits from the terminal renderer.
func (g *game) run(ctx context.Context) (sim.Outcome, error) {
	if g.window != nil {
		return g.window.Run(ctx, g.driver, g.config.Delay())
	}

	eg, egCtx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(egCtx)
	defer cancel()

	var outcome sim.Outcome
	eg.Go(func() error {
		defer cancel()
		var err error
		outcome, err = g.driver.Run(runCtx)
		return err
	})
	if g.terminal != nil {
		eg.Go(func() error {
			return g.terminal.Listen(runCtx)
		})
	}

	if err := eg.Wait(); err != nil {
		if errors.Is(err, render.ErrQuit) {
			return sim.OutcomeInterrupted, nil
		}
		return sim.OutcomeUnknown, err
	}
	return outcome, nil
}

// close releases the terminal if one was taken over
func (g *game) close() {
	if g.terminal != nil {
		g.terminal.Close()
	}
}

// displayFinalStats logs how the run ended
func displayFinalStats(logger *log.Logger, outcome sim.Outcome, driver *sim.Driver) {
	stats := driver.Stats()
	logger.Printf("stopped: %s after %d generations in %.1fs",
		outcome, driver.Generation(), stats.Runtime().Seconds())
	logger.Printf("average: %.1f gen/sec, %.1f avg population",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}
