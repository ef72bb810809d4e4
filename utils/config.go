package utils

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/seed"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Renderer names accepted by Config.Renderer
const (
	RendererASCII    = "ascii"
	RendererTerminal = "terminal"
	RendererWindow   = "window"
	RendererNone     = "none"
)

var renderers = []string{RendererASCII, RendererTerminal, RendererWindow, RendererNone}

// Config holds the configuration for the game
type Config struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Init           string `json:"init"`
	DelayMS        int    `json:"delay_ms"`
	Seed           uint64 `json:"seed"` // 0 seeds from the clock
	Renderer       string `json:"renderer"`
	Scale          int    `json:"scale"`
	MaxGenerations int    `json:"max_generations"`
	StopWhenStable bool   `json:"stop_when_stable"`
	Workers        int    `json:"workers"`
	Verbose        int    `json:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:    10,
		Height:   10,
		Init:     seed.RandomSelector,
		DelayMS:  200,
		Renderer: RendererASCII,
		Scale:    16,
		Workers:  1,
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// countFlag is a flag.Value that counts repetitions, like -v -v
type countFlag struct{ n *int }

func (c countFlag) String() string {
	if c.n == nil {
		return "0"
	}
	return strings.Repeat("v", *c.n)
}

func (c countFlag) Set(string) error { *c.n++; return nil }

func (c countFlag) IsBoolFlag() bool { return true }

// Bind attaches the configuration to the provided FlagSet. Short and long
// spellings share the same field.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "x", c.Width, "size of grid along x")
	fs.IntVar(&c.Width, "grid-x", c.Width, "size of grid along x")
	fs.IntVar(&c.Height, "y", c.Height, "size of grid along y")
	fs.IntVar(&c.Height, "grid-y", c.Height, "size of grid along y")

	initUsage := "name of initial pattern: " + strings.Join(append([]string{seed.RandomSelector}, seed.Names()...), ", ")
	fs.StringVar(&c.Init, "i", c.Init, initUsage)
	fs.StringVar(&c.Init, "init", c.Init, initUsage)

	fs.IntVar(&c.DelayMS, "s", c.DelayMS, "animation speed; delay between frames in milliseconds")
	fs.IntVar(&c.DelayMS, "speed", c.DelayMS, "animation speed; delay between frames in milliseconds")

	fs.Var(countFlag{&c.Verbose}, "v", "print verbose messages; repeat for more")
	fs.Var(countFlag{&c.Verbose}, "verbose", "print verbose messages; repeat for more")

	fs.Uint64Var(&c.Seed, "seed", c.Seed, "seed for the random initial pattern (0 uses the clock)")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "output: "+strings.Join(renderers, ", "))
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier for the window renderer")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations (0 runs until interrupted)")
	fs.BoolVar(&c.StopWhenStable, "stable", c.StopWhenStable, "stop once the grid dies out or repeats")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation (0 uses every CPU)")
}

// Validate rejects settings the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.DelayMS < 0:
		return errors.Wrapf(ErrInvalidConfig, "delay must not be negative, got %dms", c.DelayMS)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "generation limit must not be negative, got %d", c.MaxGenerations)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.Workers)
	case c.Scale <= 0:
		return errors.Wrapf(ErrInvalidConfig, "scale must be positive, got %d", c.Scale)
	case !seed.Known(c.Init):
		return errors.Wrapf(ErrInvalidConfig, "unknown initial pattern %q", c.Init)
	}
	for _, r := range renderers {
		if c.Renderer == r {
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidConfig, "unknown renderer %q", c.Renderer)
}

// Delay returns the pause between generations
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// SeedValue returns the configured seed, falling back to the clock when unset
func (c Config) SeedValue() uint64 {
	if c.Seed == 0 {
		return seed.TimeSeed()
	}
	return c.Seed
}
