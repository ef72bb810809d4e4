package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/sim"
	"github.com/sheikhrachel/libgol/utils"
)

const version = "0.1"

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

const usageSummary = "Run Conway's Game of Life."

// cliOptions are flags that steer the program rather than the simulation
type cliOptions struct {
	configPath  string
	showVersion bool
}

func newFlagSet(config *utils.Config, opts *cliOptions, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("golife", flag.ContinueOnError)
	fs.SetOutput(output)
	config.Bind(fs)
	fs.StringVar(&opts.configPath, "config", opts.configPath, "JSON configuration file; flags override its values")
	fs.BoolVar(&opts.showVersion, "version", opts.showVersion, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(output, "%s\n\nUsage of %s:\n", usageSummary, fs.Name())
		fs.PrintDefaults()
	}
	return fs
}

// parseConfig builds the configuration from defaults, then the optional
// config file, then the command-line flags.
func parseConfig(args []string, output io.Writer) (utils.Config, cliOptions, error) {
	var opts cliOptions

	// first pass only finds -config
	scratch := utils.DefaultConfig()
	pre := newFlagSet(&scratch, &opts, io.Discard)
	_ = pre.Parse(args)

	config := utils.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if config, err = utils.LoadConfig(opts.configPath); err != nil {
			return config, opts, err
		}
	}

	fs := newFlagSet(&config, &opts, output)
	if err := fs.Parse(args); err != nil {
		return config, opts, err
	}
	if fs.NArg() > 0 {
		return config, opts, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	return config, opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "golife: ", log.LstdFlags)

	config, opts, err := parseConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		logger.Printf("configuration error: %v", err)
		return exitFailure
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "golife %s\n", version)
		return exitOK
	}
	if err = config.Validate(); err != nil {
		logger.Printf("configuration error: %v", err)
		return exitFailure
	}

	g, err := initializeGame(config, stdout, logger)
	if err != nil {
		logger.Printf("setup failed: %v", err)
		return exitFailure
	}

	outcome, err := g.run(ctx)
	g.close()
	if err != nil {
		logger.Printf("simulation failed: %v", err)
		return exitFailure
	}

	displayFinalStats(logger, outcome, g.driver)
	if outcome == sim.OutcomeInterrupted {
		return exitInterrupted
	}
	return exitOK
}

func main() {
	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
