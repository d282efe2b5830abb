// Package main is the entry point for the r3d demo loop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyclopcam/logs"

	"github.com/SkuldNorniern/r3d/internal/config"
	"github.com/SkuldNorniern/r3d/internal/engine"
	"github.com/SkuldNorniern/r3d/internal/gfx"
	"github.com/SkuldNorniern/r3d/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.frames > 0 {
		cfg.Engine.MaxFrames = opts.frames
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}

	// No device in the demo loop: the in-memory bridge stands in for
	// the GPU.
	bridge := gfx.NewMemoryBridge()

	eng := engine.New(cfg.Engine, bridge, logger)

	host := script.NewHost(eng, logger)
	defer host.Close()
	for _, path := range append(cfg.Script.Paths, opts.scripts...) {
		if err := host.LoadFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := eng.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start engine: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger.Infof("stopped after %d frames", eng.FrameCount())
	return 0
}

type options struct {
	configPath string
	frames     int
	scripts    []string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "r3d.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "r3d.toml", "Path to configuration file (shorthand)")
	flag.IntVar(&opts.frames, "frames", 0, "Stop after this many frames (0 = run until interrupted)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "r3d - demo event loop\n\n")
		fmt.Fprintf(os.Stderr, "Usage: r3d [options] [scripts...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  r3d                        Run with r3d.toml (or defaults)\n")
		fmt.Fprintf(os.Stderr, "  r3d -frames 600 spin.lua   Run a script for 600 frames\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("r3d %s (%s)\n", version, commit)
		os.Exit(0)
	}

	// Remaining arguments are scripts to load after the configured ones.
	opts.scripts = flag.Args()

	return opts
}
