package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/stewi1014/glmultigrid/internal/config"
	"github.com/stewi1014/glmultigrid/internal/dump"
	"github.com/stewi1014/glmultigrid/programs"
)

var (
	ErrModes   = errors.New("-bench and -target are mutually exclusive")
	ErrTarget  = errors.New("target fraction must be positive")
	ErrFrames  = errors.New("frames must be at least 1")
	ErrProfile = errors.New("unknown profile mode")
)

// Config is everything mgbench is told on the command line.
type Config struct {
	config.Options

	Soft     bool
	Bench    bool
	Target   float64 // seek this rendered fraction when positive
	Frames   int
	Interval time.Duration
	Dump     string // directory for screenshots, empty disables them
	Format   string // screenshot extension
	Out      string // benchmark log
	Profile  string
}

func DefaultConfig() Config {
	return Config{
		Options:  config.Default(),
		Frames:   100,
		Interval: 500 * time.Millisecond,
		Format:   ".png",
		Out:      "bench.txt",
	}
}

func (c *Config) Register(fs *flag.FlagSet) {
	c.Options.Register(fs)
	fs.BoolVar(&c.Soft, "soft", c.Soft, "render on the CPU instead of OpenGL")
	fs.BoolVar(&c.Bench, "bench", c.Bench, "zoom into the fractal, logging frame rates")
	fs.Float64Var(&c.Target, "target", c.Target, "adjust the threshold until this fraction of pixels is rendered")
	fs.IntVar(&c.Frames, "frames", c.Frames, "frames to render when neither -bench nor -target is given")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "time between frame rate reports")
	fs.StringVar(&c.Dump, "dump", c.Dump, "directory to write screenshots into")
	fs.StringVar(&c.Format, "format", c.Format, "screenshot format, .png, .bmp or .tif")
	fs.StringVar(&c.Out, "out", c.Out, "file -bench appends its results to")
	fs.StringVar(&c.Profile, "profile", c.Profile, "write a cpu, mem, block or trace profile")
}

// Parse parses and validates args.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	if err := c.Options.Parse(fs, args); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if err := c.Options.Validate(); err != nil {
		return err
	}
	if c.Bench && c.Target != 0 {
		return ErrModes
	}
	if c.Target < 0 {
		return fmt.Errorf("%v: %w", c.Target, ErrTarget)
	}
	if c.Frames < 1 {
		return fmt.Errorf("%d: %w", c.Frames, ErrFrames)
	}
	if _, err := dump.EncoderFor(c.Format); err != nil {
		return err
	}
	switch c.Profile {
	case "", "cpu", "mem", "block", "trace":
	default:
		return fmt.Errorf("%q: %w", c.Profile, ErrProfile)
	}
	if c.Soft && c.Fractal().GetPixel == nil {
		return fmt.Errorf("%v: %w", c.Program, programs.ErrNoCPUImplementation)
	}
	return nil
}
