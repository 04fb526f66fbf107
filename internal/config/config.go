// Package config holds the command line options shared by the multigrid
// programs.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/stewi1014/glmultigrid/programs"
)

var (
	ErrSize      = errors.New("size must be WxH with positive width and height")
	ErrLevels    = errors.New("levels must be at least 1")
	ErrThreshold = errors.New("threshold must not be negative")
	ErrProgram   = errors.New("unknown program")
)

// Size is a window or image size written as WxH.
type Size struct {
	Width, Height int
}

// ParseSize parses "WxH", like "1000x700".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return Size{}, fmt.Errorf("%q: %w", s, ErrSize)
	}

	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, fmt.Errorf("%q: %w", s, ErrSize)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, fmt.Errorf("%q: %w", s, ErrSize)
	}
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("%q: %w", s, ErrSize)
	}
	return Size{Width: width, Height: height}, nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Set implements flag.Value.
func (s *Size) Set(v string) error {
	size, err := ParseSize(v)
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// Pixels returns Width*Height.
func (s Size) Pixels() int {
	return s.Width * s.Height
}

// Options are the settings every multigrid program accepts.
type Options struct {
	Size      Size
	Levels    int
	Threshold float64
	Program   string
	Debug     bool
}

// Default returns the options used when no flags are given.
func Default() Options {
	return Options{
		Size:      Size{Width: 1000, Height: 700},
		Levels:    3,
		Threshold: 0.1,
		Program:   "mandelbrot",
	}
}

// Register adds the shared flags to fs, writing into o.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.Float64Var(&o.Threshold, "threshold", o.Threshold, "colour spread below which finer passes interpolate")
	fs.IntVar(&o.Levels, "levels", o.Levels, "number of multigrid levels, including the output")
	fs.StringVar(&o.Program, "program", o.Program, fmt.Sprintf("fractal to draw, one of %v", strings.Join(programs.Names(), ", ")))
	fs.BoolVar(&o.Debug, "debug", o.Debug, "log OpenGL debug messages")
	fs.Var(&o.Size, "size", "window size, also accepted as a WxH argument")
}

// Parse parses args with fs, which must have o registered, then takes an
// optional WxH positional argument and validates the result.
func (o *Options) Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, arg := range fs.Args() {
		if err := o.Size.Set(arg); err != nil {
			return fmt.Errorf("unrecognized argument: %w", err)
		}
	}
	return o.Validate()
}

// Validate reports the first invalid option.
func (o *Options) Validate() error {
	if o.Size.Width <= 0 || o.Size.Height <= 0 {
		return fmt.Errorf("%v: %w", o.Size, ErrSize)
	}
	if o.Levels < 1 {
		return fmt.Errorf("%d: %w", o.Levels, ErrLevels)
	}
	if o.Threshold < 0 {
		return fmt.Errorf("%v: %w", o.Threshold, ErrThreshold)
	}
	if _, ok := programs.Find(o.Program); !ok {
		return fmt.Errorf("%q: %w", o.Program, ErrProgram)
	}
	return nil
}

// Fractal returns the program named by o.Program.
func (o *Options) Fractal() programs.Program {
	p, _ := programs.Find(o.Program)
	return p
}
