// Command mgbench measures the multigrid renderer off-screen.
//
// Without a mode flag it renders -frames frames and reports the frame rate.
// -bench zooms into the fractal and logs frame rates to -out. -target
// searches for the threshold at which the given fraction of pixels is
// evaluated and prints it with the resulting image error.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/stewi1014/glmultigrid/multigrid"
)

func init() {
	// glfw and GL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg.Register(fs)
	if err := cfg.Parse(fs, os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	if cfg.Debug {
		multigrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg Config) error {
	if cfg.Profile != "" {
		defer profile.Start(profileMode(cfg.Profile), profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	if cfg.Dump != "" {
		if err := os.MkdirAll(cfg.Dump, 0o755); err != nil {
			return err
		}
	}

	var (
		b   backend
		err error
	)
	if cfg.Soft {
		b, err = newSoftBackend(cfg)
	} else {
		b, err = newGLBackend(cfg)
	}
	if err != nil {
		return err
	}
	defer b.Close()

	r := newRunner(cfg, b, os.Stdout)
	switch {
	case cfg.Bench:
		out, err := openResults(cfg.Out)
		if err != nil {
			return err
		}
		defer out.Close()
		return r.bench(out)
	case cfg.Target > 0:
		return r.seek()
	default:
		return r.run()
	}
}

func profileMode(name string) func(*profile.Profile) {
	switch name {
	case "mem":
		return profile.MemProfile
	case "block":
		return profile.BlockProfile
	case "trace":
		return profile.TraceProfile
	}
	return profile.CPUProfile
}
