package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stewi1014/glmultigrid/internal/config"
)

func softConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Soft = true
	cfg.Size = config.Size{Width: 32, Height: 24}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newSoftRunner(t *testing.T, cfg Config) (*runner, *bytes.Buffer) {
	t.Helper()
	b, err := newSoftBackend(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(b.Close)

	var out bytes.Buffer
	r := newRunner(cfg, b, &out)
	r.uniforms.Iterations = 64
	return r, &out
}

func TestRunReportsAndDumps(t *testing.T) {
	cfg := softConfig(t)
	cfg.Frames = 3
	cfg.Interval = 1 << 62
	cfg.Dump = t.TempDir()

	r, out := newSoftRunner(t, cfg)
	if err := r.run(); err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(out.String(), "Interpolator:"); n != 1 {
		t.Errorf("got %d reports, want 1:\n%s", n, out)
	}
	for _, name := range []string{"image00000.png", "image00000_alpha.png"} {
		if _, err := os.Stat(filepath.Join(cfg.Dump, name)); err != nil {
			t.Error(err)
		}
	}

	img := decodePNG(t, filepath.Join(cfg.Dump, "image00000.png"))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				t.Fatalf("colour dump pixel (%d, %d) has alpha %#x, want opaque", x, y, a)
			}
		}
	}
}

func decodePNG(t *testing.T, name string) image.Image {
	t.Helper()
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestOpenResultsAppends(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bench.txt")
	for _, line := range []string{"first\n", "second\n"} {
		out, err := openResults(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := out.WriteString(line); err != nil {
			t.Fatal(err)
		}
		if err := out.Close(); err != nil {
			t.Fatal(err)
		}
	}

	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "first\nsecond\n" {
		t.Errorf("results file = %q, want both runs", got)
	}
}

func TestBenchZooms(t *testing.T) {
	cfg := softConfig(t)
	cfg.Bench = true

	r, out := newSoftRunner(t, cfg)
	r.benchInterval = 0
	zoom := r.uniforms.Zoom

	var log bytes.Buffer
	if err := r.bench(&log); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(log.String()), "\n")
	if len(lines) != benchReports+1 {
		t.Errorf("bench wrote %d lines, want %d", len(lines), benchReports+1)
	}
	if !strings.HasPrefix(lines[0], "0 ") || !strings.Contains(lines[0], "fps (bench)") {
		t.Errorf("first line = %q", lines[0])
	}
	if out.Len() < log.Len() {
		t.Error("bench results were not echoed to stdout")
	}
	if r.uniforms.Zoom >= zoom {
		t.Errorf("zoom %v did not shrink from %v", r.uniforms.Zoom, zoom)
	}
}

func TestSeekFinishes(t *testing.T) {
	cfg := softConfig(t)
	cfg.Target = 0.5

	r, out := newSoftRunner(t, cfg)
	if err := r.seek(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "Target\t") {
		t.Errorf("seek did not report a result:\n%s", out)
	}
}

func TestRenderMeasuresPasses(t *testing.T) {
	cfg := softConfig(t)
	r, _ := newSoftRunner(t, cfg)

	frame, err := r.render(0, true)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Passes != cfg.Levels {
		t.Errorf("Passes = %d, want %d", frame.Passes, cfg.Levels)
	}
	// A zero threshold evaluates every pixel of every level.
	want := 32*24 + 16*12 + 8*6
	if frame.Rendered != want {
		t.Errorf("Rendered = %d, want %d", frame.Rendered, want)
	}

	frame, err = r.render(0, false)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Passes != 0 {
		t.Errorf("unmeasured frame counted %d passes", frame.Passes)
	}
}
