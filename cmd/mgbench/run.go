package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/stewi1014/glmultigrid/internal/dump"
	"github.com/stewi1014/glmultigrid/internal/stats"
	"github.com/stewi1014/glmultigrid/multigrid"
	"github.com/stewi1014/glmultigrid/programs"
)

// Sweep parameters for -bench.
const (
	benchReports  = 60
	benchZoomStep = 0.8
	benchInterval = 200 * time.Millisecond
)

type runner struct {
	cfg      Config
	backend  backend
	uniforms programs.Uniforms
	dumper   *dump.Dumper
	stdout   io.Writer

	benchInterval time.Duration

	measure bool
	frame   stats.Frame
}

func newRunner(cfg Config, b backend, stdout io.Writer) *runner {
	r := &runner{
		cfg:     cfg,
		backend: b,
		stdout:  stdout,

		benchInterval: benchInterval,
	}
	r.uniforms.DefaultValues()
	r.uniforms.SetAspect(cfg.Size.Width, cfg.Size.Height)

	if cfg.Dump != "" {
		// Alpha holds the pass coarseness and goes to its own file.
		r.dumper = &dump.Dumper{Dir: cfg.Dump, Ext: cfg.Format, Opaque: true}
	}

	b.Renderer().OnPass = func(pass multigrid.Pass) {
		if r.measure {
			r.frame.Add(stats.Rendered(b.PassImage(pass), pass.Coarsest))
		}
	}
	return r
}

// render draws one frame, counting rendered pixels when measure is set.
func (r *runner) render(threshold float64, measure bool) (stats.Frame, error) {
	r.measure = measure
	r.frame = stats.Frame{Pixels: r.cfg.Size.Pixels()}

	start := time.Now()
	err := r.backend.Render(&r.uniforms, float32(threshold))
	r.frame.Duration = time.Since(start)
	return r.frame, err
}

func (r *runner) dump() error {
	if r.dumper == nil {
		return nil
	}
	name, err := r.dumper.Dump(r.backend.Image())
	if err != nil {
		return err
	}
	fmt.Fprintln(r.stdout, "wrote", name)
	return nil
}

// run renders cfg.Frames frames at a fixed threshold, reporting the frame
// rate every interval.
func (r *runner) run() error {
	timer := stats.Timer{Interval: r.cfg.Interval}
	pixels := r.cfg.Size.Pixels()

	for i := 0; i < r.cfg.Frames; i++ {
		frame, err := r.render(r.cfg.Threshold, false)
		if err != nil {
			return err
		}

		now := time.Now()
		if !timer.Record(now, frame.Duration) && i != r.cfg.Frames-1 {
			continue
		}
		fmt.Fprintf(r.stdout, "Interpolator: %v threshold %.6f\n", timer.Report(now, pixels), r.cfg.Threshold)
		if err := r.dump(); err != nil {
			return err
		}
	}
	return nil
}

// bench zooms into the fractal, writing the frame rate at each zoom level
// to out.
func (r *runner) bench(out io.Writer) error {
	timer := stats.Timer{Interval: r.benchInterval}
	pixels := r.cfg.Size.Pixels()
	results := io.MultiWriter(r.stdout, out)

	for count := 0; count <= benchReports; {
		frame, err := r.render(r.cfg.Threshold, false)
		if err != nil {
			return err
		}

		now := time.Now()
		if !timer.Record(now, frame.Duration) {
			continue
		}
		rate := timer.Report(now, pixels)
		fmt.Fprintf(results, "%d %.2f fps (bench) zoom %.4g\n", count, rate.FPS, r.uniforms.Zoom)

		if count%10 == 5 {
			if err := r.dump(); err != nil {
				return err
			}
		}
		r.uniforms.Zoom *= benchZoomStep
		count++
	}
	return nil
}

// seek adjusts the threshold until the rendered fraction of a frame
// matches cfg.Target, then reports its error against a fully evaluated
// frame.
func (r *runner) seek() error {
	if _, err := r.render(0, false); err != nil {
		return err
	}
	ref := clone(r.backend.Image())

	seeker := multigrid.NewSeeker(r.cfg.Target, r.cfg.Threshold)
	for {
		threshold := seeker.Threshold()
		frame, err := r.render(threshold, true)
		if err != nil {
			return err
		}
		fraction := frame.Fraction()

		abs, sq, err := stats.Error(r.backend.Image(), ref)
		if err != nil {
			return err
		}

		if seeker.Step(fraction) {
			fmt.Fprintf(r.stdout, "Target\t%f\t%f\t%f\t%f\n", threshold, fraction, abs, sq)
			return r.dump()
		}
		fmt.Fprintf(r.stdout, "Render=%f at threshold=%f (err %f) -> new threshold %f\n",
			fraction, threshold, fraction-r.cfg.Target, seeker.Threshold())
	}
}

// openResults opens the -bench results file for appending.
func openResults(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func clone(img *image.NRGBA) *image.NRGBA {
	c := image.NewNRGBA(img.Rect)
	copy(c.Pix, img.Pix)
	return c
}
