// Package stats measures multigrid frames: how many pixels each pass
// evaluated, how far the result is from a reference and how long it took.
package stats

import (
	"fmt"
	"image"
	"math"
	"time"
)

// Rendered counts the pixels of img an evaluator computed in a pass with the
// given coarseness. Evaluators write the coarseness into alpha when they
// compute a pixel and carry the coarser level's alpha when they
// interpolate, so a fresh pixel has alpha at most ceil(coarsest*255)+1.
func Rendered(img *image.NRGBA, coarsest float32) int {
	limit := int(math.Ceil(float64(coarsest)*255)) + 1

	n := 0
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			if int(img.Pix[i+3]) <= limit {
				n++
			}
			i += 4
		}
	}
	return n
}

// Error returns the mean absolute and mean squared RGB difference between
// img and ref, both normalised to [0, 1].
func Error(img, ref *image.NRGBA) (abs, sq float64, err error) {
	if img.Rect.Size() != ref.Rect.Size() {
		return 0, 0, fmt.Errorf("stats: size mismatch %v and %v", img.Rect.Size(), ref.Rect.Size())
	}

	var sumAbs, sumSq float64
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		i := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		j := ref.PixOffset(ref.Rect.Min.X, ref.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				d := math.Abs(float64(img.Pix[i+c])-float64(ref.Pix[j+c])) / 255
				sumAbs += d
				sumSq += d * d
			}
			i += 4
			j += 4
		}
	}

	n := float64(w * h * 3)
	if n == 0 {
		return 0, 0, nil
	}
	return sumAbs / n, sumSq / n, nil
}

// Frame is what one multigrid frame cost.
type Frame struct {
	Pixels   int // pixels in the output
	Rendered int // pixels evaluated across all passes
	Passes   int
	Duration time.Duration
}

// Add records a pass that evaluated rendered pixels.
func (f *Frame) Add(rendered int) {
	f.Rendered += rendered
	f.Passes++
}

// Fraction returns rendered pixels per output pixel.
func (f Frame) Fraction() float64 {
	if f.Pixels == 0 {
		return 0
	}
	return float64(f.Rendered) / float64(f.Pixels)
}

// Timer averages frame times over an interval.
type Timer struct {
	Interval time.Duration

	start  time.Time
	frames int
	total  time.Duration
}

// Record adds a frame that took d and reports whether the interval has
// elapsed since the last report.
func (t *Timer) Record(now time.Time, d time.Duration) bool {
	if t.start.IsZero() {
		t.start = now
	}
	t.frames++
	t.total += d
	return now.Sub(t.start) >= t.Interval
}

// Report returns the average over the recorded frames and starts a new
// interval at now.
func (t *Timer) Report(now time.Time, pixels int) Rate {
	r := Rate{Frames: t.frames}
	if t.frames > 0 {
		r.PerFrame = t.total / time.Duration(t.frames)
	}
	if r.PerFrame > 0 {
		r.FPS = float64(time.Second) / float64(r.PerFrame)
		if pixels > 0 {
			r.NsPerPixel = float64(r.PerFrame.Nanoseconds()) / float64(pixels)
		}
	}

	t.start = now
	t.frames = 0
	t.total = 0
	return r
}

// Rate is an averaged frame time.
type Rate struct {
	Frames     int
	PerFrame   time.Duration
	FPS        float64
	NsPerPixel float64
}

func (r Rate) String() string {
	return fmt.Sprintf("%.1f fps, %.1f ms/frame %.2f ns/pixel",
		r.FPS, float64(r.PerFrame)/float64(time.Millisecond), r.NsPerPixel)
}
