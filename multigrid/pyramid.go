package multigrid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// LevelsFor returns the level count for a base pyramid depth with antialias
// extra levels of supersampling.
func LevelsFor(base, antialias int) int {
	return base + antialias
}

// Pyramid holds render targets of halving resolution for one output size.
// Level l is (width>>l, height>>l); level Levels()-1 is the coarsest.
//
// Level 0 has the full output resolution. The renderer never draws into it,
// the final pass goes to the screen, but its size is what the final pass
// reports as the finer level.
type Pyramid struct {
	dev     Device
	levels  int
	width   int
	height  int
	targets []Target
}

// NewPyramid returns an empty pyramid of the given depth.
// Call Ensure before using it.
func NewPyramid(dev Device, levels int) (*Pyramid, error) {
	if levels < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrLevels, levels)
	}

	return &Pyramid{
		dev:    dev,
		levels: levels,
	}, nil
}

// Levels returns the number of levels in the pyramid.
func (p *Pyramid) Levels() int {
	return p.levels
}

// Size returns the output size the pyramid was built for, or 0, 0 if it is
// not allocated.
func (p *Pyramid) Size() (width, height int) {
	return p.width, p.height
}

// Allocated reports whether the pyramid currently owns targets.
func (p *Pyramid) Allocated() bool {
	return p.targets != nil
}

// Level returns the target for level l.
func (p *Pyramid) Level(l int) Target {
	return p.targets[l]
}

// LevelSize returns the size of level l for the current output size.
func (p *Pyramid) LevelSize(l int) (width, height int) {
	return levelSize(p.width, l), levelSize(p.height, l)
}

// Dims returns the shader dimension vector of level l.
func (p *Pyramid) Dims(l int) mgl32.Vec4 {
	return Dims(p.LevelSize(l))
}

func levelSize(size, l int) int {
	return max(size>>l, 1)
}

// Ensure makes the pyramid match an output of width by height pixels.
// If it already does, nothing happens and the existing targets are kept.
// Otherwise every existing target is released before the new ones are
// allocated, coarsest first.
//
// Ensure may leave any target bound.
func (p *Pyramid) Ensure(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrSize, width, height)
	}
	if p.Allocated() && p.width == width && p.height == height {
		return nil
	}

	Logger().Debug("multigrid: allocating pyramid",
		"levels", p.levels,
		"width", width,
		"height", height,
		"previousWidth", p.width,
		"previousHeight", p.height,
	)

	p.Release()

	targets := make([]Target, p.levels)
	for l := p.levels - 1; l >= 0; l-- {
		w, h := levelSize(width, l), levelSize(height, l)
		t, err := p.dev.NewTarget(w, h)
		if err != nil {
			for _, allocated := range targets[l+1:] {
				allocated.Release()
			}
			return &LevelError{Level: l, Width: w, Height: h, Err: err}
		}
		targets[l] = t
	}

	p.targets = targets
	p.width, p.height = width, height
	return nil
}

// Release frees every target, coarsest first like Ensure allocates them.
// The pyramid can be reallocated with Ensure.
func (p *Pyramid) Release() {
	for l := len(p.targets) - 1; l >= 0; l-- {
		p.targets[l].Release()
	}
	p.targets = nil
	p.width, p.height = 0, 0
}
