package multigrid

import "fmt"

// Pass describes one draw of a Render call.
type Pass struct {
	Index    int     // 0 for the coarsest pass
	Level    int     // pyramid level written, 0 for the output pass
	Coarsest float32 // coarseness uploaded for the pass
	Output   bool    // true when the pass wrote the screen or the output target
	Width    int
	Height   int
}

// Coarseness returns the coarseness uploaded when rendering level l of a
// pyramid with the given depth: 1 for the coarsest level falling linearly to
// 0 for level 0.
func Coarseness(l, levels int) float32 {
	if levels <= 1 {
		return 1
	}
	return float32(l) / float32(levels-1)
}

// Renderer draws an evaluator coarse to fine through a Pyramid.
//
// A Renderer is not safe for concurrent use. It belongs to one render loop
// and one device context.
type Renderer struct {
	dev     Device
	pyramid *Pyramid
	output  Target

	// OnPass, if set, is called after each pass has been drawn while the
	// pass's target is still bound.
	OnPass func(Pass)
}

// NewRenderer returns a renderer with a pyramid of the given depth.
func NewRenderer(dev Device, levels int) (*Renderer, error) {
	pyramid, err := NewPyramid(dev, levels)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		dev:     dev,
		pyramid: pyramid,
	}, nil
}

// Pyramid returns the renderer's pyramid.
func (r *Renderer) Pyramid() *Pyramid {
	return r.pyramid
}

// Resize matches the pyramid to an output of width by height pixels.
// Call it whenever the window size may have changed; an unchanged size is
// a no-op.
func (r *Renderer) Resize(width, height int) error {
	return r.pyramid.Ensure(width, height)
}

// SetOutput makes the final pass render into t instead of the screen.
// t must have the size passed to Resize or Render fails with ErrOutputSize.
// Pass nil to render to the screen.
func (r *Renderer) SetOutput(t Target) {
	r.output = t
}

// Release frees the pyramid's targets. The output target is not owned by
// the renderer and is left alone.
func (r *Renderer) Release() {
	r.pyramid.Release()
}

// Render draws one frame. The coarsest level is evaluated everywhere, then
// each finer pass samples the previous result on CoarserUnit so the
// evaluator can skip pixels that have converged under threshold. The last
// pass writes the output.
//
// On return the coarser texture unit is unbound and unit 0 is active.
func (r *Renderer) Render(prog Program, threshold float32, proxy Proxy) error {
	p := r.pyramid
	if !p.Allocated() {
		return ErrNotAllocated
	}
	if r.output != nil {
		ow, oh := r.output.Size()
		if w, h := p.Size(); ow != w || oh != h {
			return fmt.Errorf("%w: output %dx%d, pyramid %dx%d", ErrOutputSize, ow, oh, w, h)
		}
	}
	levels := p.Levels()

	prog.SetFloat(UniformThreshold, threshold)
	prog.SetFloat(UniformCoarsest, 1)

	if levels == 1 {
		r.dev.Bind(r.output)
		proxy.Draw()
		r.pass(Pass{Index: 0, Level: 0, Coarsest: 1, Output: true})
		return nil
	}

	r.dev.Bind(p.Level(levels - 1))
	proxy.Draw()
	r.pass(Pass{Index: 0, Level: levels - 1, Coarsest: 1})

	for l := levels - 2; l >= 0; l-- {
		coarsest := Coarseness(l, levels)
		prog.SetFloat(UniformCoarsest, coarsest)

		if l == 0 {
			r.dev.Bind(r.output)
		} else {
			r.dev.Bind(p.Level(l))
		}

		r.dev.BindTexture(CoarserUnit, p.Level(l+1))
		prog.SetInt(UniformCoarserTex, CoarserUnit)
		prog.SetVec4(UniformCoarser, p.Dims(l+1))
		prog.SetVec4(UniformFiner, p.Dims(l))

		proxy.Draw()
		r.pass(Pass{Index: levels - 1 - l, Level: l, Coarsest: coarsest, Output: l == 0})
	}

	r.dev.BindTexture(CoarserUnit, nil)
	r.dev.ActiveTexture(0)
	return nil
}

func (r *Renderer) pass(pass Pass) {
	if r.OnPass == nil {
		return
	}
	pass.Width, pass.Height = r.pyramid.LevelSize(pass.Level)
	r.OnPass(pass)
}
