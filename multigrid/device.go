package multigrid

import "github.com/go-gl/mathgl/mgl32"

// Target is an off-screen colour render target owned by a Pyramid.
type Target interface {
	Size() (width, height int)
	Release()
}

// Device is the small slice of a graphics API the renderer drives.
//
// Bind and BindTexture mutate global device state; the renderer restores the
// texture state it touches before returning but leaves the last bound target
// in place: the output, nil for the screen, after a full Render.
type Device interface {
	// NewTarget allocates a complete RGBA colour target, or returns an error
	// naming why the device rejected it.
	NewTarget(width, height int) (Target, error)

	// Bind directs rendering to t and sets the viewport to its size.
	// A nil target binds the screen and restores the screen viewport.
	Bind(t Target)

	// BindTexture makes unit active and binds the colour of t to it.
	// A nil target unbinds the unit.
	BindTexture(unit int, t Target)

	// ActiveTexture selects the texture unit subsequent binds apply to.
	ActiveTexture(unit int)
}

// Program is the evaluator the renderer uploads its per-pass uniforms to.
// Setting a uniform the program does not declare is a no-op.
type Program interface {
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetVec4(name string, v mgl32.Vec4)
}

// Uniform names the evaluator reads.
const (
	UniformThreshold  = "threshold"
	UniformCoarsest   = "multigridCoarsest"
	UniformCoarserTex = "multigridCoarserTex"
	UniformCoarser    = "multigridCoarser"
	UniformFiner      = "multigridFiner"
)

// CoarserUnit is the texture unit reserved for the previous pass's result.
const CoarserUnit = 7

// Dims returns the (width, height, 1/width, 1/height) vector shaders use to
// convert between pixel and texture coordinates.
func Dims(width, height int) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(width),
		float32(height),
		1 / float32(width),
		1 / float32(height),
	}
}
