package programs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Uniforms are the evaluator inputs. The uniform tag names the GLSL uniform
// each field is uploaded to.
type Uniforms struct {
	Zoom       float64    `uniform:"zoom"`
	Center     mgl64.Vec2 `uniform:"center"`
	Seed       mgl64.Vec2 `uniform:"seed"`
	Camera     mgl32.Mat4 `uniform:"camera"`
	Iterations int32      `uniform:"iterations"`
}

// DefaultValues resets the view to the spiral near the Mandelbrot neck.
func (u *Uniforms) DefaultValues() {
	u.Zoom = 1
	u.Center = mgl64.Vec2{-0.7451580638016240, 0.1125749162054177}
	u.Seed = mgl64.Vec2{-0.835, -0.2321}
	u.Camera = mgl32.Ident4()
	u.Iterations = 500
}

// SetAspect scales the camera so the shorter window side spans [-1, 1].
func (u *Uniforms) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	if height > width {
		u.Camera = mgl32.Scale3D(1, float32(height)/float32(width), 1)
	} else {
		u.Camera = mgl32.Scale3D(float32(width)/float32(height), 1, 1)
	}
}

// Point maps a position in normalised device coordinates to the complex
// plane.
func (u *Uniforms) Point(pos mgl32.Vec2) complex128 {
	p := u.Camera.Mul4x1(mgl32.Vec4{pos[0], pos[1], 0, 1})
	return complex(
		float64(p[0])*u.Zoom+u.Center[0],
		float64(p[1])*u.Zoom+u.Center[1],
	)
}
