package programs

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// escape iterates z = z^power + c from z until |re|+|im| exceeds 4 and
// colours the point by the number of iterations taken. Points that never
// escape get NullColour.
func escape(z, c complex128, power, iterations int) mgl32.Vec3 {
	for i := 0; i < iterations; i++ {
		if math.Abs(real(z))+math.Abs(imag(z)) > 4 {
			return Palette(i)
		}

		zn := z
		for p := 1; p < power; p++ {
			zn *= z
		}
		z = zn + c
	}
	return NullColour
}

// Palette is the cosine colour ramp shared with the GLSL evaluators.
func Palette(iterations int) mgl32.Vec3 {
	t := 0.02 * float64(iterations)
	return mgl32.Vec3{
		float32(0.5 + 0.5*math.Cos(2*math.Pi*(t+0.0))),
		float32(0.5 + 0.5*math.Cos(2*math.Pi*(t+0.1))),
		float32(0.5 + 0.5*math.Cos(2*math.Pi*(t+0.2))),
	}
}
