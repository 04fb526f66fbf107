package programs

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glmultigrid/internal/softdevice"
	"github.com/stewi1014/glmultigrid/multigrid"
)

// Refine turns an evaluator into a multigrid fragment shader, the CPU twin
// of shaders/multigrid.glsl.
//
// The coarsest pass evaluates every pixel. Finer passes look at the four
// coarser texels surrounding the pixel and only evaluate it when their
// colours spread by at least the threshold; elsewhere the coarser result is
// interpolated. Alpha holds the coarseness of the pass that last evaluated
// the pixel.
func Refine(evaluate func(pos mgl32.Vec2) mgl32.Vec3) softdevice.Shader {
	return func(f *softdevice.Fragment) mgl32.Vec4 {
		coarsest := f.Float(multigrid.UniformCoarsest)

		if coarsest < 1 {
			finer := f.Vec4(multigrid.UniformFiner)
			coarser := f.Vec4(multigrid.UniformCoarser)
			coord := f.Coord()
			uv := mgl32.Vec2{coord[0] * finer[2], coord[1] * finer[3]}

			base := mgl32.Vec2{
				(floor(uv[0]*coarser[0]-0.5) + 0.5) * coarser[2],
				(floor(uv[1]*coarser[1]-0.5) + 0.5) * coarser[3],
			}
			c00 := f.Sample(multigrid.UniformCoarserTex, base)
			c10 := f.Sample(multigrid.UniformCoarserTex, base.Add(mgl32.Vec2{coarser[2], 0}))
			c01 := f.Sample(multigrid.UniformCoarserTex, base.Add(mgl32.Vec2{0, coarser[3]}))
			c11 := f.Sample(multigrid.UniformCoarserTex, base.Add(mgl32.Vec2{coarser[2], coarser[3]}))

			if Spread(c00, c10, c01, c11) < f.Float(multigrid.UniformThreshold) {
				return f.Sample(multigrid.UniformCoarserTex, uv)
			}
		}

		c := evaluate(f.Pos())
		return c.Vec4(coarsest)
	}
}

// Spread returns the largest per-channel RGB range across the colours.
func Spread(colours ...mgl32.Vec4) float32 {
	if len(colours) == 0 {
		return 0
	}

	lo, hi := colours[0].Vec3(), colours[0].Vec3()
	for _, c := range colours[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], c[i])
			hi[i] = max(hi[i], c[i])
		}
	}

	d := hi.Sub(lo)
	return max(d[0], d[1], d[2])
}

func floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
