package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/julia.frag
var juliaFragment string

//go:embed shaders/julia3.frag
var julia3Fragment string

func init() {
	NewProgram(Program{
		Name:           "julia",
		VertexShader:   defaultVertexShader,
		FragmentShader: juliaFragment,
		GetPixel: func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
			seed := complex(uniforms.Seed[0], uniforms.Seed[1])
			return escape(uniforms.Point(pos), seed, 2, int(uniforms.Iterations))
		},
	})

	NewProgram(Program{
		Name:           "julia3",
		VertexShader:   defaultVertexShader,
		FragmentShader: julia3Fragment,
		GetPixel: func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
			seed := complex(uniforms.Seed[0]+0.91894, uniforms.Seed[1]+1.00217)
			return escape(uniforms.Point(pos), seed, 3, int(uniforms.Iterations))
		},
	})
}
