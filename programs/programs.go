package programs

import (
	_ "embed"
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glmultigrid/internal/softdevice"
)

var ErrNoCPUImplementation = errors.New("fractal does not have a CPU implementation")

var (
	NullColour = mgl32.Vec3{0.1, 0.1, 0.1}
)

const glslVersion = "#version 460 core\n"

//go:embed shaders/default.vert
var defaultVertexShader string

//go:embed shaders/sphere.vert
var sphereVertexShader string

//go:embed shaders/multigrid.glsl
var multigridFragment string

// SphereVertexShader replaces a program's vertex shader when it is drawn
// with a sphere proxy instead of the fullscreen triangle.
var SphereVertexShader = sphereVertexShader

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// Find returns the program called name, ignoring case.
func Find(name string) (Program, bool) {
	for _, p := range programs {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Program{}, false
}

// Names lists the registered programs in registration order.
func Names() []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return names
}

// NewProgram registers p. The evaluator source is wrapped with the
// multigrid refinement main function.
func NewProgram(p Program) {
	p.FragmentShader = glslVersion + p.FragmentShader + multigridFragment
	programs = append(programs, p)
}

var programs []Program

// PixelFunc evaluates the fractal at pos, in normalised device coordinates.
type PixelFunc func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3

type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	GetPixel       PixelFunc
}

// Shader returns the CPU version of the program's multigrid fragment
// shader for the given uniforms.
func (p *Program) Shader(uniforms Uniforms) (softdevice.Shader, error) {
	if p.GetPixel == nil {
		return nil, ErrNoCPUImplementation
	}

	pixel := p.GetPixel
	return Refine(func(pos mgl32.Vec2) mgl32.Vec3 {
		return pixel(uniforms, pos)
	}), nil
}
