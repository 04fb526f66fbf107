package gldevice

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	lru "github.com/hashicorp/golang-lru/v2"
)

// locationCacheSize bounds the uniform locations remembered per program.
const locationCacheSize = 64

// Program is a linked vertex and fragment shader.
type Program struct {
	id        uint32
	locations *lru.Cache[string, int32]
}

// NewProgram compiles and links the shaders. The fragment output is bound
// to outputColor.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := compileShader(vertexSource+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	id := gl.CreateProgram()
	gl.AttachShader(id, vertexShader)
	gl.AttachShader(id, fragmentShader)
	gl.BindFragDataLocation(id, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(id, l, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("failed to link program: %v", log)
	}

	locations, err := lru.New[string, int32](locationCacheSize)
	if err != nil {
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("lru.New: %w", err)
	}

	return &Program{
		id:        id,
		locations: locations,
	}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, log)
	}

	return shader, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use installs the program for subsequent draws.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Location returns the location of a uniform, or -1 if the program does not
// declare it.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations.Get(name); ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations.Add(name, loc)
	return loc
}

// The setters below write to the program in use. Writes to location -1 are
// ignored by GL.

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Location(name), v)
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Location(name), v)
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(p.Location(name), 1, &v[0])
}

// Delete frees the program.
func (p *Program) Delete() {
	gl.DeleteProgram(p.id)
	p.locations.Purge()
	p.id = 0
}
