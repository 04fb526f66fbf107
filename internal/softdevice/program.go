package softdevice

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader computes the RGBA colour of one fragment, components in [0, 1].
// It runs concurrently for different fragments of the same draw and must
// only read shared state.
type Shader func(f *Fragment) mgl32.Vec4

// Program is a shader plus its uniform values. Unknown uniforms read as
// zero, matching a GL program ignoring uniforms it does not declare.
type Program struct {
	shader Shader
	floats map[string]float32
	ints   map[string]int32
	vecs   map[string]mgl32.Vec4
}

func NewProgram(shader Shader) *Program {
	return &Program{
		shader: shader,
		floats: make(map[string]float32),
		ints:   make(map[string]int32),
		vecs:   make(map[string]mgl32.Vec4),
	}
}

func (p *Program) SetFloat(name string, v float32)   { p.floats[name] = v }
func (p *Program) SetInt(name string, v int32)       { p.ints[name] = v }
func (p *Program) SetVec4(name string, v mgl32.Vec4) { p.vecs[name] = v }

func (p *Program) Float(name string) float32   { return p.floats[name] }
func (p *Program) Int(name string) int32       { return p.ints[name] }
func (p *Program) Vec4(name string) mgl32.Vec4 { return p.vecs[name] }

// Fragment is the pixel a shader is computing.
type Fragment struct {
	X, Y          int // pixel, Y counted from the bottom row
	Width, Height int // size of the bound target

	prog *Program
	dev  *Device
}

// Coord returns the fragment centre in pixels, like gl_FragCoord.xy.
func (f *Fragment) Coord() mgl32.Vec2 {
	return mgl32.Vec2{float32(f.X) + 0.5, float32(f.Y) + 0.5}
}

// Pos returns the fragment centre in normalised device coordinates.
func (f *Fragment) Pos() mgl32.Vec2 {
	c := f.Coord()
	return mgl32.Vec2{
		2*c[0]/float32(f.Width) - 1,
		2*c[1]/float32(f.Height) - 1,
	}
}

func (f *Fragment) Float(name string) float32   { return f.prog.Float(name) }
func (f *Fragment) Int(name string) int32       { return f.prog.Int(name) }
func (f *Fragment) Vec4(name string) mgl32.Vec4 { return f.prog.Vec4(name) }

// Sample reads the texture on the unit named by the sampler uniform with
// bilinear filtering and clamp-to-edge wrapping. An empty unit samples as
// transparent black.
func (f *Fragment) Sample(sampler string, uv mgl32.Vec2) mgl32.Vec4 {
	unit := int(f.prog.Int(sampler))
	if unit < 0 || unit >= MaxTextureUnits {
		return mgl32.Vec4{}
	}
	return sampleBilinear(f.dev.units[unit], uv)
}

func sampleBilinear(img *image.NRGBA, uv mgl32.Vec2) mgl32.Vec4 {
	if img == nil {
		return mgl32.Vec4{}
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()

	x := float64(uv[0])*float64(w) - 0.5
	y := float64(uv[1])*float64(h) - 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := float32(x-x0), float32(y-y0)

	ix, iy := int(x0), int(y0)
	c00 := texel(img, ix, iy)
	c10 := texel(img, ix+1, iy)
	c01 := texel(img, ix, iy+1)
	c11 := texel(img, ix+1, iy+1)

	bottom := c00.Mul(1 - fx).Add(c10.Mul(fx))
	top := c01.Mul(1 - fx).Add(c11.Mul(fx))
	return bottom.Mul(1 - fy).Add(top.Mul(fy))
}

// texel returns the texel at x, y counted from the bottom-left, clamped to
// the image.
func texel(img *image.NRGBA, x, y int) mgl32.Vec4 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x = max(0, min(w-1, x))
	y = max(0, min(h-1, y))

	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+h-1-y)
	p := img.Pix[i : i+4 : i+4]
	return mgl32.Vec4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}
