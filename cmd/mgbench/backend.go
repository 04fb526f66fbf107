package main

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glmultigrid/internal/gldevice"
	"github.com/stewi1014/glmultigrid/internal/softdevice"
	"github.com/stewi1014/glmultigrid/multigrid"
	"github.com/stewi1014/glmultigrid/programs"
)

// backend renders whole frames and reads them back.
type backend interface {
	// Renderer returns the renderer, for installing an OnPass hook.
	Renderer() *multigrid.Renderer
	// Render draws a frame and returns once it is complete.
	Render(u *programs.Uniforms, threshold float32) error
	// PassImage reads the target of a pass from inside OnPass.
	PassImage(pass multigrid.Pass) *image.NRGBA
	// Image reads the last frame.
	Image() *image.NRGBA
	Close()
}

// glBackend renders into an off-screen target of a hidden glfw window.
type glBackend struct {
	window   *glfw.Window
	device   *gldevice.Device
	renderer *multigrid.Renderer
	program  *gldevice.Program
	proxy    *gldevice.Mesh
	output   *gldevice.Framebuffer
}

// newGLBackend must be called from the locked main thread.
func newGLBackend(cfg Config) (_ *glBackend, err error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw.Init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	window, err := glfw.CreateWindow(
		cfg.Size.Width,
		cfg.Size.Height,
		"GLMultigrid Bench",
		nil,
		nil,
	)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	b := &glBackend{window: window}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}
	if cfg.Debug {
		gldevice.EnableDebug(gl.DEBUG_SEVERITY_MEDIUM)
	}

	fractal := cfg.Fractal()
	b.program, err = gldevice.NewProgram(fractal.VertexShader, fractal.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", fractal.Name, err)
	}
	b.proxy = gldevice.Quad()

	b.device = gldevice.New()
	b.renderer, err = multigrid.NewRenderer(b.device, cfg.Levels)
	if err != nil {
		return nil, err
	}
	if err := b.renderer.Resize(cfg.Size.Width, cfg.Size.Height); err != nil {
		return nil, fmt.Errorf("allocating multigrid targets: %w", err)
	}

	output, err := b.device.NewTarget(cfg.Size.Width, cfg.Size.Height)
	if err != nil {
		return nil, fmt.Errorf("allocating output: %w", err)
	}
	b.output = output.(*gldevice.Framebuffer)
	b.renderer.SetOutput(b.output)

	return b, nil
}

func (b *glBackend) Renderer() *multigrid.Renderer {
	return b.renderer
}

func (b *glBackend) Render(u *programs.Uniforms, threshold float32) error {
	b.program.Use()
	if err := b.program.Load(u); err != nil {
		return err
	}
	if err := b.renderer.Render(b.program, threshold, b.proxy); err != nil {
		return err
	}
	b.device.Finish()
	return nil
}

func (b *glBackend) PassImage(pass multigrid.Pass) *image.NRGBA {
	return gldevice.ReadPixels(pass.Width, pass.Height)
}

func (b *glBackend) Image() *image.NRGBA {
	return b.device.Read(b.output)
}

func (b *glBackend) Close() {
	if b.renderer != nil {
		b.renderer.Release()
	}
	if b.output != nil {
		b.output.Release()
	}
	if b.program != nil {
		b.program.Delete()
	}
	if b.proxy != nil {
		b.proxy.Delete()
	}
	b.window.Destroy()
	glfw.Terminate()
}

// softBackend renders on the CPU.
type softBackend struct {
	device   *softdevice.Device
	renderer *multigrid.Renderer
	fractal  programs.Program
}

func newSoftBackend(cfg Config) (*softBackend, error) {
	d := softdevice.New(cfg.Size.Width, cfg.Size.Height)
	renderer, err := multigrid.NewRenderer(d, cfg.Levels)
	if err != nil {
		return nil, err
	}
	if err := renderer.Resize(cfg.Size.Width, cfg.Size.Height); err != nil {
		return nil, fmt.Errorf("allocating multigrid targets: %w", err)
	}

	return &softBackend{
		device:   d,
		renderer: renderer,
		fractal:  cfg.Fractal(),
	}, nil
}

func (b *softBackend) Renderer() *multigrid.Renderer {
	return b.renderer
}

func (b *softBackend) Render(u *programs.Uniforms, threshold float32) error {
	shader, err := b.fractal.Shader(*u)
	if err != nil {
		return err
	}
	prog := softdevice.NewProgram(shader)
	b.device.Use(prog)
	return b.renderer.Render(prog, threshold, b.device.Quad())
}

func (b *softBackend) PassImage(pass multigrid.Pass) *image.NRGBA {
	if pass.Output {
		return b.device.Screen()
	}
	return b.renderer.Pyramid().Level(pass.Level).(*softdevice.Target).Image()
}

func (b *softBackend) Image() *image.NRGBA {
	return b.device.Screen()
}

func (b *softBackend) Close() {
	b.renderer.Release()
}
