package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmultigrid/internal/config"
	"github.com/stewi1014/glmultigrid/internal/gldevice"
	"github.com/stewi1014/glmultigrid/internal/stats"
	"github.com/stewi1014/glmultigrid/multigrid"
	"github.com/stewi1014/glmultigrid/programs"
)

// Zoom is clamped to this; below it double precision falls apart.
const zoomLimit = 1e-14

func NewRenderWindow(
	app *gtk.Application,
	opts config.Options,
	sphere bool,
	quit func(error),
) *RenderWindow {
	var err error
	w := &RenderWindow{
		opts:   opts,
		sphere: sphere,
		quit:   quit,
		timer:  stats.Timer{Interval: 5 * time.Second},
	}
	w.uniforms.DefaultValues()

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(opts.Size.Width, opts.Size.Height)

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.BUTTON1_MOTION_MASK) |
			int(gdk.SCROLL_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("scroll-event", w.scroll)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)
	w.Connect("key-press-event", w.key)

	w.Add(w.gla)
	w.ShowAll()

	return w
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla      *gtk.GLArea
	dragging bool
	dragPos  [2]float64
	width    int
	height   int

	opts   config.Options
	sphere bool
	quit   func(error)
	failed bool

	device   *gldevice.Device
	renderer *multigrid.Renderer
	program  *gldevice.Program
	proxy    *gldevice.Mesh
	uniforms programs.Uniforms
	timer    stats.Timer
}

// fail shows err and ends the application once the dialog is closed.
func (w *RenderWindow) fail(err error) {
	if w.failed {
		return
	}
	w.failed = true
	log.Println(err)
	glib.IdleAdd(func() {
		NewErrorDialog(w.ApplicationWindow, err)
		w.quit(err)
	})
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := gl.Init()
	if err != nil {
		w.fail(fmt.Errorf("gl.Init: %w", err))
		return
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Println("OpenGL version", version)

	if w.opts.Debug {
		gldevice.EnableDebug(gl.DEBUG_SEVERITY_LOW)
	}

	fractal := w.opts.Fractal()
	vertexShader := fractal.VertexShader
	if w.sphere {
		vertexShader = programs.SphereVertexShader
		w.proxy = gldevice.Sphere(16, 8)
	} else {
		w.proxy = gldevice.Quad()
	}

	w.program, err = gldevice.NewProgram(vertexShader, fractal.FragmentShader)
	if err != nil {
		w.fail(fmt.Errorf("loading %v: %w", fractal.Name, err))
		return
	}

	w.device = gldevice.New()
	w.renderer, err = multigrid.NewRenderer(w.device, w.opts.Levels)
	if err != nil {
		w.fail(err)
		return
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) {
	if w.failed || w.renderer == nil || w.width == 0 || w.height == 0 {
		return
	}

	err := w.renderer.Resize(w.width, w.height)
	if err != nil {
		w.fail(fmt.Errorf("allocating multigrid targets: %w", err))
		return
	}

	start := time.Now()
	gla.AttachBuffers()
	gl.ClearColor(0.2, 0.3, 0.4, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	w.program.Use()
	if err := w.program.Load(&w.uniforms); err != nil {
		w.fail(err)
		return
	}
	err = w.renderer.Render(w.program, float32(w.opts.Threshold), w.proxy)
	if err != nil {
		w.fail(err)
		return
	}

	if w.opts.Debug {
		w.device.Finish()
		now := time.Now()
		if w.timer.Record(now, now.Sub(start)) {
			log.Println(w.timer.Report(now, w.width*w.height))
		}
		gla.QueueRender()
	}
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	if w.renderer != nil {
		w.renderer.Release()
	}
	if w.program != nil {
		w.program.Delete()
	}
	if w.proxy != nil {
		w.proxy.Delete()
	}
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.width, w.height = width, height
	w.uniforms.SetAspect(width, height)
}

// scale converts window pixels to the normalised device units the camera
// maps onto the fractal plane.
func (w *RenderWindow) scale() float64 {
	return 2 / float64(min(w.width, w.height))
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	button := gdk.EventButtonNewFromEvent(event)
	if button.Button() != gdk.BUTTON_PRIMARY {
		return
	}

	switch button.Type() {
	case gdk.EVENT_BUTTON_PRESS:
		w.dragging = true
		w.dragPos = [2]float64{button.X(), button.Y()}
	case gdk.EVENT_BUTTON_RELEASE:
		w.dragging = false
	}
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) {
	if !w.dragging || w.width == 0 || w.height == 0 {
		return
	}

	x, y := gdk.EventMotionNewFromEvent(event).MotionVal()
	d := mgl64.Vec2{x - w.dragPos[0], -(y - w.dragPos[1])}
	w.dragPos = [2]float64{x, y}

	w.uniforms.Center = w.uniforms.Center.Sub(d.Mul(w.scale() * w.uniforms.Zoom))
	gla.QueueRender()
}

func (w *RenderWindow) scroll(gla *gtk.GLArea, event *gdk.Event) {
	scroll := gdk.EventScrollNewFromEvent(event)

	switch scroll.Direction() {
	case gdk.SCROLL_DOWN:
		w.zoom(1 / .9)
	case gdk.SCROLL_UP:
		w.zoom(.9)
	}
}

func (w *RenderWindow) zoom(factor float64) {
	w.uniforms.Zoom *= factor
	if w.uniforms.Zoom < zoomLimit {
		w.uniforms.Zoom = zoomLimit
	}
	if w.uniforms.Zoom > 4 {
		w.uniforms.Zoom = 4
	}
	w.gla.QueueRender()
}

func (w *RenderWindow) key(win *gtk.ApplicationWindow, event *gdk.Event) {
	key := gdk.EventKeyNewFromEvent(event)
	speed := 0.1 * w.uniforms.Zoom

	switch key.KeyVal() {
	case gdk.KEY_x:
		w.Destroy()
		return
	case gdk.KEY_w:
		w.uniforms.Center[1] += speed
	case gdk.KEY_s:
		w.uniforms.Center[1] -= speed
	case gdk.KEY_a:
		w.uniforms.Center[0] -= speed
	case gdk.KEY_d:
		w.uniforms.Center[0] += speed
	case gdk.KEY_q:
		w.zoom(.9)
		return
	case gdk.KEY_z:
		w.zoom(1 / .9)
		return
	default:
		return
	}
	w.gla.QueueRender()
}
