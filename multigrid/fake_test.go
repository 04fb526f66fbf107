package multigrid

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeTarget struct {
	id       int
	w, h     int
	dev      *fakeDevice
	released bool
}

func (t *fakeTarget) Size() (int, int) { return t.w, t.h }

func (t *fakeTarget) Release() {
	if t.released {
		t.dev.log("double release %d", t.id)
		return
	}
	t.released = true
	t.dev.live--
	t.dev.log("release %d", t.id)
}

// fakeDevice records every call as a string and tracks binding state.
type fakeDevice struct {
	nextID   int
	live     int
	events   []string
	failAt   int // fail the n-th allocation (1-based), 0 for never
	allocs   int
	bound    *fakeTarget
	active   int
	textures map[int]*fakeTarget
}

var errUnsupported = errors.New("format unsupported")

func newFakeDevice() *fakeDevice {
	return &fakeDevice{textures: make(map[int]*fakeTarget)}
}

func (d *fakeDevice) log(format string, args ...any) {
	d.events = append(d.events, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) NewTarget(w, h int) (Target, error) {
	d.allocs++
	if d.failAt != 0 && d.allocs == d.failAt {
		d.log("fail %dx%d", w, h)
		return nil, errUnsupported
	}
	d.nextID++
	d.live++
	d.log("alloc %d %dx%d", d.nextID, w, h)
	return &fakeTarget{id: d.nextID, w: w, h: h, dev: d}, nil
}

func (d *fakeDevice) Bind(t Target) {
	if t == nil {
		d.bound = nil
		d.log("bind screen")
		return
	}
	d.bound = t.(*fakeTarget)
	d.log("bind %d", d.bound.id)
}

func (d *fakeDevice) BindTexture(unit int, t Target) {
	d.active = unit
	if t == nil {
		delete(d.textures, unit)
		d.log("texture %d none", unit)
		return
	}
	d.textures[unit] = t.(*fakeTarget)
	d.log("texture %d %d", unit, t.(*fakeTarget).id)
}

func (d *fakeDevice) ActiveTexture(unit int) {
	d.active = unit
	d.log("active %d", unit)
}

// draw describes what a proxy draw saw.
type draw struct {
	target    *fakeTarget // nil for the screen
	coarsest  float32
	threshold float32
	coarser   *fakeTarget
	coarserV  mgl32.Vec4
	finerV    mgl32.Vec4
}

// fakeProgram keeps the uniforms it has been given and doubles as the proxy,
// snapshotting the uniform and binding state on every draw.
type fakeProgram struct {
	dev    *fakeDevice
	floats map[string]float32
	ints   map[string]int32
	vecs   map[string]mgl32.Vec4
	draws  []draw
}

func newFakeProgram(dev *fakeDevice) *fakeProgram {
	return &fakeProgram{
		dev:    dev,
		floats: make(map[string]float32),
		ints:   make(map[string]int32),
		vecs:   make(map[string]mgl32.Vec4),
	}
}

func (p *fakeProgram) SetFloat(name string, v float32)   { p.floats[name] = v }
func (p *fakeProgram) SetInt(name string, v int32)       { p.ints[name] = v }
func (p *fakeProgram) SetVec4(name string, v mgl32.Vec4) { p.vecs[name] = v }

func (p *fakeProgram) Draw() {
	d := draw{
		target:    p.dev.bound,
		coarsest:  p.floats[UniformCoarsest],
		threshold: p.floats[UniformThreshold],
	}
	if unit, ok := p.ints[UniformCoarserTex]; ok {
		d.coarser = p.dev.textures[int(unit)]
		d.coarserV = p.vecs[UniformCoarser]
		d.finerV = p.vecs[UniformFiner]
	}
	p.draws = append(p.draws, d)
	p.dev.log("draw")
}
