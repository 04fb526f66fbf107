// Package softdevice is a CPU implementation of multigrid.Device.
//
// Targets and the screen are *image.NRGBA. Programs are Go functions run
// once per pixel, in parallel across rows, with GL-style coordinates: the
// origin of fragment and texture coordinates is the bottom-left corner.
package softdevice

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/stewi1014/glmultigrid/multigrid"
)

// MaxTextureUnits is the number of texture units a Device has.
const MaxTextureUnits = 16

var ErrIncomplete = errors.New("softdevice: incomplete target")

// Device renders into in-memory images.
type Device struct {
	screen  *image.NRGBA
	bound   *image.NRGBA
	units   [MaxTextureUnits]*image.NRGBA
	active  int
	program *Program

	live  int
	draws int

	// RowsPerChunk is the number of rows each rasterising goroutine owns.
	RowsPerChunk int
}

// New returns a device with a width by height screen.
func New(width, height int) *Device {
	d := &Device{RowsPerChunk: 16}
	d.ResizeScreen(width, height)
	d.bound = d.screen
	return d
}

// ResizeScreen replaces the screen with a cleared image of the new size.
func (d *Device) ResizeScreen(width, height int) {
	wasBound := d.bound == d.screen
	d.screen = image.NewNRGBA(image.Rect(0, 0, width, height))
	if wasBound {
		d.bound = d.screen
	}
}

// Screen returns the screen image.
func (d *Device) Screen() *image.NRGBA {
	return d.screen
}

// Live returns the number of targets allocated and not yet released.
func (d *Device) Live() int {
	return d.live
}

// Draws returns the number of draws issued since the device was created.
func (d *Device) Draws() int {
	return d.draws
}

// Target is an off-screen image.
type Target struct {
	img      *image.NRGBA
	dev      *Device
	released bool
}

func (t *Target) Size() (width, height int) {
	return t.img.Rect.Dx(), t.img.Rect.Dy()
}

// Image returns the target's pixels.
func (t *Target) Image() *image.NRGBA {
	return t.img
}

func (t *Target) Release() {
	if t.released {
		return
	}
	t.released = true
	t.dev.live--
}

func (d *Device) NewTarget(width, height int) (multigrid.Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrIncomplete, width, height)
	}

	d.live++
	return &Target{
		img: image.NewNRGBA(image.Rect(0, 0, width, height)),
		dev: d,
	}, nil
}

func (d *Device) Bind(t multigrid.Target) {
	d.bound = d.image(t)
	if d.bound == nil {
		d.bound = d.screen
	}
}

func (d *Device) BindTexture(unit int, t multigrid.Target) {
	d.ActiveTexture(unit)
	d.units[unit] = d.image(t)
}

func (d *Device) ActiveTexture(unit int) {
	if unit < 0 || unit >= MaxTextureUnits {
		panic(fmt.Sprintf("softdevice: texture unit %d out of range", unit))
	}
	d.active = unit
}

// ActiveUnit returns the active texture unit.
func (d *Device) ActiveUnit() int {
	return d.active
}

// Texture returns the image bound to unit, or nil.
func (d *Device) Texture(unit int) *image.NRGBA {
	return d.units[unit]
}

func (d *Device) image(t multigrid.Target) *image.NRGBA {
	if t == nil {
		return nil
	}
	target := t.(*Target)
	if target.released {
		panic("softdevice: use of released target")
	}
	return target.img
}

// Use makes p the program subsequent draws run.
func (d *Device) Use(p *Program) {
	d.program = p
}

// Quad returns a proxy that covers the whole bound target.
func (d *Device) Quad() multigrid.Proxy {
	return multigrid.ProxyFunc(d.Draw)
}

// Draw runs the program in use for every pixel of the bound target.
// It returns once every pixel has been written.
func (d *Device) Draw() {
	if d.program == nil {
		return
	}
	d.draws++

	dst := d.bound
	bounds := dst.Rect
	height := bounds.Dy()
	chunk := max(d.RowsPerChunk, 1)

	var wg sync.WaitGroup
	for chunkMin := 0; chunkMin < height; chunkMin += chunk {
		chunkMax := min(chunkMin+chunk, height)

		wg.Add(1)
		go func() {
			defer wg.Done()
			d.drawRows(dst, chunkMin, chunkMax)
		}()
	}
	wg.Wait()
}

func (d *Device) drawRows(dst *image.NRGBA, rowMin, rowMax int) {
	width, height := dst.Rect.Dx(), dst.Rect.Dy()
	frag := Fragment{
		prog:   d.program,
		dev:    d,
		Width:  width,
		Height: height,
	}

	for row := rowMin; row < rowMax; row++ {
		i := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+row)
		for x := 0; x < width; x++ {
			frag.X, frag.Y = x, height-1-row
			c := d.program.shader(&frag)
			dst.Pix[i+0] = toByte(c[0])
			dst.Pix[i+1] = toByte(c[1])
			dst.Pix[i+2] = toByte(c[2])
			dst.Pix[i+3] = toByte(c[3])
			i += 4
		}
	}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
