// Package gldevice drives the multigrid renderer with OpenGL 4.6.
//
// Every function must be called on the thread owning the current GL
// context, after gl.Init.
package gldevice

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/glmultigrid/multigrid"
)

// Device implements multigrid.Device with framebuffer objects.
//
// The "screen" is whatever framebuffer and viewport were current when the
// device first bound an off-screen target; GTK's GLArea, for one, renders
// into its own framebuffer rather than framebuffer 0.
type Device struct {
	// Format is the internal format of new targets.
	Format int32

	bound          *Framebuffer
	screen         uint32
	screenViewport [4]int32
}

func New() *Device {
	return &Device{Format: gl.RGBA8}
}

func (d *Device) NewTarget(width, height int) (multigrid.Target, error) {
	f, err := NewFramebuffer(width, height, d.Format, d.current())
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *Device) current() uint32 {
	if d.bound != nil {
		return d.bound.fbo
	}
	var fbo int32
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &fbo)
	return uint32(fbo)
}

func (d *Device) Bind(t multigrid.Target) {
	if t == nil {
		if d.bound != nil {
			gl.BindFramebuffer(gl.FRAMEBUFFER, d.screen)
			gl.Viewport(d.screenViewport[0], d.screenViewport[1], d.screenViewport[2], d.screenViewport[3])
			d.bound = nil
		}
		return
	}

	if d.bound == nil {
		var fbo int32
		gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &fbo)
		d.screen = uint32(fbo)
		gl.GetIntegerv(gl.VIEWPORT, &d.screenViewport[0])
	}

	f := t.(*Framebuffer)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
	d.bound = f
}

func (d *Device) BindTexture(unit int, t multigrid.Target) {
	d.ActiveTexture(unit)
	if t == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, t.(*Framebuffer).tex)
}

func (d *Device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

// Finish blocks until the GPU has executed every issued command.
func (d *Device) Finish() {
	gl.Finish()
}
