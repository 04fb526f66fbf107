package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// FramebufferError reports a framebuffer the driver would not complete.
type FramebufferError struct {
	Width, Height int
	Format        int32
	Status        uint32
}

func (e *FramebufferError) Error() string {
	return fmt.Sprintf("framebuffer %dx%d format 0x%x: %s",
		e.Width, e.Height, e.Format, StatusString(e.Status))
}

// StatusString names a glCheckFramebufferStatus result.
func StatusString(status uint32) string {
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return "complete"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "combination of formats is unsupported by your card"
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "incomplete multisample"
	case gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "incomplete layer targets"
	case gl.FRAMEBUFFER_UNDEFINED:
		return "undefined"
	case 0:
		return "error checking status"
	}
	return fmt.Sprintf("unknown status 0x%x", status)
}

// Framebuffer is a framebuffer object with one colour texture and no depth
// or stencil.
type Framebuffer struct {
	fbo    uint32
	tex    uint32
	width  int
	height int
}

// NewFramebuffer allocates a width by height framebuffer whose colour is a
// texture of the given internal format, like gl.RGBA8. The texture filters
// linearly and clamps to its edges so finer passes can interpolate it.
//
// The framebuffer binding is reset to prev before returning.
func NewFramebuffer(width, height int, format int32, prev uint32) (*Framebuffer, error) {
	f := &Framebuffer{width: width, height: height}

	gl.GenTextures(1, &f.tex)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, format, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &f.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.tex, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, prev)

	if status != gl.FRAMEBUFFER_COMPLETE {
		f.Release()
		return nil, &FramebufferError{
			Width:  width,
			Height: height,
			Format: format,
			Status: status,
		}
	}

	return f, nil
}

func (f *Framebuffer) Size() (width, height int) {
	return f.width, f.height
}

// Texture returns the colour texture name.
func (f *Framebuffer) Texture() uint32 {
	return f.tex
}

// Handle returns the framebuffer object name.
func (f *Framebuffer) Handle() uint32 {
	return f.fbo
}

func (f *Framebuffer) Release() {
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	if f.tex != 0 {
		gl.DeleteTextures(1, &f.tex)
		f.tex = 0
	}
}
