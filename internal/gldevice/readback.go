package gldevice

import (
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// ReadPixels reads the bound framebuffer into an image, top row first.
func ReadPixels(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	FlipRows(img)
	return img
}

// Read binds t, reads it and rebinds the screen.
func (d *Device) Read(t *Framebuffer) *image.NRGBA {
	d.Bind(t)
	img := ReadPixels(t.Size())
	d.Bind(nil)
	return img
}

// FlipRows reverses the row order of img in place. GL reads bottom row
// first.
func FlipRows(img *image.NRGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
