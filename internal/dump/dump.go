// Package dump writes numbered screenshots of rendered frames.
package dump

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encoder writes an image in one file format.
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	".png": png.Encode,
	".bmp": bmp.Encode,
	".tif": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
	".tiff": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// EncoderFor returns the encoder for a file extension such as ".png".
func EncoderFor(ext string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("dump: unsupported image format %q", ext)
	}
	return enc, nil
}

// Save writes img to name, picking the format from its extension.
func Save(name string, img image.Image) (err error) {
	enc, err := EncoderFor(filepath.Ext(name))
	if err != nil {
		return err
	}

	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if err := enc(file, img); err != nil {
		os.Remove(name)
		return fmt.Errorf("dump: encoding %v: %w", name, err)
	}
	return nil
}

// Dumper numbers screenshots written into a directory.
type Dumper struct {
	Dir    string
	Ext    string // defaults to ".png"
	Opaque bool   // write colour dumps with alpha forced to 255

	next int
}

// Dump writes the colour of img as imageNNNNN and its alpha as
// imageNNNNN_alpha, returning the colour file name.
func (d *Dumper) Dump(img *image.NRGBA) (string, error) {
	ext := d.Ext
	if ext == "" {
		ext = ".png"
	}

	n := d.next
	d.next++

	name := filepath.Join(d.Dir, fmt.Sprintf("image%05d%s", n, ext))
	var colour image.Image = img
	if d.Opaque {
		colour = Opaque(img)
	}
	if err := Save(name, colour); err != nil {
		return "", err
	}

	alphaName := filepath.Join(d.Dir, fmt.Sprintf("image%05d_alpha%s", n, ext))
	if err := Save(alphaName, Alpha(img)); err != nil {
		return "", err
	}
	return name, nil
}

// Alpha returns the alpha channel of img as a grey image.
func Alpha(img *image.NRGBA) *image.Gray {
	out := image.NewGray(img.Rect)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			out.SetGray(x, y, color.Gray{Y: img.NRGBAAt(x, y).A})
		}
	}
	return out
}

// Opaque returns a copy of img with every alpha set to 255.
func Opaque(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out
}
