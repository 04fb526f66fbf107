package dump

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 10})
	img.SetNRGBA(2, 1, color.NRGBA{B: 90, A: 128})
	return img
}

func TestEncoderFor(t *testing.T) {
	for _, ext := range []string{".png", ".PNG", ".bmp", ".tif", ".tiff"} {
		if _, err := EncoderFor(ext); err != nil {
			t.Errorf("EncoderFor(%q) error = %v", ext, err)
		}
	}
	if _, err := EncoderFor(".ppm"); err == nil {
		t.Error("EncoderFor(.ppm) should fail")
	}
}

func TestDumperNumbersFiles(t *testing.T) {
	dir := t.TempDir()
	d := &Dumper{Dir: dir}

	for i, want := range []string{"image00000.png", "image00001.png"} {
		name, err := d.Dump(testImage())
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(name) != want {
			t.Errorf("dump %d = %s, want %s", i, filepath.Base(name), want)
		}
	}

	for _, name := range []string{"image00000_alpha.png", "image00001_alpha.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestDumpBMP(t *testing.T) {
	dir := t.TempDir()
	d := &Dumper{Dir: dir, Ext: ".bmp", Opaque: true}

	name, err := d.Dump(testImage())
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 200 {
		t.Errorf("red = %d, want 200", r>>8)
	}
}

func TestAlpha(t *testing.T) {
	a := Alpha(testImage())
	if a.GrayAt(0, 0).Y != 10 || a.GrayAt(2, 1).Y != 128 || a.GrayAt(1, 1).Y != 0 {
		t.Errorf("Alpha() = %v", a.Pix)
	}
}

func TestOpaque(t *testing.T) {
	src := testImage()
	o := Opaque(src)
	if o.NRGBAAt(0, 0) != (color.NRGBA{R: 200, A: 255}) {
		t.Errorf("Opaque() pixel = %v", o.NRGBAAt(0, 0))
	}
	if src.NRGBAAt(0, 0).A != 10 {
		t.Error("Opaque modified its input")
	}
}

func TestSaveUnsupported(t *testing.T) {
	name := filepath.Join(t.TempDir(), "x.jpg")
	if err := Save(name, testImage()); err == nil {
		t.Error("Save() should reject .jpg")
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Error("Save() created a file for an unsupported format")
	}
}
