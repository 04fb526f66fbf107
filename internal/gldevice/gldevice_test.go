package gldevice

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

func TestSphereMeshCount(t *testing.T) {
	tests := []struct {
		slices, stacks int
		triangles      int
	}{
		{8, 4, 8 * 6},
		{3, 1, 8 * 6},
		{16, 8, 16 * 14},
	}

	for _, tt := range tests {
		v := SphereMesh(2, tt.slices, tt.stacks)
		if len(v)%9 != 0 {
			t.Fatalf("SphereMesh(%d, %d) has %d floats, not whole triangles", tt.slices, tt.stacks, len(v))
		}
		if got := len(v) / 9; got != tt.triangles {
			t.Errorf("SphereMesh(%d, %d) = %d triangles, want %d", tt.slices, tt.stacks, got, tt.triangles)
		}
	}
}

func TestSphereMeshRadius(t *testing.T) {
	v := SphereMesh(2, 12, 6)
	for i := 0; i < len(v); i += 3 {
		l := mgl32.Vec3{v[i], v[i+1], v[i+2]}.Len()
		if l < 1.999 || l > 2.001 {
			t.Fatalf("vertex %d at distance %v, want 2", i/3, l)
		}
	}
}

// Every point of the viewport must fall inside the projection of some
// triangle, or the sphere proxy would leave pixels unshaded.
func TestSphereMeshCoversViewport(t *testing.T) {
	for _, res := range [][2]int{{8, 4}, {12, 6}, {32, 16}} {
		v := SphereMesh(2, res[0], res[1])

		for y := -1.0; y <= 1.0; y += 0.125 {
			for x := -1.0; x <= 1.0; x += 0.125 {
				p := mgl32.Vec2{float32(x), float32(y)}
				if !covered(v, p) {
					t.Fatalf("SphereMesh(2, %d, %d) leaves %v uncovered", res[0], res[1], p)
				}
			}
		}
	}
}

func covered(v []float32, p mgl32.Vec2) bool {
	for i := 0; i < len(v); i += 9 {
		a := mgl32.Vec2{v[i], v[i+1]}
		b := mgl32.Vec2{v[i+3], v[i+4]}
		c := mgl32.Vec2{v[i+6], v[i+7]}
		if inside(a, b, c, p) {
			return true
		}
	}
	return false
}

func inside(a, b, c, p mgl32.Vec2) bool {
	cross := func(o, u, w mgl32.Vec2) float32 {
		return (u[0]-o[0])*(w[1]-o[1]) - (u[1]-o[1])*(w[0]-o[0])
	}
	const eps = 1e-5
	d1, d2, d3 := cross(a, b, p), cross(b, c, p), cross(c, a, p)
	neg := d1 < -eps || d2 < -eps || d3 < -eps
	pos := d1 > eps || d2 > eps || d3 > eps
	return !(neg && pos)
}

func TestQuadCoversViewport(t *testing.T) {
	v := QuadVertices
	a := mgl32.Vec2{v[0], v[1]}
	b := mgl32.Vec2{v[2], v[3]}
	c := mgl32.Vec2{v[4], v[5]}
	for _, p := range []mgl32.Vec2{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, {0, 0}} {
		if !inside(a, b, c, p) {
			t.Errorf("quad does not cover %v", p)
		}
	}
}

func TestFlipRows(t *testing.T) {
	for _, h := range []int{1, 2, 3} {
		img := image.NewNRGBA(image.Rect(0, 0, 2, h))
		for y := 0; y < h; y++ {
			img.SetNRGBA(0, y, color.NRGBA{R: uint8(y), A: 255})
		}

		FlipRows(img)

		for y := 0; y < h; y++ {
			if got := img.NRGBAAt(0, y).R; got != uint8(h-1-y) {
				t.Errorf("height %d row %d = %d, want %d", h, y, got, h-1-y)
			}
		}
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusString(gl.FRAMEBUFFER_COMPLETE); got != "complete" {
		t.Errorf("StatusString(complete) = %q", got)
	}
	if got := StatusString(0x1234); !strings.Contains(got, "0x1234") {
		t.Errorf("StatusString(0x1234) = %q", got)
	}

	err := &FramebufferError{Width: 4, Height: 2, Format: gl.RGBA8, Status: gl.FRAMEBUFFER_UNSUPPORTED}
	if !strings.Contains(err.Error(), "4x2") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestSeverityRank(t *testing.T) {
	if severityRank(gl.DEBUG_SEVERITY_HIGH) <= severityRank(gl.DEBUG_SEVERITY_MEDIUM) {
		t.Error("high should outrank medium")
	}
	if severityRank(gl.DEBUG_SEVERITY_NOTIFICATION) != 0 {
		t.Error("notifications should rank lowest")
	}
}
