package gldevice

import (
	"math"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Mesh is vertex data uploaded to a vertex array, drawn as a proxy for the
// fragment shader. The position attribute lives at location 0.
type Mesh struct {
	vao   uint32
	vbo   uint32
	mode  uint32
	count int32
}

// NewMesh uploads vertices with size components each.
func NewMesh(vertices []float32, size int32, mode uint32) *Mesh {
	m := &Mesh{
		mode:  mode,
		count: int32(len(vertices)) / size,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, size, gl.FLOAT, false, size*4, 0)

	gl.BindVertexArray(0)
	return m
}

// Quad returns a single triangle covering the whole viewport.
func Quad() *Mesh {
	return NewMesh(QuadVertices, 2, gl.TRIANGLES)
}

// QuadVertices is a triangle whose clipped area is the [-1, 1] square.
var QuadVertices = []float32{
	-3, -2,
	0, 3,
	3, -2,
}

// Sphere returns a bounding sphere of radius 2 around the view.
func Sphere(slices, stacks int) *Mesh {
	return NewMesh(SphereMesh(2, slices, stacks), 3, gl.TRIANGLES)
}

// SphereMesh triangulates a UV sphere. Slices below 8 are raised to 8, and
// stacks below 4 to 4, so the silhouette of a radius 2 sphere still covers
// the viewport.
func SphereMesh(radius float32, slices, stacks int) []float32 {
	slices = max(slices, 8)
	stacks = max(stacks, 4)

	point := func(i, j int) [3]float32 {
		theta := math.Pi * float64(j) / float64(stacks)
		phi := 2 * math.Pi * float64(i) / float64(slices)
		s, c := math.Sincos(theta)
		sp, cp := math.Sincos(phi)
		return [3]float32{
			radius * float32(s*cp),
			radius * float32(s*sp),
			radius * float32(c),
		}
	}

	vertices := make([]float32, 0, slices*stacks*2*3*3)
	emit := func(ps ...[3]float32) {
		for _, p := range ps {
			vertices = append(vertices, p[0], p[1], p[2])
		}
	}

	for j := 0; j < stacks; j++ {
		for i := 0; i < slices; i++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i, j+1), point(i+1, j+1)
			if j != 0 {
				emit(a, b, d)
			}
			if j != stacks-1 {
				emit(a, d, c)
			}
		}
	}
	return vertices
}

// Draw draws the mesh with the program in use.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(m.mode, 0, m.count)
}

// Count returns the number of vertices drawn.
func (m *Mesh) Count() int32 {
	return m.count
}

func (m *Mesh) Delete() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao, m.vbo = 0, 0
}
