// Package geometry synthesizes renderable meshes (cube, sphere, cylinder, torus) from
// parametric formulas. Every generator writes the same interleaved vertex layout and a
// counter-clockwise triangle list, ready to be handed to a GPU upload call.
package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Interleaved vertex layout: position (3), normal (3), color (3), texture coordinate (2).
const (
	PositionSize = 3
	NormalSize   = 3
	ColorSize    = 3
	TexCoordSize = 2

	// VertexSize is the number of float32 values per vertex.
	VertexSize = PositionSize + NormalSize + ColorSize + TexCoordSize

	// Stride is the size of one vertex in bytes.
	Stride = VertexSize * 4

	PositionOffset = 0
	NormalOffset   = PositionOffset + PositionSize
	ColorOffset    = NormalOffset + NormalSize
	TexCoordOffset = ColorOffset + ColorSize
)

// MaxVertices caps the vertex count of a single generated mesh. Larger requests fail with
// an AllocationError instead of attempting the allocation.
const MaxVertices = 1 << 24

// ErrInvalidParams is returned (wrapped) when a generator is called with out-of-range
// radii, heights or sample counts.
var ErrInvalidParams = errors.New("geometry: invalid parameters")

// AllocationError reports that the buffers for a shape could not be allocated.
type AllocationError struct {
	Shape    string
	Vertices int
	Indices  int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("geometry: cannot allocate %s buffers (%d vertices, %d indices)", e.Shape, e.Vertices, e.Indices)
}

// Vertex is one decoded vertex of a Mesh.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh is an indexed triangle mesh with an interleaved vertex buffer.
// Vertices holds VertexSize floats per vertex; Indices holds 3 indices per triangle.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// allocMesh allocates the buffers for numVertex vertices and numFace triangles.
func allocMesh(shape string, numVertex, numFace int) (*Mesh, error) {
	numIndex := numFace * 3
	if numVertex < 0 || numFace < 0 || numVertex > MaxVertices || numFace > 4*MaxVertices {
		return nil, &AllocationError{Shape: shape, Vertices: numVertex, Indices: numIndex}
	}
	return &Mesh{
		Vertices: make([]float32, numVertex*VertexSize),
		Indices:  make([]uint32, 0, numIndex),
	}, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexSize
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Vertex decodes vertex i.
func (m *Mesh) Vertex(i int) Vertex {
	v := m.Vertices[i*VertexSize : (i+1)*VertexSize]
	return Vertex{
		Position: mgl32.Vec3{v[PositionOffset], v[PositionOffset+1], v[PositionOffset+2]},
		Normal:   mgl32.Vec3{v[NormalOffset], v[NormalOffset+1], v[NormalOffset+2]},
		Color:    mgl32.Vec3{v[ColorOffset], v[ColorOffset+1], v[ColorOffset+2]},
		TexCoord: mgl32.Vec2{v[TexCoordOffset], v[TexCoordOffset+1]},
	}
}

// setVertex writes vertex i into the interleaved buffer.
func (m *Mesh) setVertex(i int, pos, norm, color mgl32.Vec3, uv mgl32.Vec2) {
	v := m.Vertices[i*VertexSize : (i+1)*VertexSize]
	copy(v[PositionOffset:], pos[:])
	copy(v[NormalOffset:], norm[:])
	copy(v[ColorOffset:], color[:])
	copy(v[TexCoordOffset:], uv[:])
}

func (m *Mesh) addTriangle(a, b, c int) {
	m.Indices = append(m.Indices, uint32(a), uint32(b), uint32(c))
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	n := m.VertexCount()
	if n == 0 {
		return min, max
	}
	min = m.Vertex(0).Position
	max = min
	for i := 1; i < n; i++ {
		p := m.Vertex(i).Position
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}
