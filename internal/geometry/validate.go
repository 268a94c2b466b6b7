package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
)

// NormalTolerance is the allowed deviation of a normal's length from 1.
const NormalTolerance = 1e-5

// Validate checks the structural invariants every generated mesh must satisfy: whole
// vertices in the buffer, whole triangles in the index list, every index in range and every
// normal of unit length.
func Validate(m *Mesh) error {
	if len(m.Vertices)%VertexSize != 0 {
		return fmt.Errorf("geometry: vertex buffer length %d is not a multiple of %d", len(m.Vertices), VertexSize)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("geometry: index count %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for k, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("geometry: index %d at position %d out of range (%d vertices)", idx, k, n)
		}
	}
	for i := 0; i < int(n); i++ {
		l := m.Vertex(i).Normal.Len()
		if math32.Abs(l-1) > NormalTolerance {
			return fmt.Errorf("geometry: normal of vertex %d has length %v", i, l)
		}
	}
	return nil
}
