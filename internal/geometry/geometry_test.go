package geometry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireIndexed checks the count and range invariants shared by every generator.
func requireIndexed(t *testing.T, m *Mesh, numVertex, numFace int) {
	t.Helper()
	require.Equal(t, numVertex, m.VertexCount())
	require.Len(t, m.Vertices, numVertex*VertexSize)
	require.Len(t, m.Indices, numFace*3)
	for k, idx := range m.Indices {
		require.Less(t, int(idx), numVertex, "index at %d", k)
	}
}

// assertOutward checks that triangles [from, to) wind counter-clockwise around the average
// normal of their vertices. Degenerate triangles (collapsed at a pole or seam) are skipped;
// the cutoff scales with the mesh so float32 slivers of a large mesh count as degenerate.
func assertOutward(t *testing.T, m *Mesh, from, to int) {
	t.Helper()
	lo, hi := m.Bounds()
	extent := hi.Sub(lo).Len()
	cutoff := 1e-6 * max(extent*extent, 1)
	for f := from; f < to; f++ {
		a := m.Vertex(int(m.Indices[f*3]))
		b := m.Vertex(int(m.Indices[f*3+1]))
		c := m.Vertex(int(m.Indices[f*3+2]))
		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if face.Len() < cutoff {
			continue
		}
		avg := a.Normal.Add(b.Normal).Add(c.Normal)
		assert.Greater(t, face.Dot(avg), float32(0), "triangle %d winds inward", f)
	}
}

func TestCube(t *testing.T) {
	m := Cube()
	requireIndexed(t, m, 24, 12)
	require.NoError(t, Validate(m))
	assertOutward(t, m, 0, 12)

	min, max := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, min)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, max)

	// Faces do not share vertices: every vertex is used by exactly one face.
	owner := map[uint32]int{}
	for f := 0; f < 12; f++ {
		for k := 0; k < 3; k++ {
			idx := m.Indices[f*3+k]
			if prev, ok := owner[idx]; ok {
				assert.Equal(t, prev, f/2, "vertex %d shared across faces", idx)
			}
			owner[idx] = f / 2
		}
	}
}

func TestSphereScenario(t *testing.T) {
	m, err := Sphere(1, 8, 8)
	require.NoError(t, err)
	requireIndexed(t, m, 64, 112)
	assert.Len(t, m.Indices, 336)
}

func TestSphereCountsAndNormals(t *testing.T) {
	for theta := 2; theta <= 24; theta += 3 {
		for phi := 2; phi <= 24; phi += 5 {
			t.Run(fmt.Sprintf("%dx%d", theta, phi), func(t *testing.T) {
				m, err := Sphere(2.5, theta, phi)
				require.NoError(t, err)
				requireIndexed(t, m, theta*phi, theta*(phi-1)*2)
				require.NoError(t, Validate(m))
				assertOutward(t, m, 0, m.TriangleCount())

				for i := 0; i < m.VertexCount(); i++ {
					v := m.Vertex(i)
					assert.InDelta(t, 2.5, v.Position.Len(), 1e-4)
					assert.InDelta(t, 1, v.Normal.Len(), NormalTolerance)
				}
			})
		}
	}
}

func TestSphereSeamCoincides(t *testing.T) {
	for _, theta := range []int{2, 7, 23, 90} {
		m, err := Sphere(2.5, theta, 12)
		require.NoError(t, err)
		last := (theta - 1) * 12
		for j := 0; j < 12; j++ {
			first, closing := m.Vertex(j), m.Vertex(last+j)
			assert.Equal(t, first.Position, closing.Position, "%d samples, ring %d", theta, j)
			assert.Equal(t, first.Normal, closing.Normal, "%d samples, ring %d", theta, j)
			assert.Equal(t, float32(0), first.TexCoord.X())
			assert.Equal(t, float32(1), closing.TexCoord.X())
		}

		// seam-band triangles have zero area
		for f := (theta - 1) * 11 * 2; f < theta*11*2; f++ {
			a := m.Vertex(int(m.Indices[f*3])).Position
			b := m.Vertex(int(m.Indices[f*3+1])).Position
			c := m.Vertex(int(m.Indices[f*3+2])).Position
			assert.Zero(t, b.Sub(a).Cross(c.Sub(a)).Len(), "triangle %d", f)
		}
	}
}

func TestSphereLayout(t *testing.T) {
	m, err := Sphere(1, 5, 3)
	require.NoError(t, err)

	// φ = 0 is the -Z pole, φ = π the +Z pole.
	assert.InDelta(t, -1, m.Vertex(0).Normal.Z(), 1e-6)
	assert.InDelta(t, 1, m.Vertex(2).Normal.Z(), 1e-6)

	// texcoords follow (i/(θs-1), 1 - j/(φs-1))
	v := m.Vertex(3*3 + 1)
	assert.InDelta(t, 0.75, v.TexCoord.X(), 1e-6)
	assert.InDelta(t, 0.5, v.TexCoord.Y(), 1e-6)
}

func TestTorusCountsAndNormals(t *testing.T) {
	for loop := 3; loop <= 30; loop += 9 {
		for circle := 3; circle <= 20; circle += 4 {
			t.Run(fmt.Sprintf("%dx%d", loop, circle), func(t *testing.T) {
				m, err := Torus(1, 0.25, loop, circle)
				require.NoError(t, err)
				requireIndexed(t, m, loop*circle, loop*circle*2)
				require.NoError(t, Validate(m))
				assertOutward(t, m, 0, m.TriangleCount())

				for i := 0; i < m.VertexCount(); i++ {
					v := m.Vertex(i)
					assert.InDelta(t, 1, v.Normal.Len(), NormalTolerance)
					// every vertex is circleRadius away from the loop
					center := mgl32.Vec3{v.Position.X(), v.Position.Y(), 0}.Normalize()
					assert.InDelta(t, 0.25, v.Position.Sub(center).Len(), 1e-4)
				}
			})
		}
	}
}

func TestTorusClosed(t *testing.T) {
	m, err := Torus(1, 0.3, 6, 4)
	require.NoError(t, err)

	// closed topology: every vertex is referenced by exactly 6 triangle corners
	uses := make([]int, m.VertexCount())
	for _, idx := range m.Indices {
		uses[idx]++
	}
	for i, n := range uses {
		assert.Equal(t, 6, n, "vertex %d", i)
	}
}

func TestCylinderCounts(t *testing.T) {
	for linear := 2; linear <= 10; linear += 2 {
		for circle := 3; circle <= 33; circle += 10 {
			t.Run(fmt.Sprintf("%dx%d", linear, circle), func(t *testing.T) {
				m, err := Cylinder(0.5, 1, 2, linear, circle)
				require.NoError(t, err)
				requireIndexed(t, m, linear*circle+2, linear*circle*2+circle*2)
				require.NoError(t, Validate(m))

				side := (linear - 1) * circle * 2
				seam := linear * circle * 2
				assertOutward(t, m, 0, side)
				assertOutward(t, m, seam, m.TriangleCount())
			})
		}
	}
}

func TestCylinderClampsLinearSamples(t *testing.T) {
	m, err := Cylinder(1, 1, 1, 0, 8)
	require.NoError(t, err)
	requireIndexed(t, m, 2*8+2, 2*8*2+8*2)
}

func TestRightCylinder(t *testing.T) {
	const linear, circle = 5, 12
	m, err := Cylinder(0.75, 0.75, 3, linear, circle)
	require.NoError(t, err)

	for i := 0; i < linear; i++ {
		y := m.Vertex(i * circle).Position.Y()
		for j := 0; j < circle; j++ {
			v := m.Vertex(i*circle + j)
			r := mgl32.Vec2{v.Position.X(), v.Position.Z()}.Len()
			assert.InDelta(t, 0.75, r, 1e-5, "ring %d sample %d", i, j)
			assert.InDelta(t, y, v.Position.Y(), 1e-6)
			assert.InDelta(t, 0, v.Normal.Y(), 1e-6)
		}
	}

	min, max := m.Bounds()
	assert.InDelta(t, -1.5, min.Y(), 1e-6)
	assert.InDelta(t, 1.5, max.Y(), 1e-6)
}

func TestCylinderCaps(t *testing.T) {
	const linear, circle = 3, 6
	m, err := Cylinder(0.5, 1, 2, linear, circle)
	require.NoError(t, err)

	bottom := m.Vertex(linear * circle)
	top := m.Vertex(linear*circle + 1)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, bottom.Position)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, bottom.Normal)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, top.Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, top.Normal)

	// every cap triangle is a fan from one of the two centers
	for f := linear * circle * 2; f < m.TriangleCount(); f++ {
		tri := m.Indices[f*3 : f*3+3]
		assert.True(t, tri[0] == uint32(linear*circle) || tri[0] == uint32(linear*circle+1), "face %d", f)
	}

	// cone side normals are unit length and tilt upward when the top is narrower
	assert.Greater(t, m.Vertex(0).Normal.Y(), float32(0))
}

func TestInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		gen  func() (*Mesh, error)
	}{
		{"sphere radius", func() (*Mesh, error) { return Sphere(0, 8, 8) }},
		{"sphere theta", func() (*Mesh, error) { return Sphere(1, 1, 8) }},
		{"sphere phi", func() (*Mesh, error) { return Sphere(1, 8, 1) }},
		{"cylinder height", func() (*Mesh, error) { return Cylinder(1, 1, 0, 2, 8) }},
		{"cylinder radii", func() (*Mesh, error) { return Cylinder(0, 0, 1, 2, 8) }},
		{"cylinder negative radius", func() (*Mesh, error) { return Cylinder(-1, 1, 1, 2, 8) }},
		{"cylinder circle", func() (*Mesh, error) { return Cylinder(1, 1, 1, 2, 2) }},
		{"torus radius", func() (*Mesh, error) { return Torus(1, 0, 8, 8) }},
		{"torus samples", func() (*Mesh, error) { return Torus(1, 0.2, 2, 8) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.gen()
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestAllocationGuard(t *testing.T) {
	_, err := Sphere(1, 1<<20, 1<<20)
	var allocErr *AllocationError
	require.True(t, errors.As(err, &allocErr), "got %v", err)
	assert.Equal(t, "sphere", allocErr.Shape)

	_, err = Torus(1, 0.5, MaxVertices, 4)
	assert.True(t, errors.As(err, &allocErr))
}

func TestValidateRejects(t *testing.T) {
	m := Cube()
	m.Indices = append(m.Indices, 0, 1)
	assert.Error(t, Validate(m))

	m = Cube()
	m.Indices[5] = 24
	assert.Error(t, Validate(m))

	m = Cube()
	m.Vertices[NormalOffset] = 2
	assert.Error(t, Validate(m))
}

func TestCountsMatchGenerators(t *testing.T) {
	s, _ := Sphere(1, 7, 9)
	nv, nf := SphereCounts(7, 9)
	assert.Equal(t, nv, s.VertexCount())
	assert.Equal(t, nf, s.TriangleCount())

	c, _ := Cylinder(1, 1, 1, 4, 9)
	nv, nf = CylinderCounts(4, 9)
	assert.Equal(t, nv, c.VertexCount())
	assert.Equal(t, nf, c.TriangleCount())

	tr, _ := Torus(1, 0.1, 5, 6)
	nv, nf = TorusCounts(5, 6)
	assert.Equal(t, nv, tr.VertexCount())
	assert.Equal(t, nf, tr.TriangleCount())
}
