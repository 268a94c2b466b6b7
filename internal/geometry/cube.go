package geometry

import "github.com/go-gl/mathgl/mgl32"

// cubeFace is one side of the unit cube: its outward normal and four corners listed
// counter-clockwise as seen from outside.
type cubeFace struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}

var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
}

// Per-corner debug colors and texture coordinates, shared by every face.
var (
	cubeCornerColors = [4]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 1}}
	cubeCornerUVs    = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
)

// Cube returns a unit cube centered at the origin: 24 vertices (4 per face, so each face
// keeps its own flat normal) and 12 triangles. Scale it with a transform, not here.
func Cube() *Mesh {
	m := &Mesh{
		Vertices: make([]float32, 24*VertexSize),
		Indices:  make([]uint32, 0, 36),
	}
	for f, face := range cubeFaces {
		base := f * 4
		for c := 0; c < 4; c++ {
			m.setVertex(base+c, face.corners[c], face.normal, cubeCornerColors[c], cubeCornerUVs[c])
		}
		m.addTriangle(base, base+1, base+2)
		m.addTriangle(base, base+2, base+3)
	}
	return m
}
