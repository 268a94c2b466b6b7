package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cylinder returns a capped cylinder (or truncated cone) along the Y axis, centered at the
// origin. Ring i of linearSamples sits at y = height*(i/(linearSamples-1) - 0.5) with its
// radius interpolated from bottomRadius to topRadius. linearSamples below 2 is clamped to 2.
//
// The side grid comes first (ring-major), then the bottom and top cap centers. Side
// triangles take ring i+1 modulo linearSamples, so the last band closes the wall loop at the
// seam; it faces inward and sits behind the caps. Each cap is a fan of circleSamples
// triangles around its center vertex.
func Cylinder(topRadius, bottomRadius, height float32, linearSamples, circleSamples int) (*Mesh, error) {
	if !(height > 0) {
		return nil, invalid("cylinder height %v must be positive", height)
	}
	if topRadius < 0 || bottomRadius < 0 || (topRadius == 0 && bottomRadius == 0) || topRadius != topRadius || bottomRadius != bottomRadius {
		return nil, invalid("cylinder radii %v, %v must be non-negative and not both zero", topRadius, bottomRadius)
	}
	if circleSamples < 3 {
		return nil, invalid("cylinder needs at least 3 circle samples, got %d", circleSamples)
	}
	if linearSamples < 2 {
		linearSamples = 2
	}
	numVertex, numFace := CylinderCounts(linearSamples, circleSamples)
	m, err := allocMesh("cylinder", numVertex, numFace)
	if err != nil {
		return nil, err
	}

	// The slope term tilts side normals for a cone; it is zero for a right cylinder.
	slope := (bottomRadius - topRadius) / height
	last := float32(linearSamples - 1)
	for i := 0; i < linearSamples; i++ {
		t := float32(i) / last
		radius := bottomRadius + (topRadius-bottomRadius)*t
		y := height * (t - 0.5)
		for j := 0; j < circleSamples; j++ {
			s := float32(j) / float32(circleSamples)
			sinT, cosT := math32.Sincos(2 * math32.Pi * s)

			pos := mgl32.Vec3{radius * cosT, y, radius * sinT}
			norm := mgl32.Vec3{cosT, slope, sinT}.Normalize()
			color := mgl32.Vec3{1 - float32(i)/float32(linearSamples), float32(i) / float32(linearSamples), s}
			m.setVertex(i*circleSamples+j, pos, norm, color, mgl32.Vec2{s, t})
		}
	}

	bottom := linearSamples * circleSamples
	top := bottom + 1
	m.setVertex(bottom, mgl32.Vec3{0, -height / 2, 0}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0})
	m.setVertex(top, mgl32.Vec3{0, height / 2, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 1})

	for i := 0; i < linearSamples; i++ {
		ni := (i + 1) % linearSamples
		for j := 0; j < circleSamples; j++ {
			nj := (j + 1) % circleSamples
			m.addTriangle(ni*circleSamples+j, i*circleSamples+nj, i*circleSamples+j)
			m.addTriangle(ni*circleSamples+j, ni*circleSamples+nj, i*circleSamples+nj)
		}
	}

	topRing := (linearSamples - 1) * circleSamples
	for j := 0; j < circleSamples; j++ {
		nj := (j + 1) % circleSamples
		m.addTriangle(bottom, j, nj)
		m.addTriangle(top, topRing+nj, topRing+j)
	}
	return m, nil
}
