package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Torus returns a torus lying in the XY plane: a circle of circleRadius swept around a loop of
// loopRadius. Both parameters wrap, so the surface is closed with no poles and no caps.
func Torus(loopRadius, circleRadius float32, loopSamples, circleSamples int) (*Mesh, error) {
	if !(loopRadius > 0) || !(circleRadius > 0) {
		return nil, invalid("torus radii %v, %v must be positive", loopRadius, circleRadius)
	}
	if loopSamples < 3 || circleSamples < 3 {
		return nil, invalid("torus needs at least 3x3 samples, got %dx%d", loopSamples, circleSamples)
	}
	numVertex, numFace := TorusCounts(loopSamples, circleSamples)
	m, err := allocMesh("torus", numVertex, numFace)
	if err != nil {
		return nil, err
	}

	for i := 0; i < loopSamples; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(loopSamples)
		sinT, cosT := math32.Sincos(theta)
		center := mgl32.Vec3{loopRadius * cosT, loopRadius * sinT, 0}
		for j := 0; j < circleSamples; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(circleSamples)
			sinP, cosP := math32.Sincos(phi)

			norm := mgl32.Vec3{cosT * cosP, sinT * cosP, sinP}
			u := float32(i) / float32(loopSamples)
			v := float32(j) / float32(circleSamples)
			m.setVertex(i*circleSamples+j, center.Add(norm.Mul(circleRadius)), norm, mgl32.Vec3{1 - u, u, v}, mgl32.Vec2{u, v})
		}
	}

	for i := 0; i < loopSamples; i++ {
		ni := (i + 1) % loopSamples
		for j := 0; j < circleSamples; j++ {
			nj := (j + 1) % circleSamples
			m.addTriangle(ni*circleSamples+j, i*circleSamples+nj, i*circleSamples+j)
			m.addTriangle(ni*circleSamples+j, ni*circleSamples+nj, i*circleSamples+nj)
		}
	}
	return m, nil
}
