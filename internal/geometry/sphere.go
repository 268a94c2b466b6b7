package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere returns a UV sphere of the given radius sampled on a thetaSamples x phiSamples grid.
//
// Vertex (i, j) has normal (cos θ sin φ, sin θ sin φ, -cos φ) with θ = 2π·i/(thetaSamples-1)
// and φ = π·j/(phiSamples-1), so z runs from -1 to +1 as φ goes from 0 to π. The θ loop is
// closed by wrapping i; the poles are not stitched, every pole vertex keeps its own copy.
func Sphere(radius float32, thetaSamples, phiSamples int) (*Mesh, error) {
	if !(radius > 0) {
		return nil, invalid("sphere radius %v must be positive", radius)
	}
	if thetaSamples < 2 || phiSamples < 2 {
		return nil, invalid("sphere needs at least 2x2 samples, got %dx%d", thetaSamples, phiSamples)
	}
	numVertex, numFace := SphereCounts(thetaSamples, phiSamples)
	m, err := allocMesh("sphere", numVertex, numFace)
	if err != nil {
		return nil, err
	}

	thetaDen := float32(thetaSamples - 1)
	phiDen := float32(phiSamples - 1)
	for i := 0; i < thetaSamples; i++ {
		theta := 2 * math32.Pi * float32(i) / thetaDen
		if i == thetaSamples-1 {
			// θ = 2π; pinned so the closing meridian matches meridian 0 exactly.
			theta = 0
		}
		sinT, cosT := math32.Sincos(theta)
		for j := 0; j < phiSamples; j++ {
			phi := math32.Pi * float32(j) / phiDen
			sinP, cosP := math32.Sincos(phi)

			norm := mgl32.Vec3{cosT * sinP, sinT * sinP, -cosP}
			color := mgl32.Vec3{float32(i) / float32(thetaSamples), 1 - float32(j)/float32(phiSamples), float32(j) / float32(phiSamples)}
			uv := mgl32.Vec2{float32(i) / thetaDen, 1 - float32(j)/phiDen}
			m.setVertex(i*phiSamples+j, norm.Mul(radius), norm, color, uv)
		}
	}

	for i := 0; i < thetaSamples; i++ {
		next := (i + 1) % thetaSamples
		for j := 0; j < phiSamples-1; j++ {
			m.addTriangle(next*phiSamples+j, i*phiSamples+j+1, i*phiSamples+j)
			m.addTriangle(next*phiSamples+j, next*phiSamples+j+1, i*phiSamples+j+1)
		}
	}
	return m, nil
}
