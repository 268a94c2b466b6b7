package geometry

import "fmt"

// gridCount multiplies two sample counts, saturating just past MaxVertices so oversized
// requests surface as an AllocationError rather than an overflowed length.
func gridCount(a, b int) int {
	if a > MaxVertices || b > MaxVertices {
		return MaxVertices + 1
	}
	n := int64(a) * int64(b)
	if n > MaxVertices {
		return MaxVertices + 1
	}
	return int(n)
}

// SphereCounts returns the vertex and triangle counts of Sphere(_, thetaSamples, phiSamples).
func SphereCounts(thetaSamples, phiSamples int) (numVertex, numFace int) {
	return gridCount(thetaSamples, phiSamples), gridCount(thetaSamples, phiSamples-1) * 2
}

// CylinderCounts returns the vertex and triangle counts of Cylinder(_, _, _, linearSamples, circleSamples).
// linearSamples below 2 is clamped the same way Cylinder clamps it.
func CylinderCounts(linearSamples, circleSamples int) (numVertex, numFace int) {
	if linearSamples < 2 {
		linearSamples = 2
	}
	grid := gridCount(linearSamples, circleSamples)
	return grid + 2, grid*2 + circleSamples*2
}

// TorusCounts returns the vertex and triangle counts of Torus(_, _, loopSamples, circleSamples).
func TorusCounts(loopSamples, circleSamples int) (numVertex, numFace int) {
	grid := gridCount(loopSamples, circleSamples)
	return grid, grid * 2
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...)
}
