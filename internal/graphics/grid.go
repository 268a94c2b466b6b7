package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 20
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// DrawGrid draws a grid on the XZ plane with major/minor lines and colored axes, using cam.
// Call inside BeginDrawing after the scene so the grid depth-tests against it.
func DrawGrid(cam rl.Camera3D) {
	rl.BeginMode3D(cam)
	defer rl.EndMode3D()

	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i++ {
		c := minor
		if i%gridMajorStep == 0 {
			c = major
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	// X red, Y green, Z blue
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), rl.NewColor(80, 80, 220, axisLineAlpha))
}
