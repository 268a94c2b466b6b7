package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"render-core/internal/scene"
)

// OrbitCamera drives a scene.Camera with raylib's orbital camera controller.
type OrbitCamera struct {
	cam rl.Camera3D
}

// NewOrbitCamera starts from c.
func NewOrbitCamera(c scene.Camera) *OrbitCamera {
	return &OrbitCamera{cam: toRaylib(c)}
}

// Update runs once per frame: the camera orbits its target, mouse wheel zooms.
// The result is copied back into c, keeping its clip planes.
func (o *OrbitCamera) Update(c *scene.Camera) {
	rl.UpdateCamera(&o.cam, rl.CameraOrbital)
	c.Position = [3]float32{o.cam.Position.X, o.cam.Position.Y, o.cam.Position.Z}
	c.Target = [3]float32{o.cam.Target.X, o.cam.Target.Y, o.cam.Target.Z}
	c.Up = [3]float32{o.cam.Up.X, o.cam.Up.Y, o.cam.Up.Z}
}

// Raylib returns the controller's camera, for BeginMode3D.
func (o *OrbitCamera) Raylib() rl.Camera3D {
	return o.cam
}

func toRaylib(c scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position.X(), c.Position.Y(), c.Position.Z()),
		Target:     rl.NewVector3(c.Target.X(), c.Target.Y(), c.Target.Z()),
		Up:         rl.NewVector3(c.Up.X(), c.Up.Y(), c.Up.Z()),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
