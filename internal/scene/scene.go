// Package scene is a minimal consumer of the resource cache: nodes reference meshes,
// materials and textures by name, resolve them once after setup and draw them each frame.
package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"render-core/internal/gpu"
	"render-core/internal/manifest"
	"render-core/internal/primitives"
	"render-core/internal/resource"
)

// Camera is a perspective look-at camera.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32 // degrees
	Near     float32
	Far      float32
}

// DefaultCamera looks at the origin from (10,10,10), up (0,1,0), fovy 45°.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl32.Vec3{10, 10, 10},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     45,
		Near:     0.1,
		Far:      1000,
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for a viewport of the given aspect (width/height).
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, c.Near, c.Far)
}

// Renderer draws uploaded meshes. gldevice.Device implements it.
type Renderer interface {
	Draw(b gpu.MeshBuffers, count int, program, texture uint32, model, view, proj mgl32.Mat4)
	SetVec3(program uint32, name string, v mgl32.Vec3)
	SetFloat(program uint32, name string, v float32)
	SetInt(program uint32, name string, v int32)
}

// Lookup resolves a resource by name, e.g. (*resource.Manager).GetResource.
type Lookup func(name string) (*resource.Resource, error)

// TypeError reports a node referencing a resource of the wrong type.
type TypeError struct {
	Node     string
	Resource string
	Want     resource.Type
	Got      resource.Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("scene: node %q: %q is a %s, want %s", e.Node, e.Resource, e.Got, e.Want)
}

// Scene holds a camera and a flat list of nodes.
type Scene struct {
	Camera      Camera
	Nodes       []*Node
	GridVisible bool
	log         *slog.Logger
}

// New returns an empty scene with the default camera. A nil logger discards.
func New(log *slog.Logger) *Scene {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scene{Camera: DefaultCamera(), log: log}
}

// Add appends nodes built from manifest definitions. Zero scale means 1 and zero color a
// mid grey.
func (s *Scene) Add(defs ...manifest.Node) {
	for _, d := range defs {
		n := &Node{
			Name:        d.Name,
			Mesh:        d.Mesh,
			Material:    d.Material,
			Texture:     d.Texture,
			Position:    d.Position,
			Scale:       d.Scale,
			Color:       d.Color,
			VertexColor: d.VertexColor,
			Spin:        d.Spin,
		}
		if n.Scale == (mgl32.Vec3{}) {
			n.Scale = mgl32.Vec3{1, 1, 1}
		}
		if n.Color == (mgl32.Vec3{}) {
			n.Color = mgl32.Vec3{0.5, 0.5, 0.5}
		}
		s.Nodes = append(s.Nodes, n)
	}
}

// Bind resolves every node's resource names. Nodes that fail to resolve stay unbound and are
// skipped by Draw; the returned error joins every failure.
func (s *Scene) Bind(lookup Lookup) error {
	var errs []error
	for _, n := range s.Nodes {
		if err := n.bind(lookup); err != nil {
			s.log.Warn("node not bound", "node", n.Name, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update advances node animation by dt seconds. Angles stay in [0, 360).
func (s *Scene) Update(dt float32) {
	for _, n := range s.Nodes {
		n.Angle = math32.Mod(n.Angle+n.Spin*dt, 360)
		if n.Angle < 0 {
			n.Angle += 360
		}
	}
}

// Draw renders every bound node. Lighting uniforms are set once per program per frame.
func (s *Scene) Draw(r Renderer, light primitives.Lighting, aspect float32) {
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)
	lit := make(map[uint32]bool)
	for _, n := range s.Nodes {
		if !n.Bound() {
			continue
		}
		prog := n.material.Program
		if !lit[prog] {
			setLighting(r, prog, light)
			lit[prog] = true
		}
		r.SetVec3(prog, "tint", n.Color)
		var vc int32
		if n.VertexColor {
			vc = 1
		}
		r.SetInt(prog, "useVertexColor", vc)
		var tex uint32
		if n.texture != nil {
			tex = n.texture.Texture
		}
		r.Draw(n.mesh.Buffers, n.mesh.Size, prog, tex, n.Model(), view, proj)
	}
}

func setLighting(r Renderer, prog uint32, l primitives.Lighting) {
	r.SetVec3(prog, "viewPos", l.ViewPos)
	r.SetVec3(prog, "lightDir", l.LightDir)
	r.SetVec3(prog, "lightColor", l.LightColor)
	r.SetVec3(prog, "ambient", l.Ambient)
	r.SetFloat(prog, "lightIntensity", l.Intensity)
	r.SetFloat(prog, "specularPower", l.SpecularPower)
	r.SetFloat(prog, "specularStrength", l.SpecularStrength)
}
