package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"render-core/internal/resource"
)

// Node draws one mesh with one material. The resources are borrowed from the cache.
type Node struct {
	Name        string
	Mesh        string
	Material    string
	Texture     string // optional
	Position    mgl32.Vec3
	Scale       mgl32.Vec3
	Color       mgl32.Vec3
	VertexColor bool
	Spin        float32 // degrees per second about +Y
	Angle       float32 // degrees

	mesh     *resource.Resource
	material *resource.Resource
	texture  *resource.Resource
}

// Bound reports whether the node resolved its mesh and material.
func (n *Node) Bound() bool {
	return n.mesh != nil && n.material != nil
}

// Model returns translate * rotateY(Angle) * scale.
func (n *Node) Model() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl32.HomogRotate3DY(mgl32.DegToRad(n.Angle))
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

func (n *Node) bind(lookup Lookup) error {
	n.mesh, n.material, n.texture = nil, nil, nil
	mesh, err := resolve(lookup, n.Name, n.Mesh, resource.Mesh)
	if err != nil {
		return err
	}
	mat, err := resolve(lookup, n.Name, n.Material, resource.Material)
	if err != nil {
		return err
	}
	var tex *resource.Resource
	if n.Texture != "" {
		if tex, err = resolve(lookup, n.Name, n.Texture, resource.Texture); err != nil {
			return err
		}
	}
	n.mesh, n.material, n.texture = mesh, mat, tex
	return nil
}

func resolve(lookup Lookup, node, name string, want resource.Type) (*resource.Resource, error) {
	r, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if r.Type != want {
		return nil, &TypeError{Node: node, Resource: name, Want: want, Got: r.Type}
	}
	return r, nil
}
