// Package resource owns the name-addressed cache of GPU resources (meshes, shader programs,
// textures) and the Manager that creates and loads them.
package resource

import (
	"fmt"

	"render-core/internal/gpu"
)

// Type is the closed set of resource kinds.
type Type int

const (
	Mesh Type = iota
	Material
	Texture
)

func (t Type) String() string {
	switch t {
	case Mesh:
		return "Mesh"
	case Material:
		return "Material"
	case Texture:
		return "Texture"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps "mesh", "material" or "texture" (any case of the first letter) to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "mesh", "Mesh":
		return Mesh, nil
	case "material", "Material":
		return Material, nil
	case "texture", "Texture":
		return Texture, nil
	}
	return 0, fmt.Errorf("resource: unknown type %q", s)
}

// Resource is one cached GPU object. Only the handle fields matching Type are set.
// Resources are immutable once inserted; callers borrow them and must not release handles.
type Resource struct {
	Type Type
	Name string

	Buffers gpu.MeshBuffers // Mesh
	Program uint32          // Material
	Texture uint32          // Texture

	// Size is the index count of a Mesh, 0 otherwise.
	Size        int
	VertexCount int
	Width       int
	Height      int
	// Source is the path a Material or Texture was loaded from.
	Source string
}

func (r *Resource) String() string {
	switch r.Type {
	case Mesh:
		return fmt.Sprintf("%s %q (vbo %d, ibo %d, %d indices)", r.Type, r.Name, r.Buffers.VertexBuffer, r.Buffers.IndexBuffer, r.Size)
	case Material:
		return fmt.Sprintf("%s %q (program %d)", r.Type, r.Name, r.Program)
	default:
		return fmt.Sprintf("%s %q (texture %d, %dx%d)", r.Type, r.Name, r.Texture, r.Width, r.Height)
	}
}
