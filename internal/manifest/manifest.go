// Package manifest reads the YAML description of resources to build at setup and applies
// it to a resource.Manager.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"render-core/internal/resource"
)

// Mesh describes one generated mesh. Shape selects which fields are used:
//
//	cube:     none
//	sphere:   radius, theta_samples, phi_samples
//	cylinder: top_radius, bottom_radius, height, linear_samples, circle_samples
//	torus:    loop_radius, circle_radius, loop_samples, circle_samples
type Mesh struct {
	Name          string  `yaml:"name"`
	Shape         string  `yaml:"shape"`
	Radius        float32 `yaml:"radius,omitempty"`
	ThetaSamples  int     `yaml:"theta_samples,omitempty"`
	PhiSamples    int     `yaml:"phi_samples,omitempty"`
	TopRadius     float32 `yaml:"top_radius,omitempty"`
	BottomRadius  float32 `yaml:"bottom_radius,omitempty"`
	Height        float32 `yaml:"height,omitempty"`
	LinearSamples int     `yaml:"linear_samples,omitempty"`
	CircleSamples int     `yaml:"circle_samples,omitempty"`
	LoopRadius    float32 `yaml:"loop_radius,omitempty"`
	CircleRadius  float32 `yaml:"circle_radius,omitempty"`
	LoopSamples   int     `yaml:"loop_samples,omitempty"`
}

// File names a material (path prefix) or texture (image file).
type File struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Node places a cached mesh in the viewer's scene, drawn with a cached material and
// optionally a cached texture.
type Node struct {
	Name        string     `yaml:"name"`
	Mesh        string     `yaml:"mesh"`
	Material    string     `yaml:"material"`
	Texture     string     `yaml:"texture,omitempty"`
	Position    [3]float32 `yaml:"position,omitempty"`
	Scale       [3]float32 `yaml:"scale,omitempty"`
	Color       [3]float32 `yaml:"color,omitempty"`
	VertexColor bool       `yaml:"vertex_color,omitempty"`
	Spin        float32    `yaml:"spin,omitempty"` // degrees per second about +Y
}

// Manifest lists resources in the order they are built: meshes, materials, textures.
// Nodes are not resources; they only reference them by name.
type Manifest struct {
	Meshes    []Mesh `yaml:"meshes"`
	Materials []File `yaml:"materials"`
	Textures  []File `yaml:"textures"`
	Nodes     []Node `yaml:"nodes"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest and checks that every entry is named and every shape is known.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for i, e := range m.Meshes {
		if e.Name == "" {
			return nil, fmt.Errorf("meshes[%d]: missing name", i)
		}
		switch e.Shape {
		case "cube", "sphere", "cylinder", "torus":
		default:
			return nil, fmt.Errorf("meshes[%d] %q: unknown shape %q", i, e.Name, e.Shape)
		}
	}
	for i, e := range m.Materials {
		if e.Name == "" || e.Path == "" {
			return nil, fmt.Errorf("materials[%d]: name and path are required", i)
		}
	}
	for i, e := range m.Textures {
		if e.Name == "" || e.Path == "" {
			return nil, fmt.Errorf("textures[%d]: name and path are required", i)
		}
	}
	for i, n := range m.Nodes {
		if n.Name == "" || n.Mesh == "" || n.Material == "" {
			return nil, fmt.Errorf("nodes[%d]: name, mesh and material are required", i)
		}
	}
	return &m, nil
}

// Len returns the number of resource entries.
func (m *Manifest) Len() int {
	return len(m.Meshes) + len(m.Materials) + len(m.Textures)
}

// Apply builds every entry through mgr in order and stops at the first error. Entries built
// before the failure stay registered.
func (m *Manifest) Apply(mgr *resource.Manager) error {
	for _, e := range m.Meshes {
		if err := buildMesh(mgr, e); err != nil {
			return err
		}
	}
	for _, e := range m.Materials {
		if _, err := mgr.LoadResource(resource.Material, e.Name, e.Path); err != nil {
			return err
		}
	}
	for _, e := range m.Textures {
		if _, err := mgr.LoadResource(resource.Texture, e.Name, e.Path); err != nil {
			return err
		}
	}
	return nil
}

func buildMesh(mgr *resource.Manager, e Mesh) error {
	var err error
	switch e.Shape {
	case "cube":
		_, err = mgr.CreateCube(e.Name)
	case "sphere":
		_, err = mgr.CreateSphere(e.Name, e.Radius, e.ThetaSamples, e.PhiSamples)
	case "cylinder":
		_, err = mgr.CreateCylinder(e.Name, e.TopRadius, e.BottomRadius, e.Height, e.LinearSamples, e.CircleSamples)
	case "torus":
		_, err = mgr.CreateTorus(e.Name, e.LoopRadius, e.CircleRadius, e.LoopSamples, e.CircleSamples)
	default:
		err = fmt.Errorf("manifest: mesh %q: unknown shape %q", e.Name, e.Shape)
	}
	return err
}
