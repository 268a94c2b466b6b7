package primitives

import "github.com/go-gl/mathgl/mgl32"

// Defaults is the YAML shape of the default primitive set (config/engine.yaml "primitives").
// Zero fields keep the built-in value.
type Defaults struct {
	SphereRadius       float32 `yaml:"sphere_radius,omitempty"`
	SphereThetaSamples int     `yaml:"sphere_theta_samples,omitempty"`
	SpherePhiSamples   int     `yaml:"sphere_phi_samples,omitempty"`

	CylinderRadius        float32 `yaml:"cylinder_radius,omitempty"`
	CylinderHeight        float32 `yaml:"cylinder_height,omitempty"`
	CylinderLinearSamples int     `yaml:"cylinder_linear_samples,omitempty"`
	CylinderCircleSamples int     `yaml:"cylinder_circle_samples,omitempty"`

	TorusLoopRadius    float32 `yaml:"torus_loop_radius,omitempty"`
	TorusCircleRadius  float32 `yaml:"torus_circle_radius,omitempty"`
	TorusLoopSamples   int     `yaml:"torus_loop_samples,omitempty"`
	TorusCircleSamples int     `yaml:"torus_circle_samples,omitempty"`
}

// DefaultDefaults sizes every primitive to fit a unit cube: diameter 1, height 1.
func DefaultDefaults() Defaults {
	return Defaults{
		SphereRadius:       0.5,
		SphereThetaSamples: 90,
		SpherePhiSamples:   45,

		CylinderRadius:        0.5,
		CylinderHeight:        1,
		CylinderLinearSamples: 2,
		CylinderCircleSamples: 90,

		TorusLoopRadius:    0.35,
		TorusCircleRadius:  0.15,
		TorusLoopSamples:   90,
		TorusCircleSamples: 30,
	}
}

// Lighting holds the uniforms of the built-in lit material.
type Lighting struct {
	ViewPos          mgl32.Vec3
	LightDir         mgl32.Vec3 // direction to the light, normalized
	LightColor       mgl32.Vec3
	Ambient          mgl32.Vec3
	Intensity        float32
	SpecularPower    float32
	SpecularStrength float32
}

// DefaultLighting is a warm-white key light from above-right with a dim blue ambient.
func DefaultLighting() Lighting {
	return Lighting{
		LightDir:         mgl32.Vec3{0.5, 1, 0.5}.Normalize(),
		LightColor:       mgl32.Vec3{1.0, 0.98, 0.95},
		Ambient:          mgl32.Vec3{0.2, 0.22, 0.26},
		Intensity:        0.75,
		SpecularPower:    48,
		SpecularStrength: 0.35,
	}
}
