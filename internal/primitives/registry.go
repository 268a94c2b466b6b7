package primitives

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"

	"render-core/internal/resource"
)

// ErrUnknownKind is returned by Ensure for a kind that is not a default primitive.
var ErrUnknownKind = errors.New("primitives: unknown kind")

// Cache names of the default primitive set.
const (
	CubeMesh     = "CubeMesh"
	SphereMesh   = "SphereMesh"
	CylinderMesh = "CylinderMesh"
	TorusMesh    = "TorusMesh"
	LitMaterial  = "LitMaterial"
)

// Kinds lists the accepted Ensure kinds in creation order.
var Kinds = []string{"cube", "sphere", "cylinder", "torus", "lit"}

// Registry creates the default primitives on first use so that GPU resources are allocated
// after the window/OpenGL context exists. Everything it creates lives in the manager's cache
// under the well-known names above.
type Registry struct {
	mgr      *resource.Manager
	defaults Defaults
	lighting Lighting
}

// NewRegistry returns a registry over mgr. Zero fields of d keep DefaultDefaults values.
func NewRegistry(mgr *resource.Manager, d Defaults) (*Registry, error) {
	base := DefaultDefaults()
	if err := copier.CopyWithOption(&base, &d, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("primitives: merge defaults: %w", err)
	}
	return &Registry{mgr: mgr, defaults: base, lighting: DefaultLighting()}, nil
}

// Defaults returns the effective primitive parameters.
func (r *Registry) Defaults() Defaults {
	return r.defaults
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so the lit material gets correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.lighting.ViewPos = viewPos
	r.lighting.LightDir = lightDir
	if l := r.lighting.LightDir.Len(); l > 0 {
		r.lighting.LightDir = r.lighting.LightDir.Mul(1 / l)
	}
}

// Lighting returns the current lit-material uniforms.
func (r *Registry) Lighting() Lighting {
	return r.lighting
}

// Name maps a kind ("cube", "sphere", "cylinder", "torus", "lit") to its cache name.
func Name(kind string) (string, error) {
	switch kind {
	case "cube":
		return CubeMesh, nil
	case "sphere":
		return SphereMesh, nil
	case "cylinder":
		return CylinderMesh, nil
	case "torus":
		return TorusMesh, nil
	case "lit":
		return LitMaterial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Ensure returns the cached resource for kind, creating it if needed.
func (r *Registry) Ensure(kind string) (*resource.Resource, error) {
	name, err := Name(kind)
	if err != nil {
		return nil, err
	}
	if res, err := r.mgr.GetResource(name); err == nil {
		return res, nil
	}
	d := r.defaults
	switch kind {
	case "cube":
		return r.mgr.CreateCube(name)
	case "sphere":
		return r.mgr.CreateSphere(name, d.SphereRadius, d.SphereThetaSamples, d.SpherePhiSamples)
	case "cylinder":
		return r.mgr.CreateCylinder(name, d.CylinderRadius, d.CylinderRadius, d.CylinderHeight,
			d.CylinderLinearSamples, d.CylinderCircleSamples)
	case "torus":
		return r.mgr.CreateTorus(name, d.TorusLoopRadius, d.TorusCircleRadius, d.TorusLoopSamples, d.TorusCircleSamples)
	default:
		return r.mgr.CreateMaterial(name, litVS, litFS)
	}
}

// EnsureAll creates every default primitive, stopping at the first failure.
func (r *Registry) EnsureAll() error {
	for _, k := range Kinds {
		if _, err := r.Ensure(k); err != nil {
			return err
		}
	}
	return nil
}

// Attribute locations match gldevice: 0 position, 1 normal, 2 color, 3 texcoord.
const (
	litVS = `#version 330 core
layout(location = 0) in vec3 vertexPosition;
layout(location = 1) in vec3 vertexNormal;
layout(location = 2) in vec3 vertexColor;
layout(location = 3) in vec2 vertexTexCoord;
uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;
out vec3 fragPosition;
out vec3 fragNormal;
out vec3 fragColor;
out vec2 fragTexCoord;
void main() {
  vec4 worldPos = model * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(transpose(inverse(model))) * vertexNormal;
  fragColor = vertexColor;
  fragTexCoord = vertexTexCoord;
  gl_Position = projection * view * worldPos;
}
`
	litFS = `#version 330 core
in vec3 fragPosition;
in vec3 fragNormal;
in vec3 fragColor;
in vec2 fragTexCoord;
uniform vec3 tint;
uniform int useTexture;
uniform int useVertexColor;
uniform sampler2D albedoMap;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 albedo = tint;
  if (useVertexColor == 1) {
    albedo = fragColor;
  }
  if (useTexture == 1) {
    albedo *= texture(albedoMap, fragTexCoord).rgb;
  }
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = albedo * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient * albedo;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, 1.0);
}
`
)

// Sources returns the built-in lit vertex and fragment sources, for writing them to disk.
func Sources() (vertex, fragment string) {
	return litVS, litFS
}
