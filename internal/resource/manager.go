package resource

import (
	"fmt"
	"log/slog"

	"render-core/internal/assets"
	"render-core/internal/geometry"
	"render-core/internal/gpu"
	"render-core/internal/shader"
)

// Manager creates meshes, materials and textures on a gpu.Device and registers them in a
// Cache. Every method must be called on the thread that owns the graphics context. A failed
// call leaves the cache unchanged and releases anything it created on the device.
type Manager struct {
	dev      gpu.Device
	cache    *Cache
	log      *slog.Logger
	resolver *assets.Resolver
	vertExt  string
	fragExt  string
	texture  gpu.TextureParams
	flip     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithResolver sets where material and texture paths are searched.
func WithResolver(r *assets.Resolver) Option {
	return func(m *Manager) {
		if r != nil {
			m.resolver = r
		}
	}
}

// WithShaderExtensions overrides the ".vert"/".frag" suffixes appended to material prefixes.
func WithShaderExtensions(vertex, fragment string) Option {
	return func(m *Manager) {
		m.vertExt, m.fragExt = vertex, fragment
	}
}

// WithTextureParams overrides sampling for loaded textures (default linear, repeat).
func WithTextureParams(p gpu.TextureParams) Option {
	return func(m *Manager) { m.texture = p }
}

// WithFlipTextures stores texture rows bottom-up so v = 0 samples the bottom of the image.
func WithFlipTextures(flip bool) Option {
	return func(m *Manager) { m.flip = flip }
}

// NewManager returns a Manager that uploads through dev and registers into cache.
func NewManager(dev gpu.Device, cache *Cache, opts ...Option) *Manager {
	m := &Manager{
		dev:      dev,
		cache:    cache,
		log:      slog.New(slog.DiscardHandler),
		resolver: &assets.Resolver{},
		vertExt:  ".vert",
		fragExt:  ".frag",
		texture:  gpu.DefaultTextureParams,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Cache returns the cache the manager registers into.
func (m *Manager) Cache() *Cache { return m.cache }

// Device returns the device resources are created on.
func (m *Manager) Device() gpu.Device { return m.dev }

// CreateCube registers a unit cube mesh under name.
func (m *Manager) CreateCube(name string) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	return m.addMesh(name, geometry.Cube())
}

// CreateSphere registers a UV sphere mesh under name.
func (m *Manager) CreateSphere(name string, radius float32, thetaSamples, phiSamples int) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	mesh, err := geometry.Sphere(radius, thetaSamples, phiSamples)
	if err != nil {
		return nil, fmt.Errorf("resource: create sphere %q: %w", name, err)
	}
	return m.addMesh(name, mesh)
}

// CreateCylinder registers a (possibly tapered) capped cylinder mesh under name.
func (m *Manager) CreateCylinder(name string, topRadius, bottomRadius, height float32, linearSamples, circleSamples int) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	mesh, err := geometry.Cylinder(topRadius, bottomRadius, height, linearSamples, circleSamples)
	if err != nil {
		return nil, fmt.Errorf("resource: create cylinder %q: %w", name, err)
	}
	return m.addMesh(name, mesh)
}

// CreateTorus registers a torus mesh under name.
func (m *Manager) CreateTorus(name string, loopRadius, circleRadius float32, loopSamples, circleSamples int) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	mesh, err := geometry.Torus(loopRadius, circleRadius, loopSamples, circleSamples)
	if err != nil {
		return nil, fmt.Errorf("resource: create torus %q: %w", name, err)
	}
	return m.addMesh(name, mesh)
}

// AddMesh uploads an already generated mesh and registers it under name.
func (m *Manager) AddMesh(name string, mesh *geometry.Mesh) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	return m.addMesh(name, mesh)
}

func (m *Manager) addMesh(name string, mesh *geometry.Mesh) (*Resource, error) {
	bufs, err := m.dev.UploadMesh(mesh.Vertices, mesh.Indices)
	if err != nil {
		return nil, fmt.Errorf("resource: upload mesh %q: %w", name, err)
	}
	r := &Resource{
		Type:        Mesh,
		Name:        name,
		Buffers:     bufs,
		Size:        len(mesh.Indices),
		VertexCount: mesh.VertexCount(),
	}
	if err := m.cache.Insert(r); err != nil {
		m.dev.DeleteMesh(bufs)
		return nil, err
	}
	m.log.Debug("mesh created", "name", name, "vertices", r.VertexCount, "indices", r.Size)
	// the CPU-side buffers go out of scope here and are left to the collector
	return r, nil
}

// CreateMaterial builds a program from in-memory sources and registers it under name.
func (m *Manager) CreateMaterial(name, vertexSrc, fragmentSrc string) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	prog, err := shader.Build(m.dev, shader.Sources{Vertex: vertexSrc, Fragment: fragmentSrc})
	if err != nil {
		return nil, fmt.Errorf("resource: material %q: %w", name, err)
	}
	return m.addProgram(name, prog, "")
}

// LoadResource loads a Material from prefix+".vert" and prefix+".frag", or a Texture from
// an image file, and registers it under name. Mesh is not loadable and returns
// ErrUnsupportedType.
func (m *Manager) LoadResource(t Type, name, path string) (*Resource, error) {
	switch t {
	case Material:
		return m.loadMaterial(name, path)
	case Texture:
		return m.loadTexture(name, path)
	}
	return nil, fmt.Errorf("resource: load %s %q: %w", t, name, ErrUnsupportedType)
}

func (m *Manager) loadMaterial(name, prefix string) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	prog, err := shader.BuildFiles(m.dev, m.resolver, prefix+m.vertExt, prefix+m.fragExt)
	if err != nil {
		m.log.Warn("material load failed", "name", name, "prefix", prefix, "err", err)
		return nil, fmt.Errorf("resource: material %q: %w", name, err)
	}
	return m.addProgram(name, prog, prefix)
}

func (m *Manager) addProgram(name string, prog uint32, source string) (*Resource, error) {
	r := &Resource{Type: Material, Name: name, Program: prog, Source: source}
	if err := m.cache.Insert(r); err != nil {
		m.dev.DeleteProgram(prog)
		return nil, err
	}
	m.log.Debug("material created", "name", name, "program", prog, "source", source)
	return r, nil
}

func (m *Manager) loadTexture(name, path string) (*Resource, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}
	img, err := m.resolver.DecodeImage(path, assets.DecodeOptions{FlipV: m.flip})
	if err != nil {
		m.log.Warn("texture load failed", "name", name, "path", path, "err", err)
		return nil, fmt.Errorf("resource: texture %q: %w", name, err)
	}
	tex, err := m.dev.CreateTexture(img.Width, img.Height, img.Pix, m.texture)
	if err != nil {
		return nil, fmt.Errorf("resource: texture %q: %w", name, err)
	}
	r := &Resource{Type: Texture, Name: name, Texture: tex, Width: img.Width, Height: img.Height, Source: path}
	if err := m.cache.Insert(r); err != nil {
		m.dev.DeleteTexture(tex)
		return nil, err
	}
	m.log.Debug("texture created", "name", name, "width", img.Width, "height", img.Height)
	return r, nil
}

// GetResource returns the cached resource named name or a *NotFoundError.
func (m *Manager) GetResource(name string) (*Resource, error) {
	return m.cache.Lookup(name)
}

// Close releases every GPU object held by the cache and empties it. Call once at teardown
// while the graphics context is still current.
func (m *Manager) Close() {
	released := m.cache.drain()
	for _, r := range released {
		switch r.Type {
		case Mesh:
			m.dev.DeleteMesh(r.Buffers)
		case Material:
			m.dev.DeleteProgram(r.Program)
		case Texture:
			m.dev.DeleteTexture(r.Texture)
		}
	}
	m.log.Debug("resources released", "count", len(released))
}

// checkFree rejects a name already in the cache before any GPU work is done.
func (m *Manager) checkFree(name string) error {
	if m.cache.Has(name) {
		return &DuplicateNameError{Name: name}
	}
	return nil
}
