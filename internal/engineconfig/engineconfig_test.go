package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render-core/internal/gpu"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFile(filepath.Join(dir, "engine.yaml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 800
manifest: demo.yaml
asset_dirs: [data, shared]
show_fps: true
primitives:
  sphere_theta_samples: 24
`), 0o644))

	cfg, err := LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset nested field keeps default")
	assert.Equal(t, "render-core viewer", cfg.Window.Title)
	assert.Equal(t, "demo.yaml", cfg.Manifest)
	assert.Equal(t, []string{"data", "shared"}, cfg.AssetDirs)
	assert.True(t, cfg.ShowFPS)
	assert.Equal(t, ".vert", cfg.VertexExt)
	assert.Equal(t, 24, cfg.Primitives.SphereThetaSamples)
	assert.Equal(t, 45, cfg.Primitives.SpherePhiSamples)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [unclosed"), 0o644))
	cfg, err := LoadFile(path, "")
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(`
# comment
RENDERCORE_WIDTH=640
RENDERCORE_MANIFEST="from-file.yaml"
OTHER_KEY=ignored
RENDERCORE_SHOW_GRID=true
`), 0o644))
	t.Setenv("RENDERCORE_MANIFEST", "from-env.yaml")

	cfg, err := LoadFile(filepath.Join(dir, "absent.yaml"), envPath)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, "from-env.yaml", cfg.Manifest, "process environment wins over .env")
	assert.True(t, cfg.ShowGrid)
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("RENDERCORE_HEIGHT", "tall")
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), "")
	assert.ErrorContains(t, err, "RENDERCORE_HEIGHT")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.yaml")
	want := Default()
	want.ShowStats = true
	want.Window.Title = "saved"
	require.NoError(t, SaveFile(path, want))

	got, err := LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTextureParams(t *testing.T) {
	assert.Equal(t, gpu.DefaultTextureParams, Default().TextureParams())

	c := Default()
	c.Texture = Texture{Filter: "nearest", Wrap: "clamp", Mipmaps: true}
	p := c.TextureParams()
	assert.Equal(t, gpu.Nearest, p.MinFilter)
	assert.Equal(t, gpu.ClampToEdge, p.WrapT)
	assert.True(t, p.Mipmaps)
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"
	assert.Equal(t, "DEBUG", c.Level().String())
	c.LogLevel = "loud"
	assert.Equal(t, "INFO", c.Level().String())
}
