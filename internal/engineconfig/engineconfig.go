package engineconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"render-core/internal/gpu"
	"render-core/internal/primitives"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.yaml"

// EnvFilePath is the optional KEY=VALUE file read for RENDERCORE_* overrides.
const EnvFilePath = ".env"

// Window holds the viewer window settings.
type Window struct {
	Width     int    `yaml:"width,omitempty"`
	Height    int    `yaml:"height,omitempty"`
	Title     string `yaml:"title,omitempty"`
	TargetFPS int    `yaml:"target_fps,omitempty"`
}

// Texture controls how loaded textures are sampled.
type Texture struct {
	Filter  string `yaml:"filter,omitempty"` // "linear" or "nearest"
	Wrap    string `yaml:"wrap,omitempty"`   // "repeat", "clamp" or "mirror"
	Mipmaps bool   `yaml:"mipmaps,omitempty"`
	FlipV   bool   `yaml:"flip_v,omitempty"`
}

// Config holds everything the viewer and CLI read at startup. Persisted across runs.
type Config struct {
	Window     Window              `yaml:"window"`
	AssetDirs  []string            `yaml:"asset_dirs,omitempty"`
	Manifest   string              `yaml:"manifest,omitempty"`
	VertexExt  string              `yaml:"vertex_ext,omitempty"`
	FragExt    string              `yaml:"fragment_ext,omitempty"`
	Texture    Texture             `yaml:"texture"`
	LogLevel   string              `yaml:"log_level,omitempty"`
	LogFile    string              `yaml:"log_file,omitempty"`
	ShowFPS    bool                `yaml:"show_fps,omitempty"`
	ShowStats  bool                `yaml:"show_stats,omitempty"`
	ShowGrid   bool                `yaml:"show_grid,omitempty"`
	Primitives primitives.Defaults `yaml:"primitives"`
}

// Default returns the built-in configuration (overlays off).
func Default() Config {
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "render-core viewer",
			TargetFPS: 60,
		},
		AssetDirs:  []string{"assets"},
		Manifest:   "assets/manifest.yaml",
		VertexExt:  ".vert",
		FragExt:    ".frag",
		Texture:    Texture{Filter: "linear", Wrap: "repeat"},
		LogLevel:   "info",
		LogFile:    "logs/render.txt",
		Primitives: primitives.DefaultDefaults(),
	}
}

// Load reads config/engine.yaml and .env from the working directory. See LoadFile.
func Load() (Config, error) {
	return LoadFile(EngineConfigPath, EnvFilePath)
}

// LoadFile overlays the YAML file at path on Default() (fields left empty keep their default)
// and then applies RENDERCORE_* overrides from envPath and the process environment, the
// process winning. A missing config or env file is not an error.
func LoadFile(path, envPath string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("engineconfig: %w", err)
	default:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Default(), fmt.Errorf("engineconfig: parse %s: %w", path, err)
		}
		if err := copier.CopyWithOption(&cfg, &file, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
			return Default(), fmt.Errorf("engineconfig: merge %s: %w", path, err)
		}
		if len(file.AssetDirs) > 0 {
			cfg.AssetDirs = file.AssetDirs
		}
	}

	vars, err := readEnvFile(envPath)
	if err != nil {
		return cfg, fmt.Errorf("engineconfig: %w", err)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, envPrefix) {
			vars[k] = v
		}
	}
	if err := applyEnv(&cfg, vars); err != nil {
		return cfg, fmt.Errorf("engineconfig: %w", err)
	}
	return cfg, nil
}

// Save writes c to config/engine.yaml, creating the config directory if needed.
func Save(c Config) error {
	return SaveFile(EngineConfigPath, c)
}

// SaveFile writes c as YAML to path.
func SaveFile(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// TextureParams converts the texture section to device sampling parameters.
// Unknown names fall back to linear filtering and repeat wrapping.
func (c Config) TextureParams() gpu.TextureParams {
	p := gpu.DefaultTextureParams
	if c.Texture.Filter == "nearest" {
		p.MinFilter, p.MagFilter = gpu.Nearest, gpu.Nearest
	}
	switch c.Texture.Wrap {
	case "clamp":
		p.WrapS, p.WrapT = gpu.ClampToEdge, gpu.ClampToEdge
	case "mirror":
		p.WrapS, p.WrapT = gpu.MirroredRepeat, gpu.MirroredRepeat
	}
	p.Mipmaps = c.Texture.Mipmaps
	return p
}

// Level parses LogLevel ("debug", "info", "warn", "error"); anything else is info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
