package main

import (
	"fmt"
	"os"
	"runtime"

	"render-core/internal/assets"
	"render-core/internal/debug"
	"render-core/internal/engineconfig"
	"render-core/internal/gpu/gldevice"
	"render-core/internal/graphics"
	"render-core/internal/logger"
	"render-core/internal/manifest"
	"render-core/internal/primitives"
	"render-core/internal/resource"
	"render-core/internal/scene"
)

func init() {
	// GL calls must come from the thread that created the context.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "viewer:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgErr := engineconfig.Load()
	lines := logger.New(cfg.LogFile)
	log := lines.Slog(cfg.Level())
	if cfgErr != nil {
		log.Warn("config not loaded, using defaults", "err", cfgErr)
	}

	var (
		dev   *gldevice.Device
		mgr   *resource.Manager
		prims *primitives.Registry
		orbit *graphics.OrbitCamera
	)
	cache := resource.NewCache()
	scn := scene.New(log)
	scn.GridVisible = cfg.ShowGrid
	dbg := debug.New(cache)
	dbg.ShowFPS = cfg.ShowFPS
	dbg.ShowStats = cfg.ShowStats

	setup := func() error {
		var err error
		if dev, err = gldevice.New(); err != nil {
			return err
		}
		log.Info("gl context ready", "version", dev.Version())
		mgr = resource.NewManager(dev, cache,
			resource.WithLogger(log),
			resource.WithResolver(assets.NewResolver(cfg.AssetDirs...)),
			resource.WithShaderExtensions(cfg.VertexExt, cfg.FragExt),
			resource.WithTextureParams(cfg.TextureParams()),
			resource.WithFlipTextures(cfg.Texture.FlipV),
		)
		if prims, err = primitives.NewRegistry(mgr, cfg.Primitives); err != nil {
			return err
		}
		if err := prims.EnsureAll(); err != nil {
			return err
		}

		if cfg.Manifest != "" {
			m, err := manifest.Load(cfg.Manifest)
			if err != nil {
				return err
			}
			if err := m.Apply(mgr); err != nil {
				return err
			}
			scn.Add(m.Nodes...)
			log.Info("manifest applied", "path", cfg.Manifest, "resources", m.Len(), "nodes", len(m.Nodes))
		}
		if len(scn.Nodes) == 0 {
			scn.Add(defaultNodes()...)
		}
		if err := scn.Bind(mgr.GetResource); err != nil {
			log.Warn("some nodes will not be drawn", "err", err)
		}
		orbit = graphics.NewOrbitCamera(scn.Camera)
		return nil
	}

	update := func(dt float32) {
		orbit.Update(&scn.Camera)
		prims.SetView(scn.Camera.Position, prims.Lighting().LightDir)
		scn.Update(dt)
	}

	draw := func() {
		scn.Draw(dev, prims.Lighting(), graphics.Aspect())
		if scn.GridVisible {
			graphics.DrawGrid(orbit.Raylib())
		}
		dbg.Draw()
	}

	teardown := func() {
		if mgr != nil {
			mgr.Close()
		}
	}

	return graphics.Run(graphics.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		TargetFPS: cfg.Window.TargetFPS,
	}, setup, update, draw, teardown)
}

// defaultNodes lays out one of each default primitive along X.
func defaultNodes() []manifest.Node {
	return []manifest.Node{
		{Name: "Cube", Mesh: primitives.CubeMesh, Material: primitives.LitMaterial, Position: [3]float32{-3, 0.5, 0}, VertexColor: true},
		{Name: "Sphere", Mesh: primitives.SphereMesh, Material: primitives.LitMaterial, Position: [3]float32{-1, 0.5, 0}, Color: [3]float32{0.2, 0.4, 0.9}},
		{Name: "Cylinder", Mesh: primitives.CylinderMesh, Material: primitives.LitMaterial, Position: [3]float32{1, 0.5, 0}, Color: [3]float32{0.9, 0.3, 0.2}},
		{Name: "Torus", Mesh: primitives.TorusMesh, Material: primitives.LitMaterial, Position: [3]float32{3, 0.5, 0}, Color: [3]float32{0.9, 0.8, 0.2}, Spin: 30},
	}
}
