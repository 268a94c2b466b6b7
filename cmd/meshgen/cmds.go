package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"render-core/internal/assets"
	"render-core/internal/commands"
	"render-core/internal/geometry"
	"render-core/internal/gpu/gputest"
	"render-core/internal/manifest"
	"render-core/internal/primitives"
	"render-core/internal/resource"
)

// shapeFlags are the generator parameters shared by gen and counts.
type shapeFlags struct {
	shape         string
	radius        float64
	top, bottom   float64
	height        float64
	thetaSamples  int
	phiSamples    int
	linearSamples int
	circleSamples int
	loopRadius    float64
	circleRadius  float64
	loopSamples   int
}

func (s *shapeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.shape, "shape", "cube", "cube, sphere, cylinder or torus")
	fs.Float64Var(&s.radius, "radius", 0.5, "sphere radius")
	fs.IntVar(&s.thetaSamples, "theta", 32, "sphere samples around the axis")
	fs.IntVar(&s.phiSamples, "phi", 16, "sphere samples pole to pole")
	fs.Float64Var(&s.top, "top", 0.5, "cylinder top radius")
	fs.Float64Var(&s.bottom, "bottom", 0.5, "cylinder bottom radius")
	fs.Float64Var(&s.height, "height", 1, "cylinder height")
	fs.IntVar(&s.linearSamples, "linear", 2, "cylinder rings along the axis")
	fs.IntVar(&s.circleSamples, "circle", 32, "cylinder/torus samples around a circle")
	fs.Float64Var(&s.loopRadius, "loop-radius", 0.6, "torus loop radius")
	fs.Float64Var(&s.circleRadius, "circle-radius", 0.2, "torus tube radius")
	fs.IntVar(&s.loopSamples, "loop", 32, "torus samples around the loop")
}

func (s *shapeFlags) generate() (*geometry.Mesh, error) {
	switch s.shape {
	case "cube":
		return geometry.Cube(), nil
	case "sphere":
		return geometry.Sphere(float32(s.radius), s.thetaSamples, s.phiSamples)
	case "cylinder":
		return geometry.Cylinder(float32(s.top), float32(s.bottom), float32(s.height), s.linearSamples, s.circleSamples)
	case "torus":
		return geometry.Torus(float32(s.loopRadius), float32(s.circleRadius), s.loopSamples, s.circleSamples)
	}
	return nil, fmt.Errorf("unknown shape %q", s.shape)
}

func (s *shapeFlags) counts() (vertices, faces int, err error) {
	switch s.shape {
	case "cube":
		return 24, 12, nil
	case "sphere":
		vertices, faces = geometry.SphereCounts(s.thetaSamples, s.phiSamples)
	case "cylinder":
		vertices, faces = geometry.CylinderCounts(s.linearSamples, s.circleSamples)
	case "torus":
		vertices, faces = geometry.TorusCounts(s.loopSamples, s.circleSamples)
	default:
		return 0, 0, fmt.Errorf("unknown shape %q", s.shape)
	}
	return vertices, faces, nil
}

func registerGen(reg *commands.Registry, out io.Writer) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var sf shapeFlags
	sf.register(fs)
	validate := fs.Bool("validate", true, "check index range and unit normals")
	dump := fs.Int("dump", 0, "print the first N vertices")
	reg.Register("gen", "generate a mesh and report counts and bounds", fs, func() error {
		m, err := sf.generate()
		if err != nil {
			return err
		}
		lo, hi := m.Bounds()
		fmt.Fprintf(out, "%s: %d vertices, %d triangles, %d indices, %d bytes\n",
			sf.shape, m.VertexCount(), m.TriangleCount(), len(m.Indices), len(m.Vertices)*4+len(m.Indices)*4)
		fmt.Fprintf(out, "bounds: min %v max %v\n", lo, hi)
		if *validate {
			if err := geometry.Validate(m); err != nil {
				return err
			}
			fmt.Fprintln(out, "valid")
		}
		for i := 0; i < *dump && i < m.VertexCount(); i++ {
			v := m.Vertex(i)
			fmt.Fprintf(out, "%4d pos %v n %v c %v uv %v\n", i, v.Position, v.Normal, v.Color, v.TexCoord)
		}
		return nil
	})
}

func registerCounts(reg *commands.Registry, out io.Writer) {
	fs := flag.NewFlagSet("counts", flag.ExitOnError)
	var sf shapeFlags
	sf.register(fs)
	reg.Register("counts", "print vertex and face counts without generating", fs, func() error {
		v, f, err := sf.counts()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d vertices, %d faces, %d indices\n", sf.shape, v, f, f*3)
		return nil
	})
}

func registerManifest(reg *commands.Registry, out io.Writer) {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	path := fs.String("file", "assets/manifest.yaml", "manifest to check")
	dir := fs.String("assets", "assets", "asset directory")
	verbose := fs.Bool("v", false, "log each resource")
	reg.Register("manifest", "build a manifest against an in-memory device and list the cache", fs, func() error {
		m, err := manifest.Load(*path)
		if err != nil {
			return err
		}
		level := slog.LevelWarn
		if *verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		cache := resource.NewCache()
		mgr := resource.NewManager(gputest.New(), cache,
			resource.WithLogger(log),
			resource.WithResolver(assets.NewResolver(*dir)))
		defer mgr.Close()

		applyErr := m.Apply(mgr)
		cache.Each(func(r *resource.Resource) {
			fmt.Fprintln(out, r)
		})
		if applyErr != nil {
			return applyErr
		}
		s := cache.Stats()
		fmt.Fprintf(out, "%d meshes, %d materials, %d textures\n", s.Meshes, s.Materials, s.Textures)
		return nil
	})
}

func registerShaders(reg *commands.Registry, out io.Writer) {
	fs := flag.NewFlagSet("shaders", flag.ExitOnError)
	prefix := fs.String("out", "assets/shaders/lit", "path prefix for the .vert and .frag files")
	reg.Register("shaders", "write the built-in lit material sources", fs, func() error {
		vs, frag := primitives.Sources()
		if err := os.MkdirAll(filepath.Dir(*prefix), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(*prefix+".vert", []byte(vs), 0644); err != nil {
			return err
		}
		if err := os.WriteFile(*prefix+".frag", []byte(frag), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s.vert and %s.frag\n", *prefix, *prefix)
		return nil
	})
}
