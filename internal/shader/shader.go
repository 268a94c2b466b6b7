// Package shader builds linked GPU programs from a vertex and a fragment source.
package shader

import (
	"errors"
	"fmt"

	"render-core/internal/assets"
	"render-core/internal/gpu"
)

// CompileError reports a stage the driver rejected. Log is the driver's diagnostic verbatim.
type CompileError struct {
	Stage gpu.Stage
	Path  string // source file, empty for in-memory sources
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("shader: compile %s stage (%s): %s", e.Stage, e.Path, e.Log)
	}
	return fmt.Sprintf("shader: compile %s stage: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link after both stages compiled.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "shader: link: " + e.Log
}

// Sources are the two stage sources of a program. The paths are only used in errors.
type Sources struct {
	Vertex       string
	Fragment     string
	VertexPath   string
	FragmentPath string
}

// Build compiles both stages and links them. Stage objects are always released before
// Build returns; on failure no GPU object survives.
func Build(dev gpu.Device, src Sources) (uint32, error) {
	vs, err := compile(dev, gpu.Vertex, src.Vertex, src.VertexPath)
	if err != nil {
		return 0, err
	}
	fs, err := compile(dev, gpu.Fragment, src.Fragment, src.FragmentPath)
	if err != nil {
		dev.DeleteShader(vs)
		return 0, err
	}
	prog, err := dev.LinkProgram(vs, fs)
	dev.DeleteShader(vs)
	dev.DeleteShader(fs)
	if err != nil {
		return 0, &LinkError{Log: diagnostic(err)}
	}
	return prog, nil
}

// BuildFiles reads the vertex then the fragment source through r and builds them.
// A missing or unreadable file returns the *assets.FileError before any GPU work.
func BuildFiles(dev gpu.Device, r *assets.Resolver, vertexPath, fragmentPath string) (uint32, error) {
	vsrc, err := r.ReadText(vertexPath)
	if err != nil {
		return 0, err
	}
	fsrc, err := r.ReadText(fragmentPath)
	if err != nil {
		return 0, err
	}
	return Build(dev, Sources{
		Vertex:       vsrc,
		Fragment:     fsrc,
		VertexPath:   vertexPath,
		FragmentPath: fragmentPath,
	})
}

func compile(dev gpu.Device, stage gpu.Stage, source, path string) (uint32, error) {
	id, err := dev.CompileShader(stage, source)
	if err != nil {
		return 0, &CompileError{Stage: stage, Path: path, Log: diagnostic(err)}
	}
	return id, nil
}

// diagnostic extracts the driver log, falling back to the error text for non-diagnostic
// device failures.
func diagnostic(err error) string {
	var de *gpu.DiagnosticError
	if errors.As(err, &de) {
		return de.Log
	}
	return err.Error()
}
