// Package gpu describes the small slice of a graphics API the resource layer needs:
// buffer upload, shader compilation and linking, texture creation and release.
// Handles are opaque uint32 names; 0 never identifies a live object.
package gpu

import "fmt"

// Stage is a programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// MeshBuffers names the vertex and index buffer objects holding one uploaded mesh.
// Backends that need a vertex array object may keep it alongside and key it by VertexBuffer.
type MeshBuffers struct {
	VertexBuffer uint32
	IndexBuffer  uint32
}

// Filter selects texture sampling.
type Filter int

const (
	Linear Filter = iota
	Nearest
)

func (f Filter) String() string {
	if f == Nearest {
		return "nearest"
	}
	return "linear"
}

// Wrap selects texture coordinate wrapping outside [0, 1].
type Wrap int

const (
	Repeat Wrap = iota
	ClampToEdge
	MirroredRepeat
)

func (w Wrap) String() string {
	switch w {
	case ClampToEdge:
		return "clamp"
	case MirroredRepeat:
		return "mirror"
	}
	return "repeat"
}

// TextureParams controls sampling of a created texture.
type TextureParams struct {
	MinFilter Filter
	MagFilter Filter
	WrapS     Wrap
	WrapT     Wrap
	Mipmaps   bool
}

// DefaultTextureParams is linear filtering with repeat wrapping on both axes.
var DefaultTextureParams = TextureParams{
	MinFilter: Linear,
	MagFilter: Linear,
	WrapS:     Repeat,
	WrapT:     Repeat,
}

// Device is the outbound graphics contract. All calls must happen on the thread that owns
// the graphics context. Failed calls return no live object.
type Device interface {
	// UploadMesh copies interleaved vertices (11 floats each) and triangle indices to the GPU.
	UploadMesh(vertices []float32, indices []uint32) (MeshBuffers, error)
	DeleteMesh(b MeshBuffers)

	// CompileShader compiles one stage. A rejected source yields a *DiagnosticError
	// carrying the driver's info log.
	CompileShader(stage Stage, source string) (uint32, error)
	DeleteShader(id uint32)

	// LinkProgram links a vertex and fragment object into a program. A failed link yields a
	// *DiagnosticError and the program object is already released.
	LinkProgram(vertex, fragment uint32) (uint32, error)
	DeleteProgram(id uint32)

	// CreateTexture uploads width*height RGBA8 pixels, rows top-down.
	CreateTexture(width, height int, rgba []byte, p TextureParams) (uint32, error)
	DeleteTexture(id uint32)
}

// DiagnosticError carries the verbatim info log of a failed compile or link.
type DiagnosticError struct {
	Op  string // "compile" or "link"
	Log string
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("gpu: %s failed: %s", e.Op, e.Log)
}
