// Package gputest provides an in-memory gpu.Device for tests and headless tools.
package gputest

import (
	"errors"
	"fmt"
	"strings"

	"render-core/internal/gpu"
)

// Mesh is an uploaded mesh as seen by the fake device.
type Mesh struct {
	Buffers  gpu.MeshBuffers
	Vertices []float32
	Indices  []uint32
}

// Texture is a created texture as seen by the fake device.
type Texture struct {
	Width, Height int
	Pix           []byte
	Params        gpu.TextureParams
}

// Device records every object it creates and releases. A shader source fails to compile
// when it contains "#error" or has no main function; the info log names the first line.
// Set FailLink, FailUpload or FailTexture to make the corresponding calls fail.
type Device struct {
	Meshes   map[uint32]Mesh // keyed by vertex buffer
	Shaders  map[uint32]gpu.Stage
	Programs map[uint32]bool
	Textures map[uint32]Texture

	FailLink    bool
	LinkLog     string
	FailUpload  error
	FailTexture error

	// Calls lists operations in order, e.g. "compile vertex", "delete shader 3".
	Calls []string

	next uint32
}

// New returns an empty fake device.
func New() *Device {
	return &Device{
		Meshes:   make(map[uint32]Mesh),
		Shaders:  make(map[uint32]gpu.Stage),
		Programs: make(map[uint32]bool),
		Textures: make(map[uint32]Texture),
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

// Live returns the number of objects created and not yet released.
func (d *Device) Live() int {
	return len(d.Meshes) + len(d.Shaders) + len(d.Programs) + len(d.Textures)
}

func (d *Device) UploadMesh(vertices []float32, indices []uint32) (gpu.MeshBuffers, error) {
	d.record("upload mesh")
	if d.FailUpload != nil {
		return gpu.MeshBuffers{}, d.FailUpload
	}
	if len(vertices) == 0 || len(indices) == 0 {
		return gpu.MeshBuffers{}, errors.New("gputest: empty mesh")
	}
	b := gpu.MeshBuffers{VertexBuffer: d.id(), IndexBuffer: d.id()}
	d.Meshes[b.VertexBuffer] = Mesh{
		Buffers:  b,
		Vertices: append([]float32(nil), vertices...),
		Indices:  append([]uint32(nil), indices...),
	}
	return b, nil
}

func (d *Device) DeleteMesh(b gpu.MeshBuffers) {
	d.record("delete mesh %d", b.VertexBuffer)
	delete(d.Meshes, b.VertexBuffer)
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, error) {
	d.record("compile %s", stage)
	if strings.Contains(source, "#error") || !strings.Contains(source, "main") {
		return 0, &gpu.DiagnosticError{Op: "compile", Log: "0:1(1): error: syntax error, unexpected token"}
	}
	id := d.id()
	d.Shaders[id] = stage
	return id, nil
}

func (d *Device) DeleteShader(id uint32) {
	d.record("delete shader %d", id)
	delete(d.Shaders, id)
}

func (d *Device) LinkProgram(vertex, fragment uint32) (uint32, error) {
	d.record("link")
	if s, ok := d.Shaders[vertex]; !ok || s != gpu.Vertex {
		return 0, &gpu.DiagnosticError{Op: "link", Log: fmt.Sprintf("no vertex shader %d attached", vertex)}
	}
	if s, ok := d.Shaders[fragment]; !ok || s != gpu.Fragment {
		return 0, &gpu.DiagnosticError{Op: "link", Log: fmt.Sprintf("no fragment shader %d attached", fragment)}
	}
	if d.FailLink {
		d.id() // the program object existed and was released
		log := d.LinkLog
		if log == "" {
			log = "error: varying mismatch between stages"
		}
		return 0, &gpu.DiagnosticError{Op: "link", Log: log}
	}
	id := d.id()
	d.Programs[id] = true
	return id, nil
}

func (d *Device) DeleteProgram(id uint32) {
	d.record("delete program %d", id)
	delete(d.Programs, id)
}

func (d *Device) CreateTexture(width, height int, rgba []byte, p gpu.TextureParams) (uint32, error) {
	d.record("create texture %dx%d", width, height)
	if d.FailTexture != nil {
		return 0, d.FailTexture
	}
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return 0, fmt.Errorf("gputest: bad texture %dx%d with %d bytes", width, height, len(rgba))
	}
	id := d.id()
	d.Textures[id] = Texture{Width: width, Height: height, Pix: append([]byte(nil), rgba...), Params: p}
	return id, nil
}

func (d *Device) DeleteTexture(id uint32) {
	d.record("delete texture %d", id)
	delete(d.Textures, id)
}

var _ gpu.Device = (*Device)(nil)
