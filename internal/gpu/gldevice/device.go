// Package gldevice implements gpu.Device on OpenGL 3.3 core, the context raylib creates.
// Construct it after the window (and with it the GL context) exists and call every method
// from that thread.
package gldevice

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"render-core/internal/geometry"
	"render-core/internal/gpu"
)

// Attribute locations bound by the vertex layout. Shaders declare them with layout(location = N).
const (
	PositionLocation = 0
	NormalLocation   = 1
	ColorLocation    = 2
	TexCoordLocation = 3
)

// Device is the OpenGL implementation of gpu.Device. It keeps one vertex array object per
// uploaded mesh, keyed by the vertex buffer name.
type Device struct {
	vaos map[uint32]uint32
}

// New loads the GL function pointers for the current context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldevice: init: %w", err)
	}
	return &Device{vaos: make(map[uint32]uint32)}, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) UploadMesh(vertices []float32, indices []uint32) (gpu.MeshBuffers, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return gpu.MeshBuffers{}, fmt.Errorf("gldevice: empty mesh (%d floats, %d indices)", len(vertices), len(indices))
	}
	clearErrors(gl.GetError)
	var vao uint32
	var b gpu.MeshBuffers
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &b.VertexBuffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	attrib(PositionLocation, geometry.PositionSize, geometry.PositionOffset)
	attrib(NormalLocation, geometry.NormalSize, geometry.NormalOffset)
	attrib(ColorLocation, geometry.ColorSize, geometry.ColorOffset)
	attrib(TexCoordLocation, geometry.TexCoordSize, geometry.TexCoordOffset)

	gl.GenBuffers(1, &b.IndexBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IndexBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteBuffers(1, &b.VertexBuffer)
		gl.DeleteBuffers(1, &b.IndexBuffer)
		gl.DeleteVertexArrays(1, &vao)
		return gpu.MeshBuffers{}, fmt.Errorf("gldevice: upload mesh: GL error 0x%x", e)
	}
	d.vaos[b.VertexBuffer] = vao
	return b, nil
}

func attrib(loc uint32, size, offset int) {
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointer(loc, int32(size), gl.FLOAT, false, geometry.Stride, gl.PtrOffset(offset*4))
}

func (d *Device) DeleteMesh(b gpu.MeshBuffers) {
	if vao, ok := d.vaos[b.VertexBuffer]; ok {
		gl.DeleteVertexArrays(1, &vao)
		delete(d.vaos, b.VertexBuffer)
	}
	gl.DeleteBuffers(1, &b.VertexBuffer)
	gl.DeleteBuffers(1, &b.IndexBuffer)
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, error) {
	typ := uint32(gl.VERTEX_SHADER)
	if stage == gpu.Fragment {
		typ = gl.FRAGMENT_SHADER
	}
	id := gl.CreateShader(typ)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csrc, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(id, logLen, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, &gpu.DiagnosticError{Op: "compile", Log: strings.TrimRight(log, "\x00")}
	}
	return id, nil
}

func (d *Device) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *Device) LinkProgram(vertex, fragment uint32) (uint32, error) {
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vertex)
	gl.AttachShader(prog, fragment)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, &gpu.DiagnosticError{Op: "link", Log: strings.TrimRight(log, "\x00")}
	}
	gl.DetachShader(prog, vertex)
	gl.DetachShader(prog, fragment)
	return prog, nil
}

func (d *Device) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (d *Device) CreateTexture(width, height int, rgba []byte, p gpu.TextureParams) (uint32, error) {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return 0, fmt.Errorf("gldevice: texture %dx%d with %d bytes", width, height, len(rgba))
	}
	clearErrors(gl.GetError)
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter(p))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(p.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(p.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(p.WrapT))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	if p.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("gldevice: create texture: GL error 0x%x", e)
	}
	return tex, nil
}

func (d *Device) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

// maxPendingErrors bounds clearErrors; a lost context can report errors forever.
const maxPendingErrors = 32

// clearErrors drains error flags raised by earlier calls (raylib's included) so the check
// after an upload only sees errors from that upload. It returns how many it discarded.
func clearErrors(getError func() uint32) int {
	n := 0
	for n < maxPendingErrors && getError() != gl.NO_ERROR {
		n++
	}
	return n
}

func filter(f gpu.Filter) int32 {
	if f == gpu.Nearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func minFilter(p gpu.TextureParams) int32 {
	if !p.Mipmaps {
		return filter(p.MinFilter)
	}
	if p.MinFilter == gpu.Nearest {
		return gl.NEAREST_MIPMAP_NEAREST
	}
	return gl.LINEAR_MIPMAP_LINEAR
}

func wrap(w gpu.Wrap) int32 {
	switch w {
	case gpu.ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.MirroredRepeat:
		return gl.MIRRORED_REPEAT
	}
	return gl.REPEAT
}

// Draw binds program, the mesh's vertex array and optional texture (0 for none), sets the
// model/view/projection uniforms and draws count indices. State is unbound afterwards so
// other renderers sharing the context are not disturbed.
func (d *Device) Draw(b gpu.MeshBuffers, count int, program, texture uint32, model, view, proj mgl32.Mat4) {
	vao, ok := d.vaos[b.VertexBuffer]
	if !ok || program == 0 {
		return
	}
	gl.UseProgram(program)
	setMat4(program, "model\x00", model)
	setMat4(program, "view\x00", view)
	setMat4(program, "projection\x00", proj)
	if loc := gl.GetUniformLocation(program, gl.Str("useTexture\x00")); loc >= 0 {
		var use int32
		if texture != 0 {
			use = 1
		}
		gl.Uniform1i(loc, use)
	}
	if texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		if loc := gl.GetUniformLocation(program, gl.Str("albedoMap\x00")); loc >= 0 {
			gl.Uniform1i(loc, 0)
		}
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.BindVertexArray(vao)
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.DEPTH_TEST)
	if texture != 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.UseProgram(0)
}

// SetVec3 sets a vec3 uniform if the program declares it.
func (d *Device) SetVec3(program uint32, name string, v mgl32.Vec3) {
	gl.UseProgram(program)
	if loc := gl.GetUniformLocation(program, gl.Str(name+"\x00")); loc >= 0 {
		gl.Uniform3fv(loc, 1, &v[0])
	}
	gl.UseProgram(0)
}

// SetFloat sets a float uniform if the program declares it.
func (d *Device) SetFloat(program uint32, name string, v float32) {
	gl.UseProgram(program)
	if loc := gl.GetUniformLocation(program, gl.Str(name+"\x00")); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
	gl.UseProgram(0)
}

// SetInt sets an int (or bool-as-int) uniform if the program declares it.
func (d *Device) SetInt(program uint32, name string, v int32) {
	gl.UseProgram(program)
	if loc := gl.GetUniformLocation(program, gl.Str(name+"\x00")); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
	gl.UseProgram(0)
}

func setMat4(program uint32, name string, m mgl32.Mat4) {
	if loc := gl.GetUniformLocation(program, gl.Str(name)); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

var _ gpu.Device = (*Device)(nil)
