package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

// OpenGLRenderer drives an OpenGL 4.3 core context. The context must be
// current on the calling goroutine before Initialize.
type OpenGLRenderer struct {
	config      metadata.BackendConfig
	initialized bool
}

var _ renderer.Backend = (*OpenGLRenderer)(nil)

func New() *OpenGLRenderer {
	return &OpenGLRenderer{}
}

// Register makes the OpenGL backend available from factory.
func Register(factory renderer.BackendFactory) {
	factory[renderer.OpenGL] = func() renderer.Backend {
		return New()
	}
}

func (r *OpenGLRenderer) Initialize(config metadata.BackendConfig) error {
	if err := gl.Init(); err != nil {
		core.LogError("failed to initialize OpenGL: %s", err)
		return err
	}
	r.config = config

	core.LogInfo("OpenGL version %s, renderer %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	if config.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	}
	if config.CullFace {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PointSize(config.PointSize)
	// rows of RGB8 images are tightly packed
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	c := config.ClearColour
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(config.Width), int32(config.Height))

	r.initialized = true
	return nil
}

func (r *OpenGLRenderer) Shutdown() error {
	if !r.initialized {
		return nil
	}
	gl.UseProgram(0)
	gl.BindVertexArray(0)
	r.initialized = false
	return nil
}

func (r *OpenGLRenderer) Viewport(width, height uint32) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *OpenGLRenderer) Clear(flags metadata.ClearFlag) {
	if mask := clearMask(flags); mask != 0 {
		gl.Clear(mask)
	}
}

func (r *OpenGLRenderer) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (r *OpenGLRenderer) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (r *OpenGLRenderer) BindBuffer(target metadata.BufferTarget, id uint32) {
	gl.BindBuffer(bufferTarget(target), id)
}

func (r *OpenGLRenderer) BufferData(target metadata.BufferTarget, data []byte, usage metadata.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data), gl.Ptr(data), bufferUsage(usage))
}

func (r *OpenGLRenderer) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (r *OpenGLRenderer) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (r *OpenGLRenderer) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (r *OpenGLRenderer) VertexAttribPointer(pointer metadata.AttributePointer, stride uint32) {
	xtype := attributeType(pointer.Type)
	offset := gl.PtrOffset(int(pointer.Offset))
	if pointer.Type != metadata.AttributeTypeFloat32 && !pointer.Normalized {
		gl.VertexAttribIPointer(pointer.Index, pointer.Components, xtype, int32(stride), offset)
	} else {
		gl.VertexAttribPointer(pointer.Index, pointer.Components, xtype, pointer.Normalized, int32(stride), offset)
	}
	gl.EnableVertexAttribArray(pointer.Index)
}

func (r *OpenGLRenderer) DrawArrays(mode metadata.DrawMode, count int32) {
	gl.DrawArrays(drawMode(mode), 0, count)
}

func (r *OpenGLRenderer) DrawElements(mode metadata.DrawMode, count int32) {
	gl.DrawElements(drawMode(mode), count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (r *OpenGLRenderer) CreateShader(stage metadata.ShaderStage) uint32 {
	return gl.CreateShader(shaderStage(stage))
}

func (r *OpenGLRenderer) CompileShader(id uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (r *OpenGLRenderer) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (r *OpenGLRenderer) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (r *OpenGLRenderer) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (r *OpenGLRenderer) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (r *OpenGLRenderer) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)
	if ok, log := programStatus(program, gl.LINK_STATUS); !ok {
		return false, log
	}
	// validation runs against the current state, which is not the draw state yet
	gl.ValidateProgram(program)
	if ok, log := programStatus(program, gl.VALIDATE_STATUS); !ok {
		core.LogWarn("program %d did not validate: %s", program, log)
	}
	return true, ""
}

func programStatus(program uint32, pname uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, pname, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (r *OpenGLRenderer) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (r *OpenGLRenderer) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (r *OpenGLRenderer) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (r *OpenGLRenderer) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (r *OpenGLRenderer) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (r *OpenGLRenderer) Uniform1ui(location int32, v uint32) {
	gl.Uniform1ui(location, v)
}

func (r *OpenGLRenderer) Uniform2fv(location int32, v mgl32.Vec2) {
	gl.Uniform2fv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform3fv(location int32, v mgl32.Vec3) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform4fv(location int32, v mgl32.Vec4) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform2iv(location int32, v math.IVec2) {
	gl.Uniform2iv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform3iv(location int32, v math.IVec3) {
	gl.Uniform3iv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform4iv(location int32, v math.IVec4) {
	gl.Uniform4iv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform2uiv(location int32, v math.UVec2) {
	gl.Uniform2uiv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform3uiv(location int32, v math.UVec3) {
	gl.Uniform3uiv(location, 1, &v[0])
}

func (r *OpenGLRenderer) Uniform4uiv(location int32, v math.UVec4) {
	gl.Uniform4uiv(location, 1, &v[0])
}

func (r *OpenGLRenderer) UniformMatrix2fv(location int32, v mgl32.Mat2) {
	gl.UniformMatrix2fv(location, 1, false, &v[0])
}

func (r *OpenGLRenderer) UniformMatrix3fv(location int32, v mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &v[0])
}

func (r *OpenGLRenderer) UniformMatrix4fv(location int32, v mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &v[0])
}

func (r *OpenGLRenderer) CreateTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	return id
}

func (r *OpenGLRenderer) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (r *OpenGLRenderer) TexImage2D(id uint32, internal metadata.InternalFormat, format metadata.ColorFormat, width, height uint32, pixels []byte) {
	gl.BindTexture(gl.TEXTURE_2D, id)
	if len(pixels) == 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat(internal), int32(width), int32(height), 0, pixelFormat(format), pixelType(internal), nil)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat(internal), int32(width), int32(height), 0, pixelFormat(format), pixelType(internal), gl.Ptr(pixels))
}

func (r *OpenGLRenderer) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (r *OpenGLRenderer) BindTexture(id uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (r *OpenGLRenderer) BindImageTexture(unit uint32, id uint32, internal metadata.InternalFormat, access metadata.ImageAccess) {
	gl.BindImageTexture(unit, id, 0, false, 0, imageAccess(access), uint32(internalFormat(internal)))
}

func (r *OpenGLRenderer) DispatchCompute(x, y, z uint32) {
	gl.DispatchCompute(x, y, z)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)
}
