package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

// Backend is a bound-state graphics API. Every call must come from the
// goroutine that owns the graphics context.
type Backend interface {
	Initialize(config metadata.BackendConfig) error
	Shutdown() error
	Viewport(width, height uint32)
	Clear(flags metadata.ClearFlag)

	CreateBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target metadata.BufferTarget, id uint32)
	// BufferData replaces the whole store of the buffer bound to target.
	BufferData(target metadata.BufferTarget, data []byte, usage metadata.BufferUsage)

	CreateVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	// VertexAttribPointer describes and enables one attribute of the bound array buffer.
	VertexAttribPointer(pointer metadata.AttributePointer, stride uint32)
	DrawArrays(mode metadata.DrawMode, count int32)
	// DrawElements draws count uint32 indices from the bound element buffer.
	DrawElements(mode metadata.DrawMode, count int32)

	CreateShader(stage metadata.ShaderStage) uint32
	// CompileShader returns false and the info log on failure.
	CompileShader(id uint32, source string) (bool, string)
	DeleteShader(id uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	// LinkProgram returns false and the info log when linking fails. A failed
	// validation is only reported, never a failure.
	LinkProgram(program uint32) (bool, string)
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	// GetUniformLocation returns -1 for names the linked program does not use.
	GetUniformLocation(program uint32, name string) int32

	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform1ui(location int32, v uint32)
	Uniform2fv(location int32, v mgl32.Vec2)
	Uniform3fv(location int32, v mgl32.Vec3)
	Uniform4fv(location int32, v mgl32.Vec4)
	Uniform2iv(location int32, v math.IVec2)
	Uniform3iv(location int32, v math.IVec3)
	Uniform4iv(location int32, v math.IVec4)
	Uniform2uiv(location int32, v math.UVec2)
	Uniform3uiv(location int32, v math.UVec3)
	Uniform4uiv(location int32, v math.UVec4)
	UniformMatrix2fv(location int32, v mgl32.Mat2)
	UniformMatrix3fv(location int32, v mgl32.Mat3)
	UniformMatrix4fv(location int32, v mgl32.Mat4)

	// CreateTexture returns a 2d texture with nearest filtering and clamped edges.
	CreateTexture() uint32
	DeleteTexture(id uint32)
	// TexImage2D (re)allocates the texture storage; nil pixels leaves it uninitialized.
	TexImage2D(id uint32, internal metadata.InternalFormat, format metadata.ColorFormat, width, height uint32, pixels []byte)
	ActiveTexture(unit uint32)
	BindTexture(id uint32)
	BindImageTexture(unit uint32, id uint32, internal metadata.InternalFormat, access metadata.ImageAccess)
	DispatchCompute(x, y, z uint32)
}
