package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

func bufferTarget(t metadata.BufferTarget) uint32 {
	if t == metadata.BufferTargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u metadata.BufferUsage) uint32 {
	switch u {
	case metadata.BufferUsageDynamic:
		return gl.DYNAMIC_DRAW
	case metadata.BufferUsageStream:
		return gl.STREAM_DRAW
	}
	return gl.STATIC_DRAW
}

func drawMode(m metadata.DrawMode) uint32 {
	switch m {
	case metadata.DrawModeLines:
		return gl.LINES
	case metadata.DrawModeTriangles:
		return gl.TRIANGLES
	}
	return gl.POINTS
}

func shaderStage(s metadata.ShaderStage) uint32 {
	switch s {
	case metadata.ShaderStageFragment:
		return gl.FRAGMENT_SHADER
	case metadata.ShaderStageCompute:
		return gl.COMPUTE_SHADER
	}
	return gl.VERTEX_SHADER
}

func attributeType(t metadata.AttributeType) uint32 {
	switch t {
	case metadata.AttributeTypeInt32:
		return gl.INT
	case metadata.AttributeTypeUint32:
		return gl.UNSIGNED_INT
	case metadata.AttributeTypeInt16:
		return gl.SHORT
	case metadata.AttributeTypeUint16:
		return gl.UNSIGNED_SHORT
	case metadata.AttributeTypeInt8:
		return gl.BYTE
	case metadata.AttributeTypeUint8:
		return gl.UNSIGNED_BYTE
	}
	return gl.FLOAT
}

func clearMask(flags metadata.ClearFlag) uint32 {
	var mask uint32
	if flags&metadata.ClearColour != 0 {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if flags&metadata.ClearDepth != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	return mask
}

func internalFormat(f metadata.InternalFormat) int32 {
	switch f {
	case metadata.InternalFormatRGB8:
		return gl.RGB8
	case metadata.InternalFormatDepth16:
		return gl.DEPTH_COMPONENT16
	case metadata.InternalFormatRGBA32F:
		return gl.RGBA32F
	}
	return gl.RGBA8
}

func pixelFormat(f metadata.ColorFormat) uint32 {
	switch f {
	case metadata.ColorFormatRGB:
		return gl.RGB
	case metadata.ColorFormatDepth:
		return gl.DEPTH_COMPONENT
	}
	return gl.RGBA
}

// pixelType is the client-side component type uploads are read as.
func pixelType(f metadata.InternalFormat) uint32 {
	switch f {
	case metadata.InternalFormatDepth16:
		return gl.UNSIGNED_SHORT
	case metadata.InternalFormatRGBA32F:
		return gl.FLOAT
	}
	return gl.UNSIGNED_BYTE
}

func imageAccess(a metadata.ImageAccess) uint32 {
	switch a {
	case metadata.ImageAccessReadOnly:
		return gl.READ_ONLY
	case metadata.ImageAccessReadWrite:
		return gl.READ_WRITE
	}
	return gl.WRITE_ONLY
}
