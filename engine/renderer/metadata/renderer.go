package metadata

/** @brief Which buffer binding point a buffer is attached to. */
type BufferTarget uint8

const (
	BufferTargetArray BufferTarget = iota
	BufferTargetElementArray
)

/** @brief Hint about how often buffer contents are replaced. */
type BufferUsage uint8

const (
	BufferUsageStatic BufferUsage = iota
	BufferUsageDynamic
	BufferUsageStream
)

type DrawMode uint8

const (
	DrawModePoints DrawMode = iota
	DrawModeLines
	DrawModeTriangles
)

func (m DrawMode) String() string {
	switch m {
	case DrawModePoints:
		return "points"
	case DrawModeLines:
		return "lines"
	case DrawModeTriangles:
		return "triangles"
	}
	return "unknown"
}

/**
 * @brief The types of clearing to be done on the framebuffer.
 * Can be combined together for multiple clearing functions.
 */
type ClearFlag uint8

const (
	/** @brief No clearing should be done. */
	ClearNone ClearFlag = 0
	/** @brief Clears the colour buffer. */
	ClearColour ClearFlag = 0x1
	/** @brief Clears the depth buffer. */
	ClearDepth ClearFlag = 0x2
)

/** @brief How a compute pass may access a bound image. */
type ImageAccess uint8

const (
	ImageAccessReadOnly ImageAccess = iota
	ImageAccessWriteOnly
	ImageAccessReadWrite
)

/**
 * @brief Fixed pipeline state applied when the backend starts.
 */
type BackendConfig struct {
	/** @brief The initial viewport size. */
	Width, Height uint32
	/** @brief RGBA clear colour. */
	ClearColour [4]float32
	/** @brief Size of rasterized points when the shader does not set one. */
	PointSize float32
	DepthTest bool
	CullFace  bool
}
