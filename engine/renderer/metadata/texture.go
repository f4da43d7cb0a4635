package metadata

import "fmt"

/** @brief The channel layout of pixel data handed to a texture. */
type ColorFormat uint8

const (
	ColorFormatRGB ColorFormat = iota
	ColorFormatRGBA
	/** @brief Single depth channel. */
	ColorFormatDepth
)

func (f ColorFormat) String() string {
	switch f {
	case ColorFormatRGB:
		return "RGB"
	case ColorFormatRGBA:
		return "RGBA"
	case ColorFormatDepth:
		return "Depth"
	}
	return fmt.Sprintf("ColorFormat(%d)", uint8(f))
}

/** @brief The storage format the GPU keeps a texture in. */
type InternalFormat uint8

const (
	InternalFormatRGB8 InternalFormat = iota
	InternalFormatRGBA8
	InternalFormatDepth16
	/** @brief Float storage, used for compute outputs. */
	InternalFormatRGBA32F
)

// BytesPerPixel returns the size of one texel.
func (f InternalFormat) BytesPerPixel() uint32 {
	switch f {
	case InternalFormatRGB8:
		return 3
	case InternalFormatRGBA8:
		return 4
	case InternalFormatDepth16:
		return 2
	case InternalFormatRGBA32F:
		return 16
	}
	return 0
}

// ImageSize returns the byte size of a width x height image in this format.
func (f InternalFormat) ImageSize(width, height uint32) int {
	return int(uint64(width) * uint64(height) * uint64(f.BytesPerPixel()))
}

func (f InternalFormat) String() string {
	switch f {
	case InternalFormatRGB8:
		return "RGB8"
	case InternalFormatRGBA8:
		return "RGBA8"
	case InternalFormatDepth16:
		return "D16"
	case InternalFormatRGBA32F:
		return "RGBA32F"
	}
	return fmt.Sprintf("InternalFormat(%d)", uint8(f))
}

/** @brief A width/height pair in pixels. */
type Dimensions struct {
	Width  uint32
	Height uint32
}

/**
 * @brief Everything needed to (re)create a texture.
 */
type TextureConfig struct {
	/** @brief The registry name of the texture. */
	Name string
	/** @brief The pixel format of uploaded data. */
	Format ColorFormat
	/** @brief The GPU storage format. */
	InternalFormat InternalFormat
	/** @brief Fixed dimensions. Nil means the texture tracks the screen size. */
	Dimensions *Dimensions
}

// ScreenSized reports if the texture follows the screen dimensions.
func (c TextureConfig) ScreenSized() bool {
	return c.Dimensions == nil
}

/**
 * @brief Read-only description of a registered texture.
 */
type TextureMetadata struct {
	/** @brief The backend texture handle. */
	ID             uint32
	Name           string
	Format         ColorFormat
	InternalFormat InternalFormat
	Width          uint32
	Height         uint32
	/** @brief Indicates if the texture is recreated on screen resize. */
	ScreenSized bool
}
