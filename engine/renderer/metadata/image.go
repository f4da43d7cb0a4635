package metadata

/**
 * @brief A decoded image, ready to be uploaded into a texture.
 */
type ImageAsset struct {
	/** @brief The name the texture will be registered under. */
	Name string
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel layout of Pixels. */
	Format ColorFormat
	/** @brief Tightly packed rows, top row first unless flipped. */
	Pixels []uint8
}

// InternalFormat picks the 8-bit storage format matching the pixel layout.
func (i *ImageAsset) InternalFormat() InternalFormat {
	if i.Format == ColorFormatRGB {
		return InternalFormatRGB8
	}
	return InternalFormatRGBA8
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}
