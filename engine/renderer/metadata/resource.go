package metadata

const (
	InvalidID       uint32 = 4294967295
	InvalidIDUint16 uint16 = 65535
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not a resource the engine knows how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief Shader stage source text. */
	ResourceTypeShader
	/** @brief Image resource type. */
	ResourceTypeImage
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The asset path of the resource, relative to the assets root. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
