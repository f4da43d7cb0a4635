package metadata

import "fmt"

/**
 * @brief Identifies one program of the closed shader set. The value is
 * the program's position in the set.
 */
type ShaderIdentifier uint8

const (
	/** @brief The default point shader. */
	ShaderDefault ShaderIdentifier = iota
)

/** @brief The kind of pipeline a program is linked for. */
type ProgramType uint8

const (
	/** @brief A vertex + fragment program. */
	ProgramTypeGraphics ProgramType = iota
	/** @brief A single compute stage program. */
	ProgramTypeCompute
)

func (t ProgramType) String() string {
	if t == ProgramTypeCompute {
		return "compute"
	}
	return "graphics"
}

/** @brief Shader stages. */
type ShaderStage uint8

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
	ShaderStageCompute
)

// Extension returns the source file extension of the stage.
func (s ShaderStage) Extension() string {
	switch s {
	case ShaderStageVertex:
		return ".vert"
	case ShaderStageFragment:
		return ".frag"
	case ShaderStageCompute:
		return ".comp"
	}
	return ""
}

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageCompute:
		return "compute"
	}
	return fmt.Sprintf("ShaderStage(%d)", uint8(s))
}

// Stages returns the stages a program of this type is built from.
func (t ProgramType) Stages() []ShaderStage {
	if t == ProgramTypeCompute {
		return []ShaderStage{ShaderStageCompute}
	}
	return []ShaderStage{ShaderStageVertex, ShaderStageFragment}
}

/**
 * @brief Describes where a program's sources live and how it is linked.
 */
type ShaderDescriptor struct {
	ID   ShaderIdentifier
	Name string
	/** @brief Extensionless path relative to the assets root, e.g. shaders/default. */
	Path string
	Type ProgramType
}

// StagePath returns the source path of one stage.
func (d ShaderDescriptor) StagePath(stage ShaderStage) string {
	return d.Path + stage.Extension()
}

/**
 * @brief The closed set of programs the renderer needs. Entry i must have ID i.
 */
type ShaderSet []ShaderDescriptor

// BuiltinShaders is the set every renderer is constructed with.
var BuiltinShaders = ShaderSet{
	{ID: ShaderDefault, Name: "Default", Path: "shaders/default", Type: ProgramTypeGraphics},
}

// Lookup returns the descriptor of id.
func (s ShaderSet) Lookup(id ShaderIdentifier) (ShaderDescriptor, bool) {
	if int(id) >= len(s) || s[id].ID != id {
		return ShaderDescriptor{}, false
	}
	return s[id], true
}

// Owner returns the descriptor whose stage sources include path.
func (s ShaderSet) Owner(path string) (ShaderDescriptor, bool) {
	for _, d := range s {
		for _, stage := range d.Type.Stages() {
			if d.StagePath(stage) == path {
				return d, true
			}
		}
	}
	return ShaderDescriptor{}, false
}

/**
 * @brief A uniform declaration found in shader source.
 */
type RequiredUniform struct {
	Name string
	/** @brief Where the declaration was found, as "file:line". */
	Location string
}

/**
 * @brief Read-only description of a loaded program.
 */
type ShaderMetadata struct {
	ID               ShaderIdentifier
	Name             string
	Type             ProgramType
	RequiredUniforms []RequiredUniform
}
