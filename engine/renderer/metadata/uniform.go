package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/pointfield/engine/math"
)

/** @brief The tagged kind of a uniform value. */
type UniformKind uint8

const (
	UniformKindFloat UniformKind = iota
	UniformKindInt
	UniformKindUint
	UniformKindVec2
	UniformKindVec3
	UniformKindVec4
	UniformKindIVec2
	UniformKindIVec3
	UniformKindIVec4
	UniformKindUVec2
	UniformKindUVec3
	UniformKindUVec4
	UniformKindMat2
	UniformKindMat3
	UniformKindMat4
	/** @brief A texture referenced by registry name. */
	UniformKindTexture
)

var uniformKindNames = [...]string{
	"float", "int", "uint",
	"vec2", "vec3", "vec4",
	"ivec2", "ivec3", "ivec4",
	"uvec2", "uvec3", "uvec4",
	"mat2", "mat3", "mat4",
	"texture",
}

func (k UniformKind) String() string {
	if int(k) < len(uniformKindNames) {
		return uniformKindNames[k]
	}
	return "unknown"
}

/**
 * @brief One value bound for a uniform name. Value holds the Go type
 * matching Kind; texture entries hold the texture name as a string.
 */
type UniformEntry struct {
	Kind  UniformKind
	Name  string
	Value interface{}
}

/**
 * @brief The uniform values for one draw. Built with the typed setters,
 * consumed once by the shader system.
 */
type UniformData struct {
	entries []UniformEntry
}

func NewUniformData() *UniformData {
	return &UniformData{}
}

func (u *UniformData) add(kind UniformKind, name string, value interface{}) *UniformData {
	u.entries = append(u.entries, UniformEntry{Kind: kind, Name: name, Value: value})
	return u
}

func (u *UniformData) Float(name string, v float32) *UniformData {
	return u.add(UniformKindFloat, name, v)
}

func (u *UniformData) Int(name string, v int32) *UniformData {
	return u.add(UniformKindInt, name, v)
}

func (u *UniformData) Uint(name string, v uint32) *UniformData {
	return u.add(UniformKindUint, name, v)
}

func (u *UniformData) Vec2(name string, v mgl32.Vec2) *UniformData {
	return u.add(UniformKindVec2, name, v)
}

func (u *UniformData) Vec3(name string, v mgl32.Vec3) *UniformData {
	return u.add(UniformKindVec3, name, v)
}

func (u *UniformData) Vec4(name string, v mgl32.Vec4) *UniformData {
	return u.add(UniformKindVec4, name, v)
}

func (u *UniformData) IVec2(name string, v math.IVec2) *UniformData {
	return u.add(UniformKindIVec2, name, v)
}

func (u *UniformData) IVec3(name string, v math.IVec3) *UniformData {
	return u.add(UniformKindIVec3, name, v)
}

func (u *UniformData) IVec4(name string, v math.IVec4) *UniformData {
	return u.add(UniformKindIVec4, name, v)
}

func (u *UniformData) UVec2(name string, v math.UVec2) *UniformData {
	return u.add(UniformKindUVec2, name, v)
}

func (u *UniformData) UVec3(name string, v math.UVec3) *UniformData {
	return u.add(UniformKindUVec3, name, v)
}

func (u *UniformData) UVec4(name string, v math.UVec4) *UniformData {
	return u.add(UniformKindUVec4, name, v)
}

func (u *UniformData) Mat2(name string, v mgl32.Mat2) *UniformData {
	return u.add(UniformKindMat2, name, v)
}

func (u *UniformData) Mat3(name string, v mgl32.Mat3) *UniformData {
	return u.add(UniformKindMat3, name, v)
}

func (u *UniformData) Mat4(name string, v mgl32.Mat4) *UniformData {
	return u.add(UniformKindMat4, name, v)
}

// Texture binds the registered texture textureName to the sampler uniform name.
func (u *UniformData) Texture(name string, textureName string) *UniformData {
	return u.add(UniformKindTexture, name, textureName)
}

func (u *UniformData) Len() int {
	return len(u.entries)
}

// Names returns the target names in insertion order.
func (u *UniformData) Names() []string {
	names := make([]string, len(u.entries))
	for i, e := range u.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns the entries in dispatch order: every value entry in
// insertion order, then every texture entry in insertion order.
func (u *UniformData) Entries() []UniformEntry {
	out := make([]UniformEntry, 0, len(u.entries))
	for _, e := range u.entries {
		if e.Kind != UniformKindTexture {
			out = append(out, e)
		}
	}
	for _, e := range u.entries {
		if e.Kind == UniformKindTexture {
			out = append(out, e)
		}
	}
	return out
}
