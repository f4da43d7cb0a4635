package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

/** @brief Signed integer vectors, laid out the way integer uniforms expect them. */
type IVec2 [2]int32
type IVec3 [3]int32
type IVec4 [4]int32

/** @brief Unsigned integer vectors, laid out the way unsigned uniforms expect them. */
type UVec2 [2]uint32
type UVec3 [3]uint32
type UVec4 [4]uint32
