package metadata

import (
	"fmt"
	"unsafe"
)

/**
 * @brief The single vertex record uploaded to the GPU: a 2d position,
 * an rgb colour and a texture coordinate, all 32-bit floats.
 */
type Vertex struct {
	/** @brief The position of the vertex. */
	X, Y float32
	/** @brief The colour of the vertex. */
	R, G, B float32
	/** @brief The texture coordinate of the vertex. */
	U, V float32
}

/** @brief The size in bytes of one Vertex record. */
const VertexSize = uint32(unsafe.Sizeof(Vertex{}))

/** @brief The numeric type of a single attribute component. */
type AttributeType uint8

const (
	AttributeTypeFloat32 AttributeType = iota
	AttributeTypeInt32
	AttributeTypeUint32
	AttributeTypeInt16
	AttributeTypeUint16
	AttributeTypeInt8
	AttributeTypeUint8
)

// Size returns the byte size of one component, or 0 for an unknown type.
func (t AttributeType) Size() uint32 {
	switch t {
	case AttributeTypeFloat32, AttributeTypeInt32, AttributeTypeUint32:
		return 4
	case AttributeTypeInt16, AttributeTypeUint16:
		return 2
	case AttributeTypeInt8, AttributeTypeUint8:
		return 1
	}
	return 0
}

func (t AttributeType) String() string {
	switch t {
	case AttributeTypeFloat32:
		return "float32"
	case AttributeTypeInt32:
		return "int32"
	case AttributeTypeUint32:
		return "uint32"
	case AttributeTypeInt16:
		return "int16"
	case AttributeTypeUint16:
		return "uint16"
	case AttributeTypeInt8:
		return "int8"
	case AttributeTypeUint8:
		return "uint8"
	}
	return fmt.Sprintf("AttributeType(%d)", uint8(t))
}

/**
 * @brief Describes one vertex attribute as seen by the vertex shader.
 */
type AttributePointer struct {
	/** @brief The attribute location. */
	Index uint32
	/** @brief The number of components, 1 to 4. */
	Components int32
	/** @brief The numeric type of each component. */
	Type AttributeType
	/** @brief Indicates if integer data is normalized on fetch. */
	Normalized bool
	/** @brief Byte offset of the attribute in the vertex record. */
	Offset uint32
}

// Size returns the byte size of the whole attribute.
func (p AttributePointer) Size() uint32 {
	return uint32(p.Components) * p.Type.Size()
}

type LayoutErrorKind uint8

const (
	/** @brief Attribute indices do not run 0, 1, 2, ... */
	LayoutErrorIndexGap LayoutErrorKind = iota
	/** @brief An offset does not match the running byte total. */
	LayoutErrorBadOffset
	/** @brief The attributes do not add up to the record size. */
	LayoutErrorSizeMismatch
	/** @brief An attribute has an unknown component type or count. */
	LayoutErrorUnknownType
)

func (k LayoutErrorKind) String() string {
	switch k {
	case LayoutErrorIndexGap:
		return "index gap"
	case LayoutErrorBadOffset:
		return "bad offset"
	case LayoutErrorSizeMismatch:
		return "size mismatch"
	case LayoutErrorUnknownType:
		return "unknown type"
	}
	return "unknown"
}

// LayoutError reports why an attribute list does not describe a vertex record.
type LayoutError struct {
	Kind LayoutErrorKind
	// Position of the offending attribute in the list, -1 for size mismatches.
	Index    int
	Expected uint32
	Actual   uint32
}

func (e *LayoutError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("attribute layout %s: expected %d, got %d", e.Kind, e.Expected, e.Actual)
	}
	return fmt.Sprintf("attribute layout %s at attribute %d: expected %d, got %d", e.Kind, e.Index, e.Expected, e.Actual)
}

/**
 * @brief The validated, immutable attribute set of the vertex record.
 */
type AttributeLayout struct {
	pointers []AttributePointer
	stride   uint32
}

// NewAttributeLayout validates pointers against a record of recordSize bytes.
func NewAttributeLayout(pointers []AttributePointer, recordSize uint32) (*AttributeLayout, error) {
	var total uint32
	for i, p := range pointers {
		if p.Index != uint32(i) {
			return nil, &LayoutError{Kind: LayoutErrorIndexGap, Index: i, Expected: uint32(i), Actual: p.Index}
		}
		if p.Type.Size() == 0 || p.Components < 1 || p.Components > 4 {
			return nil, &LayoutError{Kind: LayoutErrorUnknownType, Index: i, Expected: 0, Actual: uint32(p.Type)}
		}
		if p.Offset != total {
			return nil, &LayoutError{Kind: LayoutErrorBadOffset, Index: i, Expected: total, Actual: p.Offset}
		}
		total += p.Size()
	}
	if total != recordSize {
		return nil, &LayoutError{Kind: LayoutErrorSizeMismatch, Index: -1, Expected: recordSize, Actual: total}
	}

	ps := make([]AttributePointer, len(pointers))
	copy(ps, pointers)
	return &AttributeLayout{pointers: ps, stride: recordSize}, nil
}

func (l *AttributeLayout) Pointers() []AttributePointer {
	ps := make([]AttributePointer, len(l.pointers))
	copy(ps, l.pointers)
	return ps
}

func (l *AttributeLayout) Stride() uint32 {
	return l.stride
}

/** @brief The attribute pointers of Vertex: position, colour, texture coordinate. */
var VertexAttributes = []AttributePointer{
	{Index: 0, Components: 2, Type: AttributeTypeFloat32, Offset: uint32(unsafe.Offsetof(Vertex{}.X))},
	{Index: 1, Components: 3, Type: AttributeTypeFloat32, Offset: uint32(unsafe.Offsetof(Vertex{}.R))},
	{Index: 2, Components: 2, Type: AttributeTypeFloat32, Offset: uint32(unsafe.Offsetof(Vertex{}.U))},
}

// DefaultLayout builds the layout of Vertex.
func DefaultLayout() (*AttributeLayout, error) {
	return NewAttributeLayout(VertexAttributes, VertexSize)
}

// VertexBytes reinterprets vertices as the raw bytes uploaded to a vertex buffer.
func VertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(VertexSize))
}

// IndexBytes reinterprets indices as the raw bytes uploaded to an element buffer.
func IndexBytes(indices []uint32) []byte {
	if len(indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*4)
}
