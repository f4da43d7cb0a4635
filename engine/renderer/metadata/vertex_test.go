package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	layout, err := DefaultLayout()
	require.NoError(t, err)

	assert.Equal(t, uint32(28), VertexSize)
	assert.Equal(t, VertexSize, layout.Stride())

	ps := layout.Pointers()
	require.Len(t, ps, 3)
	assert.Equal(t, uint32(0), ps[0].Offset)
	assert.Equal(t, uint32(8), ps[1].Offset)
	assert.Equal(t, uint32(20), ps[2].Offset)
}

func TestNewAttributeLayoutErrors(t *testing.T) {
	tests := []struct {
		name     string
		pointers []AttributePointer
		size     uint32
		kind     LayoutErrorKind
		index    int
	}{
		{
			name: "index gap",
			pointers: []AttributePointer{
				{Index: 0, Components: 2, Type: AttributeTypeFloat32, Offset: 0},
				{Index: 2, Components: 2, Type: AttributeTypeFloat32, Offset: 8},
			},
			size:  16,
			kind:  LayoutErrorIndexGap,
			index: 1,
		},
		{
			name: "bad offset",
			pointers: []AttributePointer{
				{Index: 0, Components: 2, Type: AttributeTypeFloat32, Offset: 0},
				{Index: 1, Components: 3, Type: AttributeTypeFloat32, Offset: 12},
			},
			size:  20,
			kind:  LayoutErrorBadOffset,
			index: 1,
		},
		{
			name: "short record",
			pointers: []AttributePointer{
				{Index: 0, Components: 2, Type: AttributeTypeFloat32, Offset: 0},
			},
			size:  28,
			kind:  LayoutErrorSizeMismatch,
			index: -1,
		},
		{
			name: "unknown type",
			pointers: []AttributePointer{
				{Index: 0, Components: 2, Type: AttributeType(99), Offset: 0},
			},
			size:  8,
			kind:  LayoutErrorUnknownType,
			index: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := NewAttributeLayout(tt.pointers, tt.size)
			assert.Nil(t, layout)

			var le *LayoutError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.kind, le.Kind)
			assert.Equal(t, tt.index, le.Index)
		})
	}
}

func TestNewAttributeLayoutMixedTypes(t *testing.T) {
	layout, err := NewAttributeLayout([]AttributePointer{
		{Index: 0, Components: 3, Type: AttributeTypeFloat32, Offset: 0},
		{Index: 1, Components: 4, Type: AttributeTypeUint8, Normalized: true, Offset: 12},
		{Index: 2, Components: 2, Type: AttributeTypeInt16, Offset: 16},
	}, 20)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), layout.Stride())
}

func TestVertexBytes(t *testing.T) {
	assert.Nil(t, VertexBytes(nil))
	assert.Len(t, VertexBytes(make([]Vertex, 3)), 84)
	assert.Len(t, IndexBytes([]uint32{0, 1, 2}), 12)
}

func TestInternalFormatImageSize(t *testing.T) {
	assert.Equal(t, 300, InternalFormatRGB8.ImageSize(10, 10))
	assert.Equal(t, 0, InternalFormatRGBA8.ImageSize(0, 10))
	assert.Equal(t, 16384*16384*16, InternalFormatRGBA32F.ImageSize(16384, 16384))
	assert.Equal(t, 65536*65536*2, InternalFormatDepth16.ImageSize(65536, 65536))
}
