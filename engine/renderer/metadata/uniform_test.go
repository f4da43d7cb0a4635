package metadata

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pointfield/engine/math"
)

func TestUniformDataEntriesPutTexturesLast(t *testing.T) {
	data := NewUniformData().
		Texture("uAlbedo", "albedo.png").
		Float("uTime", 1.5).
		Texture("uNoise", "noise.png").
		Mat4("uView", mgl32.Ident4()).
		IVec2("uGrid", math.IVec2{4, 4})

	assert.Equal(t, 5, data.Len())
	assert.Equal(t, []string{"uAlbedo", "uTime", "uNoise", "uView", "uGrid"}, data.Names())

	entries := data.Entries()
	require.Len(t, entries, 5)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"uTime", "uView", "uGrid", "uAlbedo", "uNoise"}, names)
	assert.Equal(t, UniformKindTexture, entries[3].Kind)
	assert.Equal(t, "albedo.png", entries[3].Value)
	assert.Equal(t, float32(1.5), entries[0].Value)
}

func TestShaderSetLookup(t *testing.T) {
	d, ok := BuiltinShaders.Lookup(ShaderDefault)
	require.True(t, ok)
	assert.Equal(t, "shaders/default.vert", d.StagePath(ShaderStageVertex))

	_, ok = BuiltinShaders.Lookup(ShaderIdentifier(7))
	assert.False(t, ok)

	owner, ok := BuiltinShaders.Owner("shaders/default.frag")
	require.True(t, ok)
	assert.Equal(t, ShaderDefault, owner.ID)
}
