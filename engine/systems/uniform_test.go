package systems

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
	"github.com/spaghettifunk/pointfield/engine/renderer/renderertest"
)

func newTextures(t *testing.T, backend *renderertest.Backend, names ...string) *TextureSystem {
	t.Helper()
	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: 16}, backend, metadata.Dimensions{Width: 4, Height: 4})
	require.NoError(t, err)
	for _, n := range names {
		_, err := ts.Create(metadata.TextureConfig{
			Name:           n,
			Format:         metadata.ColorFormatRGBA,
			InternalFormat: metadata.InternalFormatRGBA8,
			Dimensions:     &metadata.Dimensions{Width: 2, Height: 2},
		})
		require.NoError(t, err)
	}
	return ts
}

func TestApplyUniformsUnbound(t *testing.T) {
	backend := renderertest.NewBackend()
	ss := newShaderSystem(t, backend, testFS(), testShaderSet)
	ts := newTextures(t, backend, "albedo.png")
	backend.Reset()

	data := metadata.NewUniformData().
		Float("uPointSize", 4).
		Texture("uAlbedo", "albedo.png")

	assert.ErrorIs(t, ss.ApplyUniforms(data, ts), ErrNoBoundShader)
	assert.Zero(t, backend.UniformWrites())
	assert.Empty(t, backend.Calls())
}

func TestApplyUniformsPartialSuccess(t *testing.T) {
	backend := renderertest.NewBackend()
	ss := newShaderSystem(t, backend, testFS(), testShaderSet)
	require.NoError(t, ss.BindShader(0))
	backend.Reset()

	data := metadata.NewUniformData().
		Float("uMissing", 1).
		Float("uPointSize", 4)

	err := ss.ApplyUniforms(data, nil)
	var unknown *UnknownUniformError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "uMissing", unknown.Name)

	writes := backend.CallsNamed("Uniform1f")
	require.Len(t, writes, 1)
	loc, _ := ss.programs[0].Location("uPointSize")
	assert.Equal(t, []interface{}{loc, float32(4)}, writes[0].Args)
}

func TestApplyUniformsTextureUnits(t *testing.T) {
	backend := renderertest.NewBackend()
	ss := newShaderSystem(t, backend, testFS(), testShaderSet)
	ts := newTextures(t, backend, "albedo.png", "noise.png")
	require.NoError(t, ss.BindShader(0))
	backend.Reset()

	data := metadata.NewUniformData().
		Texture("uNoise", "noise.png").
		Float("uPointSize", 2).
		Texture("uAlbedo", "albedo.png").
		Mat4("uView", mgl32.Ident4())

	require.NoError(t, ss.ApplyUniforms(data, ts))

	var order []string
	for _, c := range backend.Calls() {
		order = append(order, c.Name)
	}
	assert.Equal(t, []string{
		"Uniform1f", "UniformMatrix4fv",
		"ActiveTexture", "BindTexture", "Uniform1i",
		"ActiveTexture", "BindTexture", "Uniform1i",
		"ActiveTexture",
	}, order)

	units := backend.CallsNamed("ActiveTexture")
	assert.Equal(t, []interface{}{uint32(0)}, units[0].Args)
	assert.Equal(t, []interface{}{uint32(1)}, units[1].Args)
	// the active unit goes back to 0 so later texture uploads do not touch sampler bindings
	assert.Equal(t, []interface{}{uint32(0)}, units[2].Args)
	assert.Equal(t, uint32(0), backend.ActiveUnit)

	noise, _ := ts.Get("noise.png")
	albedo, _ := ts.Get("albedo.png")
	binds := backend.CallsNamed("BindTexture")
	assert.Equal(t, []interface{}{noise.ID()}, binds[0].Args)
	assert.Equal(t, []interface{}{albedo.ID()}, binds[1].Args)

	noiseLoc, _ := ss.programs[0].Location("uNoise")
	samplers := backend.CallsNamed("Uniform1i")
	assert.Equal(t, []interface{}{noiseLoc, int32(0)}, samplers[0].Args)
}

func TestApplyUniformsMissingTextureKeepsUnit(t *testing.T) {
	backend := renderertest.NewBackend()
	ss := newShaderSystem(t, backend, testFS(), testShaderSet)
	ts := newTextures(t, backend, "albedo.png")
	require.NoError(t, ss.BindShader(0))
	backend.Reset()

	data := metadata.NewUniformData().
		Texture("uNoise", "gone.png").
		Texture("uAlbedo", "albedo.png")

	err := ss.ApplyUniforms(data, ts)
	var missing *TextureNotFoundError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "gone.png", missing.Name)

	units := backend.CallsNamed("ActiveTexture")
	require.Len(t, units, 2)
	assert.Equal(t, []interface{}{uint32(0)}, units[0].Args)
	assert.Equal(t, []interface{}{uint32(0)}, units[1].Args)
}

func TestApplyUniformsWithoutTexturesKeepsActiveUnit(t *testing.T) {
	backend := renderertest.NewBackend()
	ss := newShaderSystem(t, backend, testFS(), testShaderSet)
	ts := newTextures(t, backend)
	require.NoError(t, ss.BindShader(0))
	backend.Reset()

	require.NoError(t, ss.ApplyUniforms(metadata.NewUniformData().Float("uPointSize", 2), ts))
	assert.Zero(t, backend.Count("ActiveTexture"))
}

func TestApplyUniformsThenResize(t *testing.T) {
	backend := renderertest.NewBackend()
	ss := newShaderSystem(t, backend, testFS(), testShaderSet)
	ts := newTextures(t, backend, "albedo.png", "noise.png")
	_, err := ts.Create(metadata.TextureConfig{
		Name:           "depth",
		Format:         metadata.ColorFormatDepth,
		InternalFormat: metadata.InternalFormatDepth16,
	})
	require.NoError(t, err)
	require.NoError(t, ss.BindShader(0))

	data := metadata.NewUniformData().
		Texture("uAlbedo", "albedo.png").
		Texture("uNoise", "noise.png")
	require.NoError(t, ss.ApplyUniforms(data, ts))
	noise, _ := ts.Get("noise.png")
	require.Equal(t, noise.ID(), backend.UnitTextures[1])

	ts.UpdateScreenDimensions(metadata.Dimensions{Width: 8, Height: 8})
	assert.Equal(t, noise.ID(), backend.UnitTextures[1])
}

func TestApplyUniformsKinds(t *testing.T) {
	backend := renderertest.NewBackend()
	fsys := testFS()
	fsys["shaders/default.vert"].Data = []byte(`#version 430 core
uniform float f;
uniform int i;
uniform uint u;
uniform vec2 v2;
uniform vec3 v3;
uniform vec4 v4;
uniform ivec2 i2;
uniform ivec3 i3;
uniform ivec4 i4;
uniform uvec2 u2;
uniform uvec3 u3;
uniform uvec4 u4;
uniform mat2 m2;
uniform mat3 m3;
uniform mat4 m4;
void main() {}
`)
	ss := newShaderSystem(t, backend, fsys, testShaderSet)
	require.NoError(t, ss.BindShader(0))
	backend.Reset()

	data := metadata.NewUniformData().
		Float("f", 1).Int("i", -2).Uint("u", 3).
		Vec2("v2", mgl32.Vec2{1, 2}).Vec3("v3", mgl32.Vec3{1, 2, 3}).Vec4("v4", mgl32.Vec4{1, 2, 3, 4}).
		IVec2("i2", math.IVec2{1, 2}).IVec3("i3", math.IVec3{1, 2, 3}).IVec4("i4", math.IVec4{1, 2, 3, 4}).
		UVec2("u2", math.UVec2{1, 2}).UVec3("u3", math.UVec3{1, 2, 3}).UVec4("u4", math.UVec4{1, 2, 3, 4}).
		Mat2("m2", mgl32.Ident2()).Mat3("m3", mgl32.Ident3()).Mat4("m4", mgl32.Ident4())

	require.NoError(t, ss.ApplyUniforms(data, nil))

	var order []string
	for _, c := range backend.Calls() {
		order = append(order, c.Name)
	}
	assert.Equal(t, []string{
		"Uniform1f", "Uniform1i", "Uniform1ui",
		"Uniform2fv", "Uniform3fv", "Uniform4fv",
		"Uniform2iv", "Uniform3iv", "Uniform4iv",
		"Uniform2uiv", "Uniform3uiv", "Uniform4uiv",
		"UniformMatrix2fv", "UniformMatrix3fv", "UniformMatrix4fv",
	}, order)

	i3, _ := ss.programs[0].Location("i3")
	assert.Equal(t, []interface{}{i3, math.IVec3{1, 2, 3}}, backend.CallsNamed("Uniform3iv")[0].Args)
}
