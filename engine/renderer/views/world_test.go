package views

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
	"github.com/spaghettifunk/pointfield/engine/renderer/renderertest"
	"github.com/spaghettifunk/pointfield/engine/systems"
)

const vertexSource = `#version 430 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec3 aColour;
uniform float uPointSize;
out vec3 vColour;
void main() {
    vColour = aColour;
    gl_PointSize = uPointSize;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const fragmentSource = `#version 430 core
in vec3 vColour;
out vec4 FragColor;
void main() { FragColor = vec4(vColour, 1.0); }
`

func newWorldView(t *testing.T) (*WorldView, *renderertest.Backend) {
	t.Helper()
	backend := renderertest.NewBackend()
	fsys := fstest.MapFS{
		"shaders/default.vert": {Data: []byte(vertexSource)},
		"shaders/default.frag": {Data: []byte(fragmentSource)},
	}

	programs, diagnostics := systems.LoadShaders(backend, fsys, metadata.BuiltinShaders)
	require.Empty(t, diagnostics)
	ss, err := systems.NewShaderSystem(backend, metadata.BuiltinShaders, programs)
	require.NoError(t, err)
	layout, err := metadata.DefaultLayout()
	require.NoError(t, err)
	rs, err := systems.NewRendererSystem(&systems.RendererSystemConfig{
		Screen:   metadata.Dimensions{Width: 800, Height: 600},
		Textures: systems.TextureSystemConfig{MaxTextureCount: 4},
	}, backend, layout, ss)
	require.NoError(t, err)

	return NewWorldView(DefaultWorldViewConfig(), rs), backend
}

func TestWorldViewRenderFrame(t *testing.T) {
	view, backend := newWorldView(t)
	backend.Reset()

	entities := []metadata.Entity{
		{Position: math.NewVec2(0, 0)},
		{Position: math.NewVec2(-0.5, 0.25)},
	}
	require.NoError(t, view.RenderFrame(entities))

	var order []string
	for _, c := range backend.Calls() {
		switch c.Name {
		case "Clear", "BufferData", "UseProgram", "Uniform1f", "DrawArrays":
			order = append(order, c.Name)
		}
	}
	assert.Equal(t, []string{"Clear", "BufferData", "BufferData", "UseProgram", "Uniform1f", "DrawArrays"}, order)
	assert.Equal(t, []interface{}{metadata.ClearColour | metadata.ClearDepth}, backend.CallsNamed("Clear")[0].Args)
	assert.Equal(t, []interface{}{metadata.DrawModePoints, int32(2)}, backend.CallsNamed("DrawArrays")[0].Args)
	assert.Equal(t, []interface{}{int32(0), float32(5)}, backend.CallsNamed("Uniform1f")[0].Args)
}

func TestWorldViewEmptySnapshotOnlyClears(t *testing.T) {
	view, backend := newWorldView(t)
	backend.Reset()

	require.NoError(t, view.RenderFrame(nil))
	assert.Equal(t, 1, backend.Count("Clear"))
	assert.Zero(t, backend.Count("DrawArrays"))
	assert.Zero(t, backend.Count("BufferData"))
}

func TestWorldViewBuildVertices(t *testing.T) {
	view, _ := newWorldView(t)

	vs := view.BuildVertices([]metadata.Entity{{Position: math.NewVec2(0.25, -0.5)}})
	require.Len(t, vs, 1)
	assert.Equal(t, metadata.Vertex{X: 0.75, Y: 0, R: 1}, vs[0])
}

func TestWorldViewOnResize(t *testing.T) {
	view, backend := newWorldView(t)

	view.OnResize(1024, 768)
	assert.Equal(t, uint32(1024), backend.ViewportWidth)
	assert.Equal(t, uint32(768), backend.ViewportHeight)
	require.NoError(t, view.OnDestroy())
}
