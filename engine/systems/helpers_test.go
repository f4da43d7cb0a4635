package systems

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
	"github.com/spaghettifunk/pointfield/engine/renderer/renderertest"
)

const testVertexSource = `#version 430 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec3 aColour;
layout (location = 2) in vec2 aUV;

uniform float uPointSize;
uniform mat4 uView;
uniform ivec2 uGrid;

out vec3 vColour;

void main() {
    vColour = aColour;
    gl_PointSize = uPointSize;
    gl_Position = uView * vec4(aPos, 0.0, 1.0);
}
`

const testFragmentSource = `#version 430 core
in vec3 vColour;

uniform sampler2D uAlbedo;
uniform sampler2D uNoise;
uniform float uPointSize;

out vec4 FragColor;

void main() {
    FragColor = vec4(vColour, 1.0) * texture(uAlbedo, vec2(0.5)) * texture(uNoise, vec2(0.5));
}
`

const testComputeSource = `#version 430 core
layout (local_size_x = 8, local_size_y = 8) in;
layout (rgba32f, binding = 0) uniform image2D uOutput;
uniform float uTime;

void main() {}
`

var testShaderSet = metadata.ShaderSet{
	{ID: 0, Name: "Default", Path: "shaders/default", Type: metadata.ProgramTypeGraphics},
	{ID: 1, Name: "Overlay", Path: "shaders/overlay", Type: metadata.ProgramTypeGraphics},
}

var testComputeSet = metadata.ShaderSet{
	{ID: 0, Name: "Default", Path: "shaders/default", Type: metadata.ProgramTypeGraphics},
	{ID: 1, Name: "Fill", Path: "shaders/fill", Type: metadata.ProgramTypeCompute},
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"shaders/default.vert": {Data: []byte(testVertexSource)},
		"shaders/default.frag": {Data: []byte(testFragmentSource)},
		"shaders/overlay.vert": {Data: []byte(testVertexSource)},
		"shaders/overlay.frag": {Data: []byte(testFragmentSource)},
		"shaders/fill.comp":    {Data: []byte(testComputeSource)},
	}
}

func failOn(marker string) func(metadata.ShaderStage, string) string {
	return func(_ metadata.ShaderStage, source string) string {
		if strings.Contains(source, marker) {
			return "0:1: error: " + marker
		}
		return ""
	}
}

func newShaderSystem(t *testing.T, backend *renderertest.Backend, fsys fs.FS, set metadata.ShaderSet) *ShaderSystem {
	t.Helper()
	programs, _ := LoadShaders(backend, fsys, set)
	require.Len(t, programs, len(set))
	ss, err := NewShaderSystem(backend, set, programs)
	require.NoError(t, err)
	return ss
}

func newRendererSystem(t *testing.T, backend *renderertest.Backend, set metadata.ShaderSet) *RendererSystem {
	t.Helper()
	layout, err := metadata.DefaultLayout()
	require.NoError(t, err)
	rs, err := NewRendererSystem(&RendererSystemConfig{
		Screen:   metadata.Dimensions{Width: 800, Height: 600},
		Textures: TextureSystemConfig{MaxTextureCount: 64},
	}, backend, layout, newShaderSystem(t, backend, testFS(), set))
	require.NoError(t, err)
	return rs
}

func points(n int) []metadata.Vertex {
	vs := make([]metadata.Vertex, n)
	for i := range vs {
		vs[i] = metadata.Vertex{X: float32(i), Y: float32(i), R: 1}
	}
	return vs
}

type fakeAssets struct {
	fsys   fstest.MapFS
	images map[string]*metadata.ImageAsset
}

func (f *fakeAssets) FS() fs.FS {
	return f.fsys
}

func (f *fakeAssets) Assets(resourceType metadata.ResourceType) []string {
	var out []string
	for p := range f.fsys {
		switch {
		case resourceType == metadata.ResourceTypeImage && strings.HasSuffix(p, ".png"):
			out = append(out, p)
		case resourceType == metadata.ResourceTypeShader && strings.HasPrefix(p, "shaders/"):
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeAssets) LoadImage(assetPath string, params *metadata.ImageResourceParams) (*metadata.ImageAsset, error) {
	img, ok := f.images[assetPath]
	if !ok {
		return nil, errors.New("cannot decode " + assetPath)
	}
	cp := *img
	return &cp, nil
}
