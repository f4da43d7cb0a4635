package systems

import (
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
	"github.com/spaghettifunk/pointfield/engine/renderer/renderertest"
)

func rgbImage(w, h uint32) *metadata.ImageAsset {
	return &metadata.ImageAsset{Width: w, Height: h, Format: metadata.ColorFormatRGB, Pixels: make([]byte, w*h*3)}
}

func TestJobSystem(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)
	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)

	js, err := NewJobSystem(4, 0)
	require.NoError(t, err)
	var done, failed int32
	for i := 0; i < 20; i++ {
		i := i
		js.Submit(JobTask{
			OnStart: func() (interface{}, error) {
				if i%5 == 0 {
					return nil, assert.AnError
				}
				return i, nil
			},
			OnComplete: func(interface{}) { atomic.AddInt32(&done, 1) },
			OnFailure:  func(error) { atomic.AddInt32(&failed, 1) },
		})
	}
	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())
	assert.Equal(t, int32(16), done)
	assert.Equal(t, int32(4), failed)
}

func TestLoadImages(t *testing.T) {
	source := &fakeAssets{images: map[string]*metadata.ImageAsset{
		"textures/a.png":    rgbImage(2, 2),
		"textures/ui/b.png": rgbImage(1, 1),
	}}

	images, diagnostics := LoadImages(source, TextureDir, []string{"textures/a.png", "textures/broken.png", "textures/ui/b.png"}, nil)
	require.Len(t, images, 2)
	assert.Equal(t, "a.png", images[0].Name)
	assert.Equal(t, "ui/b.png", images[1].Name)
	require.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0].Error(), "textures/broken.png")

	images, diagnostics = LoadImages(source, TextureDir, nil, nil)
	assert.Empty(t, images)
	assert.Empty(t, diagnostics)
}

func newFakeAssets() *fakeAssets {
	fsys := testFS()
	delete(fsys, "shaders/overlay.vert")
	delete(fsys, "shaders/overlay.frag")
	delete(fsys, "shaders/fill.comp")
	fsys["textures/a.png"] = &fstest.MapFile{}
	fsys["textures/bad.png"] = &fstest.MapFile{}
	fsys["icon.png"] = &fstest.MapFile{}
	return &fakeAssets{
		fsys: fsys,
		images: map[string]*metadata.ImageAsset{
			"textures/a.png": rgbImage(4, 4),
			"icon.png":       rgbImage(4, 4),
		},
	}
}

func TestSystemManager(t *testing.T) {
	backend := renderertest.NewBackend()
	assets := newFakeAssets()

	sm, err := NewSystemManager(&SystemManagerConfig{
		Renderer: RendererSystemConfig{
			Screen:   metadata.Dimensions{Width: 640, Height: 480},
			Textures: TextureSystemConfig{MaxTextureCount: 8},
		},
	}, backend, assets)
	require.NoError(t, err)

	rs := sm.RendererSystem
	assert.Equal(t, 100, rs.SlotCount())
	assert.True(t, rs.Textures().Contains("a.png"))
	assert.False(t, rs.Textures().Contains("icon.png"))
	require.Len(t, sm.Diagnostics, 1)
	assert.Contains(t, sm.Diagnostics[0].Error(), "textures/bad.png")

	require.NoError(t, rs.ChooseShader(metadata.ShaderDefault))
	before := rs.Shaders().programs[0].Handle()
	assets.fsys["shaders/default.frag"] = &fstest.MapFile{Data: []byte("#version 430 core\nuniform vec4 uTint;\nvoid main() {}\n")}
	assert.True(t, sm.OnAssetChanged("shaders/default.frag"))
	assert.NotEqual(t, before, rs.Shaders().programs[0].Handle())
	assert.Equal(t, "Default", rs.ActiveShaderName())
	assert.False(t, sm.OnAssetChanged("textures/a.png"))

	sm.OnResize(800, 600)
	assert.Equal(t, metadata.Dimensions{Width: 800, Height: 600}, rs.ScreenDimensions())

	require.NoError(t, sm.Shutdown())
	assert.Zero(t, backend.Live("program"))
	assert.Zero(t, backend.Live("texture"))
}

func TestSystemManagerMissingProgram(t *testing.T) {
	backend := renderertest.NewBackend()
	assets := newFakeAssets()
	delete(assets.fsys, "shaders/default.vert")

	_, err := NewSystemManager(&SystemManagerConfig{
		Renderer: RendererSystemConfig{Textures: TextureSystemConfig{MaxTextureCount: 8}},
	}, backend, assets)
	assert.ErrorIs(t, err, ErrIncompleteShaderSet)
	assert.Zero(t, backend.Live("program"))
}
