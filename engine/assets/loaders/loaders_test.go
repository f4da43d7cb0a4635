package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageLoaderOpaqueIsRGB(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(y * 10), G: 1, B: 2, A: 255})
		}
	}
	fsys := fstest.MapFS{"textures/a.png": {Data: encodePNG(t, img)}}

	res, err := (&ImageLoader{}).Load(fsys, "textures/a.png", nil)
	require.NoError(t, err)
	asset := res.Data.(*metadata.ImageAsset)

	assert.Equal(t, metadata.ColorFormatRGB, asset.Format)
	assert.Equal(t, uint32(2), asset.Width)
	assert.Equal(t, uint32(3), asset.Height)
	assert.Len(t, asset.Pixels, 2*3*3)
	assert.Equal(t, []uint8{0, 1, 2}, asset.Pixels[:3])
	assert.Equal(t, uint8(20), asset.Pixels[2*2*3])

	res, err = (&ImageLoader{}).Load(fsys, "textures/a.png", &metadata.ImageResourceParams{FlipY: true})
	require.NoError(t, err)
	flipped := res.Data.(*metadata.ImageAsset)
	assert.Equal(t, uint8(20), flipped.Pixels[0])
}

func TestImageLoaderAlphaIsRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 128})
	fsys := fstest.MapFS{"b.png": {Data: encodePNG(t, img)}}

	res, err := (&ImageLoader{}).Load(fsys, "b.png", nil)
	require.NoError(t, err)
	asset := res.Data.(*metadata.ImageAsset)

	assert.Equal(t, metadata.ColorFormatRGBA, asset.Format)
	assert.Equal(t, metadata.InternalFormatRGBA8, asset.InternalFormat())
	assert.Len(t, asset.Pixels, 16)
	assert.Equal(t, []uint8{255, 0, 0, 128}, asset.Pixels[:4])
}

func TestImageLoaderErrors(t *testing.T) {
	fsys := fstest.MapFS{"junk.png": {Data: []byte("not an image")}}

	_, err := (&ImageLoader{}).Load(fsys, "junk.png", nil)
	assert.Error(t, err)
	_, err = (&ImageLoader{}).Load(fsys, "missing.png", nil)
	assert.Error(t, err)
}

func TestShaderLoader(t *testing.T) {
	fsys := fstest.MapFS{"shaders/default.vert": {Data: []byte("#version 430 core\n")}}

	res, err := (&ShaderLoader{}).Load(fsys, "shaders/default.vert", nil)
	require.NoError(t, err)
	assert.Equal(t, "#version 430 core\n", res.Data)
	assert.Equal(t, uint64(18), res.DataSize)
}
