package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

type ImageLoader struct{}

// decodeImage decodes any registered format into tightly packed rows.
// Fully opaque images come back as RGB, everything else as RGBA.
func decodeImage(fsys fs.FS, path string, flipY bool) (*metadata.ImageAsset, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	bounds := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)

	width, height := bounds.Dx(), bounds.Dy()
	format := metadata.ColorFormatRGB
	if !nrgba.Opaque() {
		format = metadata.ColorFormatRGBA
	}
	channels := 3
	if format == metadata.ColorFormatRGBA {
		channels = 4
	}

	pixels := make([]uint8, 0, width*height*channels)
	for row := 0; row < height; row++ {
		y := row
		if flipY {
			y = height - 1 - row
		}
		line := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		if channels == 4 {
			pixels = append(pixels, line...)
			continue
		}
		for x := 0; x < width; x++ {
			pixels = append(pixels, line[x*4], line[x*4+1], line[x*4+2])
		}
	}

	return &metadata.ImageAsset{
		Name:   path,
		Width:  uint32(width),
		Height: uint32(height),
		Format: format,
		Pixels: pixels,
	}, nil
}

func (il *ImageLoader) Load(fsys fs.FS, path string, params interface{}) (*metadata.Resource, error) {
	flipY := false
	if typedParams, ok := params.(*metadata.ImageResourceParams); ok && typedParams != nil {
		flipY = typedParams.FlipY
	}

	img, err := decodeImage(fsys, path, flipY)
	if err != nil {
		return nil, err
	}

	return &metadata.Resource{
		Name:     "image",
		FullPath: path,
		DataSize: uint64(len(img.Pixels)),
		Data:     img,
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}
