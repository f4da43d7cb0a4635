package systems

import (
	"fmt"

	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

/**
 * @brief A single GPU image. Screen sized textures take their dimensions
 * from the screen at creation time.
 */
type Texture struct {
	backend renderer.Backend
	config  metadata.TextureConfig
	id      uint32
	width   uint32
	height  uint32
}

// NewTexture allocates uninitialized storage for config.
func NewTexture(backend renderer.Backend, config metadata.TextureConfig, screen metadata.Dimensions) *Texture {
	dims := screen
	if config.Dimensions != nil {
		dims = *config.Dimensions
	}

	t := &Texture{
		backend: backend,
		config:  config,
		id:      backend.CreateTexture(),
		width:   dims.Width,
		height:  dims.Height,
	}
	backend.TexImage2D(t.id, config.InternalFormat, config.Format, t.width, t.height, nil)
	return t
}

// Fill replaces the whole image. pixels must hold exactly one texel per pixel.
func (t *Texture) Fill(pixels []byte) error {
	expected := t.config.InternalFormat.ImageSize(t.width, t.height)
	if len(pixels) != expected {
		return &SizeMismatchError{Expected: expected, Actual: len(pixels)}
	}
	t.backend.TexImage2D(t.id, t.config.InternalFormat, t.config.Format, t.width, t.height, pixels)
	return nil
}

func (t *Texture) ID() uint32 {
	return t.id
}

func (t *Texture) Name() string {
	return t.config.Name
}

func (t *Texture) Config() metadata.TextureConfig {
	return t.config
}

func (t *Texture) Dimensions() metadata.Dimensions {
	return metadata.Dimensions{Width: t.width, Height: t.height}
}

func (t *Texture) Metadata() metadata.TextureMetadata {
	return metadata.TextureMetadata{
		ID:             t.id,
		Name:           t.config.Name,
		Format:         t.config.Format,
		InternalFormat: t.config.InternalFormat,
		Width:          t.width,
		Height:         t.height,
		ScreenSized:    t.config.ScreenSized(),
	}
}

func (t *Texture) Destroy() {
	if t.id != metadata.InvalidID {
		t.backend.DeleteTexture(t.id)
		t.id = metadata.InvalidID
	}
}

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be registered at once. */
	MaxTextureCount uint32
}

// TextureSystem is the name keyed texture registry.
type TextureSystem struct {
	config   *TextureSystemConfig
	backend  renderer.Backend
	textures []*Texture
	lookup   map[string]int
	screen   metadata.Dimensions
}

func NewTextureSystem(config *TextureSystemConfig, backend renderer.Backend, screen metadata.Dimensions) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}

	return &TextureSystem{
		config:  config,
		backend: backend,
		lookup:  make(map[string]int),
		screen:  screen,
	}, nil
}

// Add registers t under its name.
func (ts *TextureSystem) Add(t *Texture) error {
	if _, ok := ts.lookup[t.Name()]; ok {
		return &DuplicateNameError{Name: t.Name()}
	}
	if uint32(len(ts.textures)) >= ts.config.MaxTextureCount {
		return fmt.Errorf("texture system is full (%d textures), cannot add %q", ts.config.MaxTextureCount, t.Name())
	}
	ts.lookup[t.Name()] = len(ts.textures)
	ts.textures = append(ts.textures, t)
	return nil
}

// Create allocates and registers a texture. Nothing is allocated for a duplicate name.
func (ts *TextureSystem) Create(config metadata.TextureConfig) (*Texture, error) {
	if ts.Contains(config.Name) {
		return nil, &DuplicateNameError{Name: config.Name}
	}
	t := NewTexture(ts.backend, config, ts.screen)
	if err := ts.Add(t); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

func (ts *TextureSystem) Get(name string) (*Texture, error) {
	i, ok := ts.lookup[name]
	if !ok {
		return nil, &TextureNotFoundError{Name: name}
	}
	return ts.textures[i], nil
}

func (ts *TextureSystem) Fill(name string, pixels []byte) error {
	t, err := ts.Get(name)
	if err != nil {
		return err
	}
	return t.Fill(pixels)
}

func (ts *TextureSystem) Contains(name string) bool {
	_, ok := ts.lookup[name]
	return ok
}

func (ts *TextureSystem) ScreenDimensions() metadata.Dimensions {
	return ts.screen
}

// UpdateScreenDimensions recreates every screen sized texture at dims, in place.
func (ts *TextureSystem) UpdateScreenDimensions(dims metadata.Dimensions) {
	ts.screen = dims
	for i, t := range ts.textures {
		if !t.config.ScreenSized() {
			continue
		}
		t.Destroy()
		ts.textures[i] = NewTexture(ts.backend, t.config, dims)
	}
}

// TextureMetadata describes every registered texture, keyed by name.
func (ts *TextureSystem) TextureMetadata() map[string]metadata.TextureMetadata {
	out := make(map[string]metadata.TextureMetadata, len(ts.textures))
	for _, t := range ts.textures {
		out[t.Name()] = t.Metadata()
	}
	return out
}

func (ts *TextureSystem) Shutdown() error {
	for _, t := range ts.textures {
		t.Destroy()
	}
	ts.textures = nil
	ts.lookup = make(map[string]int)
	return nil
}
