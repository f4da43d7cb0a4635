package systems

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

type RendererSystemConfig struct {
	// The current window framebuffer size.
	Screen   metadata.Dimensions
	Geometry GeometrySystemConfig
	Textures TextureSystemConfig
}

// RendererSystem sequences one frame against the backend: clear, pack
// geometry, bind a shader, apply uniforms, draw, optionally dispatch compute.
// It owns the geometry, shader and texture systems.
type RendererSystem struct {
	backend  renderer.Backend
	geometry *GeometrySystem
	shaders  *ShaderSystem
	textures *TextureSystem
	screen   metadata.Dimensions
}

func NewRendererSystem(config *RendererSystemConfig, backend renderer.Backend, layout *metadata.AttributeLayout, shaders *ShaderSystem) (*RendererSystem, error) {
	if shaders == nil {
		err := fmt.Errorf("NewRendererSystem - %w: no shader system", ErrIncompleteShaderSet)
		core.LogError(err.Error())
		return nil, err
	}

	gs, err := NewGeometrySystem(&config.Geometry, backend, layout)
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&config.Textures, backend, config.Screen)
	if err != nil {
		_ = gs.Shutdown()
		return nil, err
	}

	return &RendererSystem{
		backend:  backend,
		geometry: gs,
		shaders:  shaders,
		textures: ts,
		screen:   config.Screen,
	}, nil
}

func (r *RendererSystem) Clear(colour, depth bool) error {
	if !colour && !depth {
		return ErrNoOpClear
	}
	flags := metadata.ClearNone
	if colour {
		flags |= metadata.ClearColour
	}
	if depth {
		flags |= metadata.ClearDepth
	}
	r.backend.Clear(flags)
	return nil
}

// Pack replaces both the vertices and the indices of slot.
func (r *RendererSystem) Pack(slot int, vertices []metadata.Vertex, indices []uint32) error {
	if err := r.geometry.Fill(slot, vertices); err != nil {
		return err
	}
	return r.geometry.FillIndices(slot, indices)
}

func (r *RendererSystem) ClearSlot(slot int) error {
	return r.geometry.Clear(slot)
}

func (r *RendererSystem) ChooseShader(id metadata.ShaderIdentifier) error {
	return r.shaders.BindShader(id)
}

func (r *RendererSystem) Uniforms(data *metadata.UniformData) error {
	return r.shaders.ApplyUniforms(data, r.textures)
}

// Render draws slot. The slot must hold vertices.
func (r *RendererSystem) Render(slot int) error {
	count, err := r.geometry.VertexCount(slot)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("slot %d: %w", slot, ErrEmptyDraw)
	}
	return r.geometry.Draw(slot)
}

// DispatchCompute runs the bound compute program with the named texture
// bound as write-only image unit 0.
func (r *RendererSystem) DispatchCompute(textureName string, x, y, z uint32) error {
	id, ok := r.shaders.BoundShader()
	if !ok {
		return ErrNoBoundShader
	}
	if p, _ := r.shaders.program(id); p.Type() != metadata.ProgramTypeCompute {
		return fmt.Errorf("%w: %s", ErrNotComputeShader, p.Name())
	}
	t, err := r.textures.Get(textureName)
	if err != nil {
		return err
	}
	r.backend.BindImageTexture(0, t.ID(), t.Config().InternalFormat, metadata.ImageAccessWriteOnly)
	r.backend.DispatchCompute(x, y, z)
	return nil
}

// CreateComputeTarget registers a float texture for compute output under a
// generated name. Nil dims makes it track the screen.
func (r *RendererSystem) CreateComputeTarget(dims *metadata.Dimensions) (string, error) {
	name := fmt.Sprintf("compute-%s", uuid.NewString())
	_, err := r.textures.Create(metadata.TextureConfig{
		Name:           name,
		Format:         metadata.ColorFormatRGBA,
		InternalFormat: metadata.InternalFormatRGBA32F,
		Dimensions:     dims,
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// AddImage registers a fixed size texture holding image.
func (r *RendererSystem) AddImage(image *metadata.ImageAsset) error {
	expected := image.InternalFormat().ImageSize(image.Width, image.Height)
	if len(image.Pixels) != expected {
		return &SizeMismatchError{Expected: expected, Actual: len(image.Pixels)}
	}
	t, err := r.textures.Create(metadata.TextureConfig{
		Name:           image.Name,
		Format:         image.Format,
		InternalFormat: image.InternalFormat(),
		Dimensions:     &metadata.Dimensions{Width: image.Width, Height: image.Height},
	})
	if err != nil {
		return err
	}
	return t.Fill(image.Pixels)
}

func (r *RendererSystem) UpdateScreenDimensions(dims metadata.Dimensions) {
	r.screen = dims
	r.backend.Viewport(dims.Width, dims.Height)
	r.textures.UpdateScreenDimensions(dims)
}

func (r *RendererSystem) ScreenDimensions() metadata.Dimensions {
	return r.screen
}

func (r *RendererSystem) ActiveShaderName() string {
	return r.shaders.ActiveShaderName()
}

func (r *RendererSystem) ShaderMetadata() []metadata.ShaderMetadata {
	return r.shaders.ShaderMetadata()
}

func (r *RendererSystem) TextureMetadata() map[string]metadata.TextureMetadata {
	return r.textures.TextureMetadata()
}

func (r *RendererSystem) SlotCount() int {
	return r.geometry.Capacity()
}

func (r *RendererSystem) Shaders() *ShaderSystem {
	return r.shaders
}

func (r *RendererSystem) Textures() *TextureSystem {
	return r.textures
}

// Shutdown releases programs, buffers and textures. The backend itself is
// left to the caller.
func (r *RendererSystem) Shutdown() error {
	if err := r.shaders.Shutdown(); err != nil {
		return err
	}
	if err := r.geometry.Shutdown(); err != nil {
		return err
	}
	return r.textures.Shutdown()
}
