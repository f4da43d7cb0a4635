package views

import (
	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
	"github.com/spaghettifunk/pointfield/engine/systems"
)

// The slot every world frame is packed into.
const worldSlot = 0

type WorldViewConfig struct {
	// Added to every entity position.
	Offset    math.Vec2
	Colour    [3]float32
	PointSize float32
	Shader    metadata.ShaderIdentifier
}

func DefaultWorldViewConfig() WorldViewConfig {
	return WorldViewConfig{
		Offset:    math.NewVec2(0.5, 0.5),
		Colour:    [3]float32{1, 0, 0},
		PointSize: 5,
		Shader:    metadata.ShaderDefault,
	}
}

// WorldView draws a snapshot of entities as points.
type WorldView struct {
	config   WorldViewConfig
	renderer *systems.RendererSystem
}

func NewWorldView(config WorldViewConfig, r *systems.RendererSystem) *WorldView {
	return &WorldView{
		config:   config,
		renderer: r,
	}
}

// BuildVertices turns entities into one point vertex each.
func (v *WorldView) BuildVertices(entities []metadata.Entity) []metadata.Vertex {
	vertices := make([]metadata.Vertex, len(entities))
	for i, e := range entities {
		p := e.Position.Add(v.config.Offset)
		vertices[i] = metadata.Vertex{
			X: p.X,
			Y: p.Y,
			R: v.config.Colour[0],
			G: v.config.Colour[1],
			B: v.config.Colour[2],
		}
	}
	return vertices
}

// RenderFrame clears the screen and draws entities. An empty snapshot only clears.
func (v *WorldView) RenderFrame(entities []metadata.Entity) error {
	if err := v.renderer.Clear(true, true); err != nil {
		return err
	}
	if len(entities) == 0 {
		return nil
	}

	if err := v.renderer.Pack(worldSlot, v.BuildVertices(entities), nil); err != nil {
		return err
	}
	if err := v.renderer.ChooseShader(v.config.Shader); err != nil {
		return err
	}
	uniforms := metadata.NewUniformData().Float("uPointSize", v.config.PointSize)
	if err := v.renderer.Uniforms(uniforms); err != nil {
		// Missing uniforms do not stop the draw.
		core.LogDebug("world view: %s", err)
	}
	return v.renderer.Render(worldSlot)
}

func (v *WorldView) OnResize(width, height uint32) {
	v.renderer.UpdateScreenDimensions(metadata.Dimensions{Width: width, Height: height})
}

// OnDestroy empties the world slot.
func (v *WorldView) OnDestroy() error {
	return v.renderer.ClearSlot(worldSlot)
}
