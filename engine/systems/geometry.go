package systems

import (
	"fmt"

	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

const DefaultSlotCount uint32 = 100

/** @brief Configuration for the geometry system. */
type GeometrySystemConfig struct {
	/** @brief The number of buffer pair slots. Zero means DefaultSlotCount. */
	MaxSlotCount uint32
	/** @brief Usage hint passed with every buffer upload. */
	Usage metadata.BufferUsage
}

/**
 * @brief One vertex buffer and one index buffer, drawn as a unit.
 */
type BufferPair struct {
	VertexBuffer uint32
	IndexBuffer  uint32
	VertexCount  int
	IndexCount   int
}

// GeometrySystem is a fixed pool of buffer pairs sharing one vertex array
// object and one attribute layout.
type GeometrySystem struct {
	config      *GeometrySystemConfig
	backend     renderer.Backend
	layout      *metadata.AttributeLayout
	vertexArray uint32
	slots       []BufferPair
}

func NewGeometrySystem(config *GeometrySystemConfig, backend renderer.Backend, layout *metadata.AttributeLayout) (*GeometrySystem, error) {
	if layout == nil {
		err := fmt.Errorf("NewGeometrySystem - an attribute layout is required")
		core.LogError(err.Error())
		return nil, err
	}
	if config.MaxSlotCount == 0 {
		config.MaxSlotCount = DefaultSlotCount
	}

	gs := &GeometrySystem{
		config:  config,
		backend: backend,
		layout:  layout,
		slots:   make([]BufferPair, config.MaxSlotCount),
	}

	gs.vertexArray = backend.CreateVertexArray()
	backend.BindVertexArray(gs.vertexArray)
	for i := range gs.slots {
		gs.slots[i].VertexBuffer = backend.CreateBuffer()
		gs.slots[i].IndexBuffer = backend.CreateBuffer()
		backend.BindBuffer(metadata.BufferTargetArray, gs.slots[i].VertexBuffer)
		gs.setAttributes()
	}
	backend.BindVertexArray(0)

	core.LogDebug("geometry system created with %d slots, stride %d", len(gs.slots), layout.Stride())
	return gs, nil
}

func (gs *GeometrySystem) setAttributes() {
	for _, p := range gs.layout.Pointers() {
		gs.backend.VertexAttribPointer(p, gs.layout.Stride())
	}
}

func (gs *GeometrySystem) slot(index int) (*BufferPair, error) {
	if index < 0 || index >= len(gs.slots) {
		return nil, &SlotOutOfRangeError{Slot: index, Capacity: len(gs.slots)}
	}
	return &gs.slots[index], nil
}

// Capacity returns the number of slots.
func (gs *GeometrySystem) Capacity() int {
	return len(gs.slots)
}

// Fill replaces the vertex data of a slot.
func (gs *GeometrySystem) Fill(index int, vertices []metadata.Vertex) error {
	s, err := gs.slot(index)
	if err != nil {
		return err
	}
	gs.backend.BindVertexArray(gs.vertexArray)
	gs.backend.BindBuffer(metadata.BufferTargetArray, s.VertexBuffer)
	gs.backend.BufferData(metadata.BufferTargetArray, metadata.VertexBytes(vertices), gs.config.Usage)
	s.VertexCount = len(vertices)
	return nil
}

// FillIndices replaces the index data of a slot.
func (gs *GeometrySystem) FillIndices(index int, indices []uint32) error {
	s, err := gs.slot(index)
	if err != nil {
		return err
	}
	gs.backend.BindVertexArray(gs.vertexArray)
	gs.backend.BindBuffer(metadata.BufferTargetElementArray, s.IndexBuffer)
	gs.backend.BufferData(metadata.BufferTargetElementArray, metadata.IndexBytes(indices), gs.config.Usage)
	s.IndexCount = len(indices)
	return nil
}

// Clear empties the vertex buffer of a slot.
func (gs *GeometrySystem) Clear(index int) error {
	return gs.Fill(index, nil)
}

// Draw issues an indexed triangle draw when the slot has indices, otherwise
// a point draw of its vertices.
func (gs *GeometrySystem) Draw(index int) error {
	s, err := gs.slot(index)
	if err != nil {
		return err
	}
	if s.VertexCount == 0 && s.IndexCount == 0 {
		return fmt.Errorf("slot %d: %w", index, ErrEmptyDraw)
	}

	gs.backend.BindVertexArray(gs.vertexArray)
	gs.backend.BindBuffer(metadata.BufferTargetArray, s.VertexBuffer)
	gs.setAttributes()
	gs.backend.BindBuffer(metadata.BufferTargetElementArray, s.IndexBuffer)

	if s.IndexCount > 0 {
		gs.backend.DrawElements(metadata.DrawModeTriangles, int32(s.IndexCount))
	} else {
		gs.backend.DrawArrays(metadata.DrawModePoints, int32(s.VertexCount))
	}
	return nil
}

func (gs *GeometrySystem) VertexCount(index int) (int, error) {
	s, err := gs.slot(index)
	if err != nil {
		return 0, err
	}
	return s.VertexCount, nil
}

func (gs *GeometrySystem) IndexCount(index int) (int, error) {
	s, err := gs.slot(index)
	if err != nil {
		return 0, err
	}
	return s.IndexCount, nil
}

/**
 * @brief Shuts down the geometry system, releasing every buffer and the vertex array.
 */
func (gs *GeometrySystem) Shutdown() error {
	gs.backend.BindVertexArray(0)
	for i := range gs.slots {
		gs.backend.DeleteBuffer(gs.slots[i].VertexBuffer)
		gs.backend.DeleteBuffer(gs.slots[i].IndexBuffer)
		gs.slots[i] = BufferPair{}
	}
	gs.backend.DeleteVertexArray(gs.vertexArray)
	gs.vertexArray = 0
	return nil
}
