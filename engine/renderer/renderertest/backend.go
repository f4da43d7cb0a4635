// Package renderertest provides a recording renderer.Backend for tests.
package renderertest

import (
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

var _ renderer.Backend = (*Backend)(nil)

// Call is one recorded backend invocation.
type Call struct {
	Name string
	Args []interface{}
}

type TextureState struct {
	Internal metadata.InternalFormat
	Format   metadata.ColorFormat
	Width    uint32
	Height   uint32
	Pixels   []byte
}

// Backend records every call and models just enough GL state to assert on.
type Backend struct {
	mu    sync.Mutex
	calls []Call

	nextID    uint32
	live      map[uint32]string
	locations map[uint32]map[string]int32

	// CompileFailure, when set, returns a non-empty info log to fail a compile.
	CompileFailure func(stage metadata.ShaderStage, source string) string
	// LinkFailure, when non-empty, fails every link with this log.
	LinkFailure string
	// ValidateFailure, when non-empty, is the log of a failed validation.
	// Links still succeed.
	ValidateFailure string
	// Unused names resolve to location -1 in every program.
	Unused map[string]bool

	Config         metadata.BackendConfig
	BoundProgram   uint32
	BoundArray     uint32
	BoundBuffers   map[metadata.BufferTarget]uint32
	BufferSizes    map[uint32]int
	ActiveUnit     uint32
	UnitTextures   map[uint32]uint32
	Textures       map[uint32]*TextureState
	ViewportWidth  uint32
	ViewportHeight uint32
}

func NewBackend() *Backend {
	return &Backend{
		live:         make(map[uint32]string),
		locations:    make(map[uint32]map[string]int32),
		Unused:       make(map[string]bool),
		BoundBuffers: make(map[metadata.BufferTarget]uint32),
		BufferSizes:  make(map[uint32]int),
		UnitTextures: make(map[uint32]uint32),
		Textures:     make(map[uint32]*TextureState),
	}
}

func (b *Backend) record(name string, args ...interface{}) {
	b.calls = append(b.calls, Call{Name: name, Args: args})
}

func (b *Backend) create(kind string) uint32 {
	b.nextID++
	b.live[b.nextID] = kind
	return b.nextID
}

// Calls returns a copy of the call log.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// CallsNamed returns the recorded calls of one method.
func (b *Backend) CallsNamed(name string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times name was called.
func (b *Backend) Count(name string) int {
	return len(b.CallsNamed(name))
}

// UniformWrites counts every Uniform* call.
func (b *Backend) UniformWrites() int {
	n := 0
	for _, c := range b.Calls() {
		if strings.HasPrefix(c.Name, "Uniform") {
			n++
		}
	}
	return n
}

// Reset clears the call log but keeps the modelled state.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// Live returns the number of objects of kind that were created and not deleted.
func (b *Backend) Live(kind string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, k := range b.live {
		if k == kind {
			n++
		}
	}
	return n
}

func (b *Backend) Initialize(config metadata.BackendConfig) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("Initialize", config)
	b.Config = config
	b.ViewportWidth, b.ViewportHeight = config.Width, config.Height
	return nil
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("Shutdown")
	return nil
}

func (b *Backend) Viewport(width, height uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("Viewport", width, height)
	b.ViewportWidth, b.ViewportHeight = width, height
}

func (b *Backend) Clear(flags metadata.ClearFlag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("Clear", flags)
}

func (b *Backend) CreateBuffer() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.create("buffer")
	b.record("CreateBuffer", id)
	return id
}

func (b *Backend) DeleteBuffer(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DeleteBuffer", id)
	delete(b.live, id)
	delete(b.BufferSizes, id)
}

func (b *Backend) BindBuffer(target metadata.BufferTarget, id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("BindBuffer", target, id)
	b.BoundBuffers[target] = id
}

func (b *Backend) BufferData(target metadata.BufferTarget, data []byte, usage metadata.BufferUsage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("BufferData", target, len(data), usage)
	b.BufferSizes[b.BoundBuffers[target]] = len(data)
}

func (b *Backend) CreateVertexArray() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.create("vertexarray")
	b.record("CreateVertexArray", id)
	return id
}

func (b *Backend) DeleteVertexArray(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DeleteVertexArray", id)
	delete(b.live, id)
}

func (b *Backend) BindVertexArray(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("BindVertexArray", id)
	b.BoundArray = id
}

func (b *Backend) VertexAttribPointer(pointer metadata.AttributePointer, stride uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("VertexAttribPointer", pointer, stride)
}

func (b *Backend) DrawArrays(mode metadata.DrawMode, count int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DrawArrays", mode, count)
}

func (b *Backend) DrawElements(mode metadata.DrawMode, count int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DrawElements", mode, count)
}

func (b *Backend) CreateShader(stage metadata.ShaderStage) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.create("shader")
	b.record("CreateShader", stage, id)
	return id
}

func (b *Backend) CompileShader(id uint32, source string) (bool, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("CompileShader", id)
	if b.CompileFailure != nil {
		if log := b.CompileFailure(b.stageOf(id), source); log != "" {
			return false, log
		}
	}
	return true, ""
}

func (b *Backend) stageOf(id uint32) metadata.ShaderStage {
	for i := len(b.calls) - 1; i >= 0; i-- {
		c := b.calls[i]
		if c.Name == "CreateShader" && c.Args[1].(uint32) == id {
			return c.Args[0].(metadata.ShaderStage)
		}
	}
	return metadata.ShaderStageVertex
}

func (b *Backend) DeleteShader(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DeleteShader", id)
	delete(b.live, id)
}

func (b *Backend) CreateProgram() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.create("program")
	b.locations[id] = make(map[string]int32)
	b.record("CreateProgram", id)
	return id
}

func (b *Backend) AttachShader(program, shader uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("AttachShader", program, shader)
}

func (b *Backend) DetachShader(program, shader uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DetachShader", program, shader)
}

func (b *Backend) LinkProgram(program uint32) (bool, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("LinkProgram", program)
	if b.LinkFailure != "" {
		return false, b.LinkFailure
	}
	if b.ValidateFailure != "" {
		b.record("ValidateFailed", program, b.ValidateFailure)
	}
	return true, ""
}

func (b *Backend) DeleteProgram(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DeleteProgram", id)
	delete(b.live, id)
	delete(b.locations, id)
	if b.BoundProgram == id {
		b.BoundProgram = 0
	}
}

func (b *Backend) UseProgram(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("UseProgram", id)
	b.BoundProgram = id
}

func (b *Backend) GetUniformLocation(program uint32, name string) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("GetUniformLocation", program, name)
	if b.Unused[name] {
		return -1
	}
	locs, ok := b.locations[program]
	if !ok {
		return -1
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(locs))
	locs[name] = loc
	return loc
}

func (b *Backend) uniform(name string, location int32, v interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(name, location, v)
}

func (b *Backend) Uniform1f(location int32, v float32) {
	b.uniform("Uniform1f", location, v)
}

func (b *Backend) Uniform1i(location int32, v int32) {
	b.uniform("Uniform1i", location, v)
}

func (b *Backend) Uniform1ui(location int32, v uint32) {
	b.uniform("Uniform1ui", location, v)
}

func (b *Backend) Uniform2fv(location int32, v mgl32.Vec2) {
	b.uniform("Uniform2fv", location, v)
}

func (b *Backend) Uniform3fv(location int32, v mgl32.Vec3) {
	b.uniform("Uniform3fv", location, v)
}

func (b *Backend) Uniform4fv(location int32, v mgl32.Vec4) {
	b.uniform("Uniform4fv", location, v)
}

func (b *Backend) Uniform2iv(location int32, v math.IVec2) {
	b.uniform("Uniform2iv", location, v)
}

func (b *Backend) Uniform3iv(location int32, v math.IVec3) {
	b.uniform("Uniform3iv", location, v)
}

func (b *Backend) Uniform4iv(location int32, v math.IVec4) {
	b.uniform("Uniform4iv", location, v)
}

func (b *Backend) Uniform2uiv(location int32, v math.UVec2) {
	b.uniform("Uniform2uiv", location, v)
}

func (b *Backend) Uniform3uiv(location int32, v math.UVec3) {
	b.uniform("Uniform3uiv", location, v)
}

func (b *Backend) Uniform4uiv(location int32, v math.UVec4) {
	b.uniform("Uniform4uiv", location, v)
}

func (b *Backend) UniformMatrix2fv(location int32, v mgl32.Mat2) {
	b.uniform("UniformMatrix2fv", location, v)
}

func (b *Backend) UniformMatrix3fv(location int32, v mgl32.Mat3) {
	b.uniform("UniformMatrix3fv", location, v)
}

func (b *Backend) UniformMatrix4fv(location int32, v mgl32.Mat4) {
	b.uniform("UniformMatrix4fv", location, v)
}

func (b *Backend) CreateTexture() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.create("texture")
	b.Textures[id] = &TextureState{}
	// creation and uploads bind on the active unit, as in GL
	b.UnitTextures[b.ActiveUnit] = id
	b.record("CreateTexture", id)
	return id
}

func (b *Backend) DeleteTexture(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DeleteTexture", id)
	delete(b.live, id)
	delete(b.Textures, id)
}

func (b *Backend) TexImage2D(id uint32, internal metadata.InternalFormat, format metadata.ColorFormat, width, height uint32, pixels []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("TexImage2D", id, internal, format, width, height, len(pixels))
	b.UnitTextures[b.ActiveUnit] = id
	if t, ok := b.Textures[id]; ok {
		t.Internal, t.Format, t.Width, t.Height = internal, format, width, height
		t.Pixels = append([]byte(nil), pixels...)
	}
}

func (b *Backend) ActiveTexture(unit uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("ActiveTexture", unit)
	b.ActiveUnit = unit
}

func (b *Backend) BindTexture(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("BindTexture", id)
	b.UnitTextures[b.ActiveUnit] = id
}

func (b *Backend) BindImageTexture(unit uint32, id uint32, internal metadata.InternalFormat, access metadata.ImageAccess) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("BindImageTexture", unit, id, internal, access)
}

func (b *Backend) DispatchCompute(x, y, z uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("DispatchCompute", x, y, z)
}
