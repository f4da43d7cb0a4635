package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

var (
	ErrNoBoundShader       = errors.New("no shader bound")
	ErrIncompleteShaderSet = errors.New("incomplete shader set")
	ErrNoOpClear           = errors.New("clear called with neither colour nor depth")
	ErrEmptyDraw           = errors.New("draw of a slot with no geometry")
	ErrUnknownShader       = errors.New("unknown shader identifier")
	ErrNotComputeShader    = errors.New("bound shader is not a compute program")
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
)

type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read shader source %s: %s", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

type CompileError struct {
	Stage metadata.ShaderStage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader %s: %s", e.Stage, e.Path, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

type UnknownUniformError struct {
	Name string
}

func (e *UnknownUniformError) Error() string {
	return fmt.Sprintf("unknown uniform %q", e.Name)
}

type TextureNotFoundError struct {
	Name string
}

func (e *TextureNotFoundError) Error() string {
	return fmt.Sprintf("texture %q not found", e.Name)
}

type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("texture %q already registered", e.Name)
}

type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("texture data size mismatch: expected %d bytes, got %d", e.Expected, e.Actual)
}

type SlotOutOfRangeError struct {
	Slot     int
	Capacity int
}

func (e *SlotOutOfRangeError) Error() string {
	return fmt.Sprintf("slot %d out of range, pool capacity is %d", e.Slot, e.Capacity)
}
