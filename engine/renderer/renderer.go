package renderer

import (
	"errors"
	"fmt"
)

var ErrUnsupportedBackend = errors.New("unsupported renderer backend")

type RendererType uint8

const (
	Vulkan RendererType = iota
	DirectX
	Metal
	OpenGL
)

func (t RendererType) String() string {
	switch t {
	case Vulkan:
		return "vulkan"
	case DirectX:
		return "directx"
	case Metal:
		return "metal"
	case OpenGL:
		return "opengl"
	}
	return fmt.Sprintf("RendererType(%d)", uint8(t))
}

// ParseRendererType maps a configuration value onto a RendererType.
func ParseRendererType(name string) (RendererType, error) {
	for _, t := range []RendererType{Vulkan, DirectX, Metal, OpenGL} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBackend, name)
}

// BackendFactory builds backends by type. Concrete API packages register
// themselves so this package does not depend on them.
type BackendFactory map[RendererType]func() Backend

// New creates a backend of type t.
func (f BackendFactory) New(t RendererType) (Backend, error) {
	ctor, ok := f[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, t)
	}
	return ctor(), nil
}
