package engine

import (
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
	"github.com/spaghettifunk/pointfield/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	// Set by the engine once the renderer is up.
	SystemManager *systems.SystemManager
	State         interface{}
	FnInitialize  Initialize
	FnUpdate      Update
	FnOnResize    OnResize
	FnShutdown    Shutdown
}

type Initialize func() error

// Update advances the simulation by deltaTime seconds and returns the
// entities to draw. It runs on the simulation goroutine and the returned
// slice must not be modified afterwards.
type Update func(deltaTime float64) ([]metadata.Entity, error)
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
