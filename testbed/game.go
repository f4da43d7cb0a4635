package testbed

import (
	"github.com/spaghettifunk/pointfield/engine"
	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

const (
	worldMin float32 = -1
	worldMax float32 = 1
	// Speed bound in world units per second.
	maxSpeed float32 = 0.5
)

type TestGame struct {
	*engine.Game
}

type particle struct {
	Position math.Vec2
	Velocity math.Vec2
}

type gameState struct {
	particles []particle
	width     uint32
	height    uint32
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize() error {
	count := g.ApplicationConfig.Simulation.EntityCount
	state := g.state()
	state.particles = make([]particle, count)
	for i := range state.particles {
		state.particles[i] = particle{
			Position: math.NewVec2(math.RandomInRange(worldMin, worldMax), math.RandomInRange(worldMin, worldMax)),
			Velocity: math.NewVec2(math.RandomInRange(-maxSpeed, maxSpeed), math.RandomInRange(-maxSpeed, maxSpeed)),
		}
	}
	core.LogInfo("testbed initialized with %d particles", count)
	return nil
}

// Update moves every particle and returns a fresh snapshot of them.
func (g *TestGame) Update(deltaTime float64) ([]metadata.Entity, error) {
	state := g.state()
	step(state.particles, float32(deltaTime))

	entities := make([]metadata.Entity, len(state.particles))
	for i, p := range state.particles {
		entities[i] = metadata.Entity{Position: p.Position}
	}
	return entities, nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("testbed shutting down")
	return nil
}

// step advances particles by dt, reflecting them off the world edges.
func step(particles []particle, dt float32) {
	for i := range particles {
		p := &particles[i]
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		if p.Position.X < worldMin || p.Position.X > worldMax {
			p.Velocity.X = -p.Velocity.X
			p.Position.X = math.Clamp(p.Position.X, worldMin, worldMax)
		}
		if p.Position.Y < worldMin || p.Position.Y > worldMax {
			p.Velocity.Y = -p.Velocity.Y
			p.Position.Y = math.Clamp(p.Position.Y, worldMin, worldMax)
		}
	}
}
