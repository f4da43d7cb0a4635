package engine

import (
	"context"
	"time"

	"github.com/spaghettifunk/pointfield/engine/containers"
	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

// Simulation steps a game on its own goroutine and publishes each
// resulting snapshot to a most-recent-wins mailbox.
type Simulation struct {
	tickRate  float64
	update    Update
	snapshots *containers.Mailbox[[]metadata.Entity]
	// Called once if update fails; the loop has already stopped.
	onFailure func(err error)
}

func NewSimulation(tickRate float64, update Update, snapshots *containers.Mailbox[[]metadata.Entity], onFailure func(err error)) *Simulation {
	return &Simulation{
		tickRate:  tickRate,
		update:    update,
		snapshots: snapshots,
		onFailure: onFailure,
	}
}

// Run ticks until ctx is cancelled or update fails.
func (s *Simulation) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / s.tickRate))
	defer ticker.Stop()

	last := time.Now()
	windowStart := last
	ticks := 0

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now

			entities, err := s.update(delta)
			if err != nil {
				core.LogError("simulation update failed: %s", err)
				if s.onFailure != nil {
					s.onFailure(err)
				}
				return
			}
			s.snapshots.Post(entities)

			ticks++
			if elapsed := now.Sub(windowStart); elapsed >= time.Second {
				core.LogDebug("simulation: %.1f ticks/s", float64(ticks)/elapsed.Seconds())
				ticks = 0
				windowStart = now
			}
		}
	}
}
