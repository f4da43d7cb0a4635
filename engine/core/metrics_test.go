package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameMetricsAverageAndFPS(t *testing.T) {
	m := NewFrameMetrics()

	refreshed := false
	// 100 frames of 10ms each make exactly one second.
	for i := 0; i < 100; i++ {
		if m.Update(0.010) {
			refreshed = true
		}
	}

	assert.True(t, refreshed)
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)
	assert.InDelta(t, 100.0, m.FPS(), 1e-9)
}

func TestSetLogLevel(t *testing.T) {
	prev := GetLogLevel()
	defer getLogger().SetLevel(prev)

	assert.NoError(t, SetLogLevel("warn"))
	assert.Equal(t, WarnLevel, GetLogLevel())
	assert.Error(t, SetLogLevel("loud"))
}
