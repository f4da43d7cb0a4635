package math

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

var (
	randOnce sync.Once
	rng      *rand.Rand
	rngMu    sync.Mutex
)

func random() *rand.Rand {
	randOnce.Do(func() {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	})
	return rng
}

// Seed resets the package generator, for reproducible runs.
func Seed(seed uint64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	random().Seed(seed)
}

// RandomInRange returns a float in [min, max).
func RandomInRange(min, max float32) float32 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return min + random().Float32()*(max-min)
}

// RandomIntInRange returns an int in [min, max].
func RandomIntInRange(min, max int32) int32 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return random().Int31n(max-min+1) + min
}
