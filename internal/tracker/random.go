package tracker

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the source of randomness for the simulator and verifier.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a goroutine-safe PCG source. A zero seed derives one from
// the wall clock.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
