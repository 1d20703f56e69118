package game

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// ChaChaRNG is a ChaCha8 stream seeded from the operating system.
// Safe for concurrent use.
type ChaChaRNG struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRNG() *ChaChaRNG {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("game: can't seed rng: " + err.Error())
	}
	return &ChaChaRNG{rnd: rand.New(rand.NewChaCha8(seed))}
}

func (r *ChaChaRNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}
