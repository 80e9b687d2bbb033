package game

import (
	"math/rand"
	"sync"
	"time"
)

// RandomPlayer picks uniformly among the legal actions.
type RandomPlayer[S, A any] struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPlayer seeds the player with seed, or with the clock when seed is 0.
func NewRandomPlayer[S, A any](seed int64) *RandomPlayer[S, A] {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPlayer[S, A]{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer[S, A]) SelectAction(_ S, actions []A) (A, bool) {
	var zero A
	if len(actions) == 0 {
		return zero, false
	}
	p.mu.Lock()
	i := p.rng.Intn(len(actions))
	p.mu.Unlock()
	return actions[i], true
}
