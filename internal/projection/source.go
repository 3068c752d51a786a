package projection

import (
	"math/rand"
	"time"
)

// Clock anchors the dates of a run. Simulate reads it once per call.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Fluctuation yields the multiplicative noise applied to each week's loss.
type Fluctuation interface {
	Factor() float64
}

// FixedFluctuation returns the same factor every week. FixedFluctuation(1)
// disables noise entirely.
type FixedFluctuation float64

func (f FixedFluctuation) Factor() float64 { return float64(f) }

// UniformFluctuation draws factors uniformly from [1-spread, 1+spread].
// It wraps a *rand.Rand and is not safe for concurrent use.
type UniformFluctuation struct {
	rng    *rand.Rand
	spread float64
}

// NewUniformFluctuation returns ±FluctuationSpread noise drawn from rng.
func NewUniformFluctuation(rng *rand.Rand) *UniformFluctuation {
	return &UniformFluctuation{rng: rng, spread: FluctuationSpread}
}

// NewSeededFluctuation is NewUniformFluctuation over a source seeded with seed.
// Identical seeds produce identical factor sequences.
func NewSeededFluctuation(seed int64) *UniformFluctuation {
	return NewUniformFluctuation(rand.New(rand.NewSource(seed)))
}

func (u *UniformFluctuation) Factor() float64 {
	return 1 + u.rng.Float64()*2*u.spread - u.spread
}
