// Package rng provides the seeded random source behind fractal generation.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is a deterministic PCG-backed random source.
type Source struct {
	seed uint64
	r    *rand.Rand
}

// New returns a source for seed. Seed 0 picks one from the clock.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed in use, useful for reproducing a tree.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Range returns a uniform value in [min, max]. A reversed range is swapped.
func (s *Source) Range(min, max float32) float32 {
	if max < min {
		min, max = max, min
	}
	return min + s.r.Float32()*(max-min)
}

// Float32 returns a uniform value in [0, 1).
func (s *Source) Float32() float32 {
	return s.r.Float32()
}

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	return s.r.IntN(n)
}
