package core

import "math/rand/v2"

// RNG is a seeded random source for soak runs and generated maps. Equal
// seeds replay the same sequence.
type RNG struct {
	src *rand.Rand
}

func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Weighted picks an index with probability proportional to its weight.
// Non-positive weights are never picked; -1 means nothing could be.
func (r *RNG) Weighted(weights ...float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	x := r.src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if x < w {
			return i
		}
		x -= w
	}
	return last
}
