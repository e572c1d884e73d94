package transform

import (
	"unicode/utf16"
)

// PRNG is a 32-bit linear congruential generator state. It is a value: each
// draw returns the value together with the next state, so a sequence is fully
// determined by its seed string.
type PRNG uint32

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	twoPow32      = 4294967296.0
)

// SeedFromString folds a string into a state with seed = seed*31 + code
// (mod 2^32) over its UTF-16 code units.
func SeedFromString(s string) PRNG {
	var seed uint32
	for _, unit := range utf16.Encode([]rune(s)) {
		seed = seed*31 + uint32(unit)
	}
	return PRNG(seed)
}

// Next advances the state and returns a uniform value in [0,1).
func (p PRNG) Next() (float64, PRNG) {
	next := uint32(p)*lcgMultiplier + lcgIncrement
	return float64(next) / twoPow32, PRNG(next)
}

// Uniform draws a value in [lo,hi).
func (p PRNG) Uniform(lo, hi float64) (float64, PRNG) {
	u, next := p.Next()
	return lo + float64(u*(hi-lo)), next
}

// IntBetween draws an integer in [lo,hi] inclusive.
func (p PRNG) IntBetween(lo, hi int64) (int64, PRNG) {
	u, next := p.Next()
	return lo + int64(u*float64(hi-lo+1)), next
}

// Sign draws -1 or +1 with equal probability.
func (p PRNG) Sign() (int64, PRNG) {
	u, next := p.Next()
	if u < 0.5 {
		return -1, next
	}
	return 1, next
}
