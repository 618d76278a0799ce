// Package jitter derives stable pseudo-random values from record ids.
//
// Values are a pure function of (seed, id), so they can be drawn once at load
// and come out identical on every redraw and every process run.
package jitter

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Source draws deterministic values keyed by record id.
type Source struct {
	seed uint64
}

// New returns a Source for seed.
func New(seed uint64) Source {
	return Source{seed: seed}
}

// Uniform returns a value in the open interval (0, 1) for id and stream.
// Different streams give independent values for the same id.
func (s Source) Uniform(id int, stream uint64) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(id))
	binary.LittleEndian.PutUint64(buf[8:], stream)
	h := xxh3.HashSeed(buf[:], s.seed)
	// 53 high bits give every representable double in [0,1); the half step keeps 0 out.
	return (float64(h>>11) + 0.5) / (1 << 53)
}

// Normal returns a standard normal variate for id (Box-Muller).
func (s Source) Normal(id int) float64 {
	u := s.Uniform(id, 1)
	v := s.Uniform(id, 2)
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}

// Keep reports whether id belongs to a subsample drawn at rate.
func (s Source) Keep(id int, rate float64) bool {
	if rate >= 1 {
		return true
	}
	if rate <= 0 {
		return false
	}
	return s.Uniform(id, 3) < rate
}
