package jitter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuesAreStable(t *testing.T) {
	a, b := New(109787), New(109787)
	for id := 0; id < 100; id++ {
		assert.Equal(t, a.Normal(id), b.Normal(id))
		assert.Equal(t, a.Keep(id, 0.3), b.Keep(id, 0.3))
	}
	assert.NotEqual(t, New(1).Uniform(5, 1), New(2).Uniform(5, 1))
}

func TestUniformRange(t *testing.T) {
	s := New(42)
	for id := 0; id < 1000; id++ {
		u := s.Uniform(id, 1)
		assert.Greater(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}

func TestNormalMoments(t *testing.T) {
	s := New(7)
	const n = 20000
	var sum, sumSq float64
	for id := 0; id < n; id++ {
		x := s.Normal(id)
		assert.False(t, math.IsNaN(x))
		sum += x
		sumSq += x * x
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, variance, 0.05)
}

func TestKeepRate(t *testing.T) {
	s := New(3)
	kept := 0
	for id := 0; id < 10000; id++ {
		if s.Keep(id, 0.3) {
			kept++
		}
	}
	assert.InDelta(t, 3000, kept, 200)
	assert.True(t, s.Keep(1, 1))
	assert.False(t, s.Keep(1, 0))
}
