package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandSameSeedSameSequence(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for range 100 {
		assert.Equal(t, a.Between(1, 1000), b.Between(1, 1000))
		assert.Equal(t, a.PercentChance(50), b.PercentChance(50))
	}
}

func TestRandBetweenEqualBoundsDrawsNothing(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	assert.Equal(t, 5, a.Between(5, 5))
	assert.Equal(t, a.IntN(1000), b.IntN(1000), "equal bounds must not advance the source")
}

func TestRandBetweenRange(t *testing.T) {
	r := NewRand(3)
	seen := map[int]bool{}
	for range 500 {
		v := r.Between(4, 1)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 4)
		seen[v] = true
	}
	assert.Len(t, seen, 4)
}

func TestRandPercentChanceBounds(t *testing.T) {
	r := NewRand(9)
	for range 500 {
		assert.False(t, r.PercentChance(0))
		assert.False(t, r.PercentChance(-20))
		assert.True(t, r.PercentChance(100))
		assert.True(t, r.PercentChance(250))
	}
}

func TestCryptoSeedVaries(t *testing.T) {
	assert.NotEqual(t, CryptoSeed(), CryptoSeed())
}
