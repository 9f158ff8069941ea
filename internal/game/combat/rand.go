package combat

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Dice is the single random source every combat roll draws from.
// The order of calls is observable: the same seed replays the same fight.
type Dice interface {
	// PercentChance reports whether a roll of [0,100) lands below n.
	PercentChance(n int) bool
	// Between returns a uniform integer in [a,b] (either order). No draw when a == b.
	Between(a, b int) int
	// IntN returns a uniform integer in [0,n).
	IntN(n int) int
}

// Rand is a seeded PCG-backed Dice.
// Not thread-safe: owned by the game-logic thread.
type Rand struct {
	r *rand.Rand
}

var _ Dice = (*Rand)(nil)

// NewRand creates a Rand seeded with seed.
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// PercentChance reports whether a roll of [0,100) lands below n.
// n <= 0 never succeeds, n >= 100 always does; both still consume a draw.
func (r *Rand) PercentChance(n int) bool {
	return r.r.IntN(100) < n
}

// Between returns a uniform integer in [a,b]; a may exceed b.
func (r *Rand) Between(a, b int) int {
	if a == b {
		return a
	}
	lo, hi := min(a, b), max(a, b)
	return lo + r.r.IntN(hi-lo+1)
}

// IntN returns a uniform integer in [0,n).
func (r *Rand) IntN(n int) int {
	return r.r.IntN(n)
}

// CryptoSeed returns a seed from the OS entropy source.
func CryptoSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}
