package entropy

import (
	"math"
	"math/rand/v2"
)

// Source is a seedable pseudo-random stream. Its full state can be captured
// with Snapshot and put back with Restore.
//
// A Source is not safe for concurrent use. Give each goroutine its own Fork.
type Source struct {
	seed  uint64
	pcg   *rand.PCG
	rng   *rand.Rand
	draws uint64
}

// State is an opaque snapshot of a Source: seed plus cursor.
type State struct {
	seed  uint64
	pcg   rand.PCG
	draws uint64
}

// Draws returns how many values had been drawn when the snapshot was taken.
func (st State) Draws() uint64 {
	return st.draws
}

// NewSource creates a stream from seed. A zero seed is replaced by one
// from crypto/rand.
func NewSource(seed uint64) *Source {
	if seed == 0 {
		seed = CryptoSeed()
	}
	pcg := rand.NewPCG(seed, mix(seed))
	return &Source{
		seed: seed,
		pcg:  pcg,
		rng:  rand.New(pcg),
	}
}

// Seed returns the seed the stream was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Draws returns the number of values drawn so far.
func (s *Source) Draws() uint64 {
	return s.draws
}

// Snapshot captures the current stream position.
func (s *Source) Snapshot() State {
	return State{seed: s.seed, pcg: *s.pcg, draws: s.draws}
}

// Restore rewinds (or advances) the stream to a snapshot.
func (s *Source) Restore(st State) {
	s.seed = st.seed
	*s.pcg = st.pcg
	s.draws = st.draws
}

// Fork returns an independent stream derived from this stream's seed and
// salt. Forking does not consume from s, so the same salt always yields
// the same sub-stream regardless of how far s has advanced.
func (s *Source) Fork(salt uint64) *Source {
	seed := mix(s.seed + 0x9e3779b97f4a7c15*(salt+1))
	if seed == 0 {
		seed = 1
	}
	return NewSource(seed)
}

// Isolate runs fn with the stream and then restores it to where it was
// before fn, so fn's draws are invisible to later callers.
func Isolate(s *Source, fn func()) {
	st := s.Snapshot()
	defer s.Restore(st)
	fn()
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	s.draws++
	return s.rng.Float64()
}

// Float returns a uniform value in [min, max).
func (s *Source) Float(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// IntN returns a uniform value in [0, n). Panics if n <= 0.
func (s *Source) IntN(n int) int {
	s.draws++
	return s.rng.IntN(n)
}

// Int64N returns a uniform value in [0, n). Panics if n <= 0.
func (s *Source) Int64N(n int64) int64 {
	s.draws++
	return s.rng.Int64N(n)
}

// Angle returns a uniform angle in [0, 2π) radians.
func (s *Source) Angle() float64 {
	return s.Float64() * 2 * math.Pi
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// NormFloat64 returns a standard normal value.
func (s *Source) NormFloat64() float64 {
	s.draws++
	return s.rng.NormFloat64()
}

// Subset picks k distinct indices from [0, n) without replacement, in draw
// order. k is clamped to [0, n].
func (s *Source) Subset(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: only the first k slots are settled.
	for i := 0; i < k; i++ {
		j := i + s.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
