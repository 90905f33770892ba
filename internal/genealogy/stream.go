package genealogy

import "math/rand/v2"

// Stream is a seedable pseudorandom stream (PCG, 128-bit state).
// A Stream is not safe for concurrent use.
type Stream struct {
	r *rand.Rand
}

// NewStream seeds a stream from a 64-bit value. The second PCG word is
// derived from the seed with a SplitMix64 finalizer so that nearby seeds do
// not share state.
func NewStream(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, mix64(seed)))}
}

// Uint32 draws a uniform 32-bit value.
func (s *Stream) Uint32() uint32 { return s.r.Uint32() }

// Uint8 draws a uniform 8-bit value from the low byte of a 32-bit draw.
func (s *Stream) Uint8() uint8 { return uint8(s.r.Uint32()) }

// Float32 draws a uniform value in [0, 1).
func (s *Stream) Float32() float32 { return s.r.Float32() }

// Index draws a 64-bit value and reduces it modulo n. n must be positive.
func (s *Stream) Index(n int) int {
	return int(s.r.Uint64() % uint64(n))
}

// Bernoulli draws a Float32 and reports whether it is below p.
func (s *Stream) Bernoulli(p float32) bool {
	return s.Float32() < p
}

func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
