// Package pattern generates deterministic byte patterns for exercising
// flash devices: the same seed and stream always produce the same bytes,
// so a device filled with a pattern can be verified without keeping a copy.
package pattern

import "math/bits"

const mul = 6364136223846793005

// Gen is a deterministic pattern generator built on a PCG step. The zero
// value is invalid; use New.
type Gen struct {
	state uint64
	inc   uint64
}

// New returns a generator for the given seed and stream. Distinct streams
// yield unrelated sequences for the same seed.
func New(seed, stream uint64) *Gen {
	inc := stream<<1 | 1
	return &Gen{
		state: (inc+seed)*mul + inc,
		inc:   inc,
	}
}

// Uint32 returns the next 32 bits of the pattern.
func (g *Gen) Uint32() uint32 {
	// LCG step, then the XSH-RR output permutation on the old state.
	old := g.state
	g.state = old*mul + g.inc

	xorshift := uint32(((old >> 18) ^ old) >> 27)
	return bits.RotateLeft32(xorshift, int(old>>59))
}

// Intn returns an int uniformly in [0, n).
func (g *Gen) Intn(n int) int {
	return int((uint64(g.Uint32()) * uint64(n)) >> 32)
}

// Fill overwrites p with pattern bytes.
func (g *Gen) Fill(p []byte) {
	for len(p) >= 4 {
		v := g.Uint32()
		p[0], p[1], p[2], p[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
		p = p[4:]
	}
	if len(p) > 0 {
		v := g.Uint32()
		for i := range p {
			p[i] = byte(v >> (8 * uint(i)))
		}
	}
}

// Bytes returns n fresh pattern bytes.
func (g *Gen) Bytes(n int) []byte {
	p := make([]byte, n)
	g.Fill(p)
	return p
}
