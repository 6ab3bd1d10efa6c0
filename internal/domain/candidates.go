package domain

import "math/bits"

// Candidates is the set of values still possible for a cell, one bit per
// value: bit v-1 set means value v is still a candidate. A single machine
// word covers every supported grid size (N <= 64).
type Candidates uint64

// AllCandidates returns the full set {1..n}.
func AllCandidates(n int) Candidates {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return ^Candidates(0)
	}
	return Candidates(1)<<n - 1
}

// Only returns the singleton set {v}.
func Only(v int) Candidates { return Candidates(1) << (v - 1) }

// Has reports whether v is in the set.
func (c Candidates) Has(v int) bool {
	return v >= 1 && v <= 64 && c&Only(v) != 0
}

// Without returns the set with v removed.
func (c Candidates) Without(v int) Candidates { return c &^ Only(v) }

// Count returns the set's cardinality.
func (c Candidates) Count() int { return bits.OnesCount64(uint64(c)) }

// Sole returns the single member of a one-element set.
// ok is false when the set does not have exactly one member.
func (c Candidates) Sole() (v int, ok bool) {
	if c.Count() != 1 {
		return 0, false
	}
	return bits.TrailingZeros64(uint64(c)) + 1, true
}

// Values returns the members in ascending order.
func (c Candidates) Values() []int {
	out := make([]int, 0, c.Count())
	for m := uint64(c); m != 0; m &= m - 1 {
		out = append(out, bits.TrailingZeros64(m)+1)
	}
	return out
}
