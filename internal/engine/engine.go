// Package engine applies candidate elimination rules to a grid until
// fixpoint or contradiction. It mutates the grid in place and returns a
// status; deciding between branches is left to the search driver.
package engine

import (
	"svw.info/gridsolve/internal/domain"
	"svw.info/gridsolve/internal/grid"
)

// Status is the outcome of applying elimination rules.
type Status int

const (
	Fixpoint Status = iota
	Progressed
	Contradiction
)

func (s Status) String() string {
	switch s {
	case Fixpoint:
		return "fixpoint"
	case Progressed:
		return "progressed"
	case Contradiction:
		return "contradiction"
	}
	return "unknown"
}

// Run iterates full passes until no rule changes any cell, returning
// Fixpoint, or until a contradiction is found. Candidate sets only ever
// shrink and each hidden-single promotion strictly reduces total
// cardinality, so the loop terminates.
func Run(g *grid.Grid) Status {
	for {
		switch Pass(g) {
		case Contradiction:
			return Contradiction
		case Fixpoint:
			return Fixpoint
		}
	}
}

// Pass applies one round of naked-single elimination followed by
// hidden-single promotion across all units.
func Pass(g *grid.Grid) Status {
	changed := false

	switch eliminateFixed(g) {
	case Contradiction:
		return Contradiction
	case Progressed:
		changed = true
	}

	switch promoteHiddenSingles(g) {
	case Contradiction:
		return Contradiction
	case Progressed:
		changed = true
	}

	if changed {
		return Progressed
	}
	return Fixpoint
}

// eliminateFixed removes every fixed cell's value from the candidates of
// all its row, column, and box peers. Visiting a peer twice is harmless
// (idempotent); completeness is what matters.
func eliminateFixed(g *grid.Grid) Status {
	n := g.Size()
	changed := false
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v, ok := g.At(r, c).Sole()
			if !ok {
				continue
			}
			for _, p := range g.Peers(r, c) {
				pc := g.At(p.Row, p.Col)
				if pv, fixed := pc.Sole(); fixed {
					if pv == v {
						// Two fixed cells in one unit holding the same value.
						return Contradiction
					}
					continue
				}
				if g.Eliminate(p.Row, p.Col, v) {
					changed = true
					if g.At(p.Row, p.Col) == 0 {
						return Contradiction
					}
				}
			}
		}
	}
	if changed {
		return Progressed
	}
	return Fixpoint
}

// promoteHiddenSingles fixes, per unit, every value that has exactly one
// remaining placement. A value with no placement at all means the unit
// can never be completed.
func promoteHiddenSingles(g *grid.Grid) Status {
	view := grid.View(g)
	changed := false
	for _, u := range g.AllUnits() {
		union := view.CandidateUnionIn(u)
		for v := 1; v <= g.Size(); v++ {
			if !union.Has(v) {
				return Contradiction
			}
			spots := view.Placements(u, v)
			if len(spots) != 1 {
				continue
			}
			cc := spots[0]
			if _, fixed := g.At(cc.Row, cc.Col).Sole(); fixed {
				continue
			}
			if err := g.Assign(cc.Row, cc.Col, v); err != nil {
				return Contradiction
			}
			changed = true
		}
	}
	if changed {
		return Progressed
	}
	return Fixpoint
}

// Allowed computes the values still placeable at (r,c) given the fixed
// values of its peers, without mutating the grid. Used by the hinter.
func Allowed(g *grid.Grid, r, c int) domain.Candidates {
	allowed := domain.AllCandidates(g.Size())
	for _, p := range g.Peers(r, c) {
		if v, ok := g.At(p.Row, p.Col).Sole(); ok {
			allowed = allowed.Without(v)
		}
	}
	return allowed
}
