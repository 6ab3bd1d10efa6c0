package grid

import "svw.info/gridsolve/internal/domain"

// UnitView is a read-only projection over one grid. The propagation
// engine and the hinter consume units through it instead of reaching
// into grid internals.
type UnitView struct {
	g *Grid
}

// View returns a read projection of g.
func View(g *Grid) UnitView { return UnitView{g: g} }

// ValuesIn returns the fixed values currently present in the unit, in
// cell order. Used for duplicate detection.
func (v UnitView) ValuesIn(u domain.Unit) []int {
	out := make([]int, 0, v.g.Size())
	for _, cc := range v.g.CellsOf(u) {
		if val, ok := v.g.At(cc.Row, cc.Col).Sole(); ok {
			out = append(out, val)
		}
	}
	return out
}

// CandidateUnionIn returns the union of all candidate sets in the unit.
// A value missing from the union can no longer be placed anywhere in the
// unit.
func (v UnitView) CandidateUnionIn(u domain.Unit) domain.Candidates {
	var union domain.Candidates
	for _, cc := range v.g.CellsOf(u) {
		union |= v.g.At(cc.Row, cc.Col)
	}
	return union
}

// Placements returns, for value val, the coordinates of the unit's cells
// that still hold val as a candidate.
func (v UnitView) Placements(u domain.Unit, val int) []domain.CellCoord {
	var out []domain.CellCoord
	for _, cc := range v.g.CellsOf(u) {
		if v.g.At(cc.Row, cc.Col).Has(val) {
			out = append(out, cc)
		}
	}
	return out
}
