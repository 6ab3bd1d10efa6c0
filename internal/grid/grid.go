package grid

import (
	"errors"
	"fmt"

	"svw.info/gridsolve/internal/domain"
)

var (
	ErrInvalidSize = errors.New("grid size must be a positive multiple of the box side")
	ErrOutOfRange  = errors.New("cell coordinate or value out of range")
)

// Grid is the authoritative candidate state: an N×N array of candidate
// sets, one bitmask per cell. It owns state only; elimination rules live
// in the engine package.
type Grid struct {
	size    int
	boxSide int // box height; box width is size/boxSide
	cells   []domain.Candidates
}

// New constructs a grid with every cell holding the full set {1..size}.
func New(size, boxSide int) (*Grid, error) {
	if boxSide <= 0 || size <= 0 || size%boxSide != 0 {
		return nil, fmt.Errorf("%w: size=%d boxSide=%d", ErrInvalidSize, size, boxSide)
	}
	if size > 64 {
		return nil, fmt.Errorf("%w: size=%d exceeds 64", ErrInvalidSize, size)
	}
	g := &Grid{
		size:    size,
		boxSide: boxSide,
		cells:   make([]domain.Candidates, size*size),
	}
	full := domain.AllCandidates(size)
	for i := range g.cells {
		g.cells[i] = full
	}
	return g, nil
}

func (g *Grid) Size() int    { return g.size }
func (g *Grid) BoxSide() int { return g.boxSide }

// BoxWidth returns the box width, size/boxSide.
func (g *Grid) BoxWidth() int { return g.size / g.boxSide }

// At returns the candidate set of cell (r,c). Callers must pass in-range
// coordinates.
func (g *Grid) At(r, c int) domain.Candidates {
	return g.cells[r*g.size+c]
}

func (g *Grid) inRange(r, c int) bool {
	return r >= 0 && r < g.size && c >= 0 && c < g.size
}

// Assign fixes cell (r,c) to value v by collapsing its candidate set to
// {v}. It mutates state only; eliminating v from peers is the engine's
// job. Idempotent when the cell is already fixed to v.
func (g *Grid) Assign(r, c, v int) error {
	if !g.inRange(r, c) || v < 1 || v > g.size {
		return fmt.Errorf("%w: row=%d col=%d value=%d (size %d)", ErrOutOfRange, r, c, v, g.size)
	}
	g.cells[r*g.size+c] = domain.Only(v)
	return nil
}

// Eliminate removes v from the candidates of (r,c) and reports whether
// the set changed. The resulting set may be empty; detecting that as a
// contradiction is the caller's responsibility.
func (g *Grid) Eliminate(r, c, v int) bool {
	i := r*g.size + c
	before := g.cells[i]
	after := before.Without(v)
	g.cells[i] = after
	return after != before
}

// BoxOf returns the box index of cell (r,c).
func (g *Grid) BoxOf(r, c int) int {
	boxesPerRow := g.size / g.BoxWidth() // == boxSide
	return (r/g.boxSide)*boxesPerRow + c/g.BoxWidth()
}

// CellsOf returns the ordered coordinates of the unit's N cells.
// Pure index arithmetic; identical ordering on every call.
func (g *Grid) CellsOf(u domain.Unit) []domain.CellCoord {
	out := make([]domain.CellCoord, 0, g.size)
	switch u.Kind {
	case domain.RowUnit:
		for c := 0; c < g.size; c++ {
			out = append(out, domain.CellCoord{Row: u.Index, Col: c})
		}
	case domain.ColUnit:
		for r := 0; r < g.size; r++ {
			out = append(out, domain.CellCoord{Row: r, Col: u.Index})
		}
	case domain.BoxUnit:
		bw := g.BoxWidth()
		br := (u.Index / g.boxSide) * g.boxSide
		bc := (u.Index % g.boxSide) * bw
		for dr := 0; dr < g.boxSide; dr++ {
			for dc := 0; dc < bw; dc++ {
				out = append(out, domain.CellCoord{Row: br + dr, Col: bc + dc})
			}
		}
	}
	return out
}

// Units returns the three units containing cell (r,c).
func (g *Grid) Units(r, c int) [3]domain.Unit {
	return [3]domain.Unit{domain.Row(r), domain.Col(c), domain.Box(g.BoxOf(r, c))}
}

// Peers returns every cell sharing a unit with (r,c), each exactly once,
// excluding (r,c) itself.
func (g *Grid) Peers(r, c int) []domain.CellCoord {
	seen := make(map[domain.CellCoord]struct{}, 3*g.size)
	out := make([]domain.CellCoord, 0, 3*(g.size-1))
	for _, u := range g.Units(r, c) {
		for _, cc := range g.CellsOf(u) {
			if cc.Row == r && cc.Col == c {
				continue
			}
			if _, dup := seen[cc]; dup {
				continue
			}
			seen[cc] = struct{}{}
			out = append(out, cc)
		}
	}
	return out
}

// IsConsistent reports whether no cell is contradictory (empty set) and
// no fixed value repeats within any unit.
func (g *Grid) IsConsistent() bool {
	for _, cs := range g.cells {
		if cs == 0 {
			return false
		}
	}
	for _, u := range g.AllUnits() {
		var fixed domain.Candidates
		for _, cc := range g.CellsOf(u) {
			v, ok := g.At(cc.Row, cc.Col).Sole()
			if !ok {
				continue
			}
			if fixed.Has(v) {
				return false
			}
			fixed |= domain.Only(v)
		}
	}
	return true
}

// IsSolved reports whether every cell is fixed and the grid is consistent.
func (g *Grid) IsSolved() bool {
	for _, cs := range g.cells {
		if cs.Count() != 1 {
			return false
		}
	}
	return g.IsConsistent()
}

// AllUnits enumerates every row, column, and box.
func (g *Grid) AllUnits() []domain.Unit {
	out := make([]domain.Unit, 0, 3*g.size)
	for i := 0; i < g.size; i++ {
		out = append(out, domain.Row(i))
	}
	for j := 0; j < g.size; j++ {
		out = append(out, domain.Col(j))
	}
	for k := 0; k < g.size; k++ {
		out = append(out, domain.Box(k))
	}
	return out
}

// Clone returns a deep copy. Branches in search mutate their own clone,
// never the parent.
func (g *Grid) Clone() *Grid {
	cells := make([]domain.Candidates, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, boxSide: g.boxSide, cells: cells}
}

// Values exports the fixed values as a board matrix, 0 for unfixed cells.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.size)
	for r := 0; r < g.size; r++ {
		out[r] = make([]int, g.size)
		for c := 0; c < g.size; c++ {
			if v, ok := g.At(r, c).Sole(); ok {
				out[r][c] = v
			}
		}
	}
	return out
}

// FromBoard builds a grid from a boundary board, assigning every given.
// It validates geometry and ranges but not inter-cell conflicts.
func FromBoard(b *domain.Board) (*Grid, error) {
	g, err := New(b.Size, b.BoxSide)
	if err != nil {
		return nil, err
	}
	if len(b.Cells) != b.Size {
		return nil, fmt.Errorf("%w: board has %d rows, want %d", ErrOutOfRange, len(b.Cells), b.Size)
	}
	for r, row := range b.Cells {
		if len(row) != b.Size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrOutOfRange, r, len(row), b.Size)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if err := g.Assign(r, c, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
