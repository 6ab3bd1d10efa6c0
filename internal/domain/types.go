package domain

import "fmt"

// Board is the boundary representation of a puzzle state: an N×N value
// matrix where 0 marks an unknown cell. BoxSide is the box height; box
// width is Size/BoxSide, so 9/3 gives classic 3×3 boxes and 12/3 gives
// 3×4 boxes.
type Board struct {
	Size    int     `json:"size"`
	BoxSide int     `json:"boxSide"`
	Cells   [][]int `json:"cells"`
}

// NewBoard returns an empty board of the given geometry.
func NewBoard(size, boxSide int) *Board {
	cells := make([][]int, size)
	for r := range cells {
		cells[r] = make([]int, size)
	}
	return &Board{Size: size, BoxSide: boxSide, Cells: cells}
}

// Given is one initial assignment.
type Given struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// Givens lists the board's non-empty cells in row-major order.
func (b *Board) Givens() []Given {
	var out []Given
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if v := b.Cells[r][c]; v != 0 {
				out = append(out, Given{Row: r, Col: c, Value: v})
			}
		}
	}
	return out
}

// BoardFromGivens builds a board from (row, col, value) triples. Range
// errors are reported with the offending triple; conflicting triples
// are left to the validator.
func BoardFromGivens(size, boxSide int, givens []Given) (*Board, error) {
	b := NewBoard(size, boxSide)
	for _, g := range givens {
		if g.Row < 0 || g.Row >= size || g.Col < 0 || g.Col >= size || g.Value < 1 || g.Value > size {
			return nil, fmt.Errorf("given (%d,%d)=%d out of range for size %d", g.Row, g.Col, g.Value, size)
		}
		b.Cells[g.Row][g.Col] = g.Value
	}
	return b, nil
}

// Clone returns an independent deep copy.
func (b *Board) Clone() *Board {
	out := NewBoard(b.Size, b.BoxSide)
	for r := range b.Cells {
		copy(out.Cells[r], b.Cells[r])
	}
	return out
}

// Hint describes a single logical deduction for the UI.
type Hint struct {
	Message  string       `json:"message,omitempty"`
	Cells    []CellCoord  `json:"cells,omitempty"`
	Strategy StrategyTier `json:"strategy,omitempty"`
}

// StrategyTier limits hinting/logic complexity used.
type StrategyTier int

const (
	StrategySingles StrategyTier = iota // naked/hidden singles
	StrategyPairs                       // naked/hidden pairs
	StrategyAdvanced                    // pointing/claiming, triples, etc.
)

// Puzzle is a persisted board with metadata.
type Puzzle struct {
	ID        string `json:"id,omitempty"`
	Board     Board  `json:"board"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	// Optional user metadata
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Size      int    `json:"size"`
	CreatedAt int64  `json:"createdAt"`
}
