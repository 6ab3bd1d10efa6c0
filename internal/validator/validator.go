package validator

import (
	"context"
	"errors"
	"fmt"

	"svw.info/gridsolve/internal/domain"
)

// ErrMalformedBoard reports a board whose cell matrix does not match its
// declared geometry or carries values outside 1..Size.
var ErrMalformedBoard = errors.New("malformed board")

// FastValidator scans a board for duplicate fixed values within any row,
// column, or box using one bitmask per unit. It never looks at
// candidates; the engine handles candidate-level contradictions.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	n := b.Size
	if err := checkShape(b); err != nil {
		return false, nil, err
	}
	boxW := 0
	if b.BoxSide > 0 {
		boxW = n / b.BoxSide
	}
	conf := make([]domain.CellCoord, 0, 8)

	// rows
	for r := 0; r < n; r++ {
		var m domain.Candidates
		for c := 0; c < n; c++ {
			val := b.Cells[r][c]
			if val == 0 {
				continue
			}
			if m.Has(val) {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= domain.Only(val)
		}
	}
	// cols
	for c := 0; c < n; c++ {
		var m domain.Candidates
		for r := 0; r < n; r++ {
			val := b.Cells[r][c]
			if val == 0 {
				continue
			}
			if m.Has(val) {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= domain.Only(val)
		}
	}
	// boxes
	if boxW > 0 {
		for br := 0; br < n; br += b.BoxSide {
			for bc := 0; bc < n; bc += boxW {
				var m domain.Candidates
				for dr := 0; dr < b.BoxSide; dr++ {
					for dc := 0; dc < boxW; dc++ {
						val := b.Cells[br+dr][bc+dc]
						if val == 0 {
							continue
						}
						if m.Has(val) {
							conf = append(conf, domain.CellCoord{Row: br + dr, Col: bc + dc})
						}
						m |= domain.Only(val)
					}
				}
			}
		}
	}
	return len(conf) == 0, conf, nil
}

// checkShape rejects boards whose matrix cannot be scanned safely:
// wrong row count, ragged rows, or out-of-range values.
func checkShape(b *domain.Board) error {
	if b.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrMalformedBoard, b.Size)
	}
	if len(b.Cells) != b.Size {
		return fmt.Errorf("%w: %d rows, want %d", ErrMalformedBoard, len(b.Cells), b.Size)
	}
	for r, row := range b.Cells {
		if len(row) != b.Size {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, r, len(row), b.Size)
		}
		for c, val := range row {
			if val < 0 || val > b.Size {
				return fmt.Errorf("%w: cell (%d,%d) value %d out of range 1..%d", ErrMalformedBoard, r, c, val, b.Size)
			}
		}
	}
	return nil
}
