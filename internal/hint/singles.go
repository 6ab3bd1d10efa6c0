package hint

import (
	"context"
	"fmt"

	"svw.info/gridsolve/internal/domain"
	"svw.info/gridsolve/internal/engine"
	"svw.info/gridsolve/internal/grid"
)

// Singles implements a minimal Hinter that suggests naked and hidden
// singles, computed over the candidate grid.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the first found single if max tier allows it. Naked
// singles are checked first (cheapest to explain), then hidden singles
// per unit.
func (h *Singles) Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error) {
	if max < domain.StrategySingles {
		return domain.Hint{}, false, nil
	}
	g, err := grid.FromBoard(b)
	if err != nil {
		return domain.Hint{}, false, err
	}

	n := g.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Cells[r][c] != 0 {
				continue
			}
			if v, ok := engine.Allowed(g, r, c).Sole(); ok {
				return domain.Hint{
					Message:  fmt.Sprintf("Naked single: only %d fits here", v),
					Cells:    []domain.CellCoord{{Row: r, Col: c}},
					Strategy: domain.StrategySingles,
				}, true, nil
			}
		}
	}

	// Hidden singles need eliminated candidates, not just fixed peers.
	if engine.Run(g) == engine.Contradiction {
		return domain.Hint{}, false, nil
	}
	view := grid.View(g)
	for _, u := range g.AllUnits() {
		for v := 1; v <= n; v++ {
			spots := view.Placements(u, v)
			if len(spots) != 1 {
				continue
			}
			cc := spots[0]
			if b.Cells[cc.Row][cc.Col] != 0 {
				continue
			}
			return domain.Hint{
				Message:  fmt.Sprintf("Hidden single: %d can only go here in %s", v, u),
				Cells:    []domain.CellCoord{cc},
				Strategy: domain.StrategySingles,
			}, true, nil
		}
	}
	return domain.Hint{}, false, nil
}
