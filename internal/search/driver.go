// Package search resolves grids that propagation alone cannot determine,
// by recursive backtracking over cloned grids with propagation at every
// node.
package search

import (
	"context"
	"errors"
	"sync/atomic"

	"svw.info/gridsolve/internal/engine"
	"svw.info/gridsolve/internal/grid"
)

var (
	ErrNoSolution = errors.New("no solution exists")
	ErrAborted    = errors.New("search budget exceeded")
)

// Driver runs propagate-then-search. The zero value searches serially
// with no node budget.
type Driver struct {
	// MaxNodes bounds the total number of branch attempts across all
	// workers; 0 means unlimited. Exceeding it surfaces ErrAborted,
	// which is distinct from ErrNoSolution: a solution may exist but
	// was not found in budget.
	MaxNodes int

	// Workers > 1 explores the root branch point's candidates in
	// parallel, one private clone per worker. Deeper levels stay serial.
	Workers int
}

// Solve takes ownership of g (it is mutated by propagation) and returns
// a solved grid, the number of nodes visited, or an error.
func (d *Driver) Solve(ctx context.Context, g *grid.Grid) (*grid.Grid, int, error) {
	var nodes atomic.Int64
	if d.Workers > 1 {
		solved, err := d.solveParallel(ctx, g, &nodes)
		return solved, int(nodes.Load()), err
	}
	solved, err := d.solve(ctx, g, &nodes)
	return solved, int(nodes.Load()), err
}

// solve is one node of the propagate-then-search recursion. The node
// counter is shared between workers in parallel mode, so the budget
// check sees the global total.
func (d *Driver) solve(ctx context.Context, g *grid.Grid, nodes *atomic.Int64) (*grid.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if engine.Run(g) == engine.Contradiction {
		return nil, ErrNoSolution
	}
	if g.IsSolved() {
		return g, nil
	}

	r, c, cands := mrvCell(g)
	for _, v := range cands {
		n := nodes.Add(1)
		if d.MaxNodes > 0 && n > int64(d.MaxNodes) {
			return nil, ErrAborted
		}
		branch := g.Clone()
		if err := branch.Assign(r, c, v); err != nil {
			return nil, err
		}
		solved, err := d.solve(ctx, branch, nodes)
		if err == nil {
			return solved, nil
		}
		if !errors.Is(err, ErrNoSolution) {
			return nil, err
		}
		// Branch contradicted; the clone is discarded, g is untouched.
	}
	return nil, ErrNoSolution
}

// mrvCell picks the undetermined cell with the fewest candidates,
// breaking ties by lowest (row, col) for reproducible search order.
func mrvCell(g *grid.Grid) (int, int, []int) {
	n := g.Size()
	bestR, bestC := -1, -1
	bestCount := n + 1
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			count := g.At(r, c).Count()
			if count > 1 && count < bestCount {
				bestR, bestC, bestCount = r, c, count
				if count == 2 {
					return bestR, bestC, g.At(bestR, bestC).Values()
				}
			}
		}
	}
	return bestR, bestC, g.At(bestR, bestC).Values()
}

// CountSolutions counts solutions up to limit, stopping as soon as it
// is reached. Callers checking uniqueness pass limit=2.
func (d *Driver) CountSolutions(ctx context.Context, g *grid.Grid, limit int) (int, int, error) {
	var nodes atomic.Int64
	count := 0
	err := d.count(ctx, g, limit, &count, &nodes)
	return count, int(nodes.Load()), err
}

func (d *Driver) count(ctx context.Context, g *grid.Grid, limit int, count *int, nodes *atomic.Int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if *count >= limit {
		return nil
	}
	if engine.Run(g) == engine.Contradiction {
		return nil
	}
	if g.IsSolved() {
		*count++
		return nil
	}
	r, c, cands := mrvCell(g)
	for _, v := range cands {
		n := nodes.Add(1)
		if d.MaxNodes > 0 && n > int64(d.MaxNodes) {
			return ErrAborted
		}
		branch := g.Clone()
		if err := branch.Assign(r, c, v); err != nil {
			return err
		}
		if err := d.count(ctx, branch, limit, count, nodes); err != nil {
			return err
		}
		if *count >= limit {
			return nil
		}
	}
	return nil
}
