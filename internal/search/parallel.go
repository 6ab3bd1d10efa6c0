package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"svw.info/gridsolve/internal/engine"
	"svw.info/gridsolve/internal/grid"
)

// solveParallel propagates the root, then races the root branch point's
// candidate values across workers. Each worker owns a private clone and
// searches its subtree serially; the first solution cancels siblings.
// All workers draw on the same node counter, so MaxNodes caps the total
// work rather than each branch separately. When several workers finish
// with a solution before cancellation lands, the lowest branch index
// wins so results stay deterministic even on boards with multiple
// solutions.
func (d *Driver) solveParallel(ctx context.Context, g *grid.Grid, nodes *atomic.Int64) (*grid.Grid, error) {
	if engine.Run(g) == engine.Contradiction {
		return nil, ErrNoSolution
	}
	if g.IsSolved() {
		return g, nil
	}

	r, c, cands := mrvCell(g)

	type result struct {
		idx    int
		solved *grid.Grid
		err    error
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg      sync.WaitGroup
		results = make(chan result, len(cands))
		sem     = make(chan struct{}, d.Workers)
	)

	serial := *d
	serial.Workers = 0

	for i, v := range cands {
		wg.Add(1)
		go func(idx, val int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				results <- result{idx: idx, err: ctx.Err()}
				return
			}
			if n := nodes.Add(1); d.MaxNodes > 0 && n > int64(d.MaxNodes) {
				results <- result{idx: idx, err: ErrAborted}
				return
			}
			branch := g.Clone()
			if err := branch.Assign(r, c, val); err != nil {
				results <- result{idx: idx, err: err}
				return
			}
			solved, err := serial.solve(ctx, branch, nodes)
			results <- result{idx: idx, solved: solved, err: err}
			if err == nil {
				cancel()
			}
		}(i, v)
	}
	wg.Wait()
	close(results)

	best := result{idx: len(cands), err: ErrNoSolution}
	aborted := false
	for res := range results {
		if res.err == nil {
			if best.err != nil || res.idx < best.idx {
				best = res
			}
			continue
		}
		if errors.Is(res.err, ErrAborted) {
			aborted = true
		}
	}

	if best.err == nil {
		return best.solved, nil
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	if aborted {
		return nil, ErrAborted
	}
	return nil, ErrNoSolution
}
