package search

import (
	"context"
	"errors"
	"testing"

	"svw.info/gridsolve/internal/domain"
	"svw.info/gridsolve/internal/grid"
)

// A classic, solvable Sudoku (0 = empty).
var sample = [9][9]int{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

var sampleSolution = [9][9]int{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

func sampleGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(9, 3)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if v := sample[r][c]; v != 0 {
				if err := g.Assign(r, c, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	return g
}

func checkUnitPermutations(t *testing.T, g *grid.Grid) {
	t.Helper()
	full := domain.AllCandidates(g.Size())
	for _, u := range g.AllUnits() {
		var seen domain.Candidates
		for _, v := range grid.View(g).ValuesIn(u) {
			if seen.Has(v) {
				t.Fatalf("%s holds %d twice", u, v)
			}
			seen |= domain.Only(v)
		}
		if seen != full {
			t.Fatalf("%s is not a permutation of 1..%d", u, g.Size())
		}
	}
}

func TestSolveSamplePuzzle(t *testing.T) {
	d := &Driver{}
	solved, nodes, err := d.Solve(context.Background(), sampleGrid(t))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	got := solved.Values()
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if got[r][c] != sampleSolution[r][c] {
				t.Fatalf("cell (%d,%d) = %d, want %d", r, c, got[r][c], sampleSolution[r][c])
			}
		}
	}
	t.Logf("solved in %d nodes", nodes)
}

func TestSolveEmpty4x4(t *testing.T) {
	g, _ := grid.New(4, 2)
	d := &Driver{}
	solved, _, err := d.Solve(context.Background(), g)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !solved.IsSolved() {
		t.Fatal("result not fully solved")
	}
	checkUnitPermutations(t, solved)
}

func TestSolveDeterministic(t *testing.T) {
	d := &Driver{}
	g1, _ := grid.New(4, 2)
	g2, _ := grid.New(4, 2)
	s1, _, err1 := d.Solve(context.Background(), g1)
	s2, _, err2 := d.Solve(context.Background(), g2)
	if err1 != nil || err2 != nil {
		t.Fatalf("Solve failed: %v / %v", err1, err2)
	}
	v1, v2 := s1.Values(), s2.Values()
	for r := range v1 {
		for c := range v1[r] {
			if v1[r][c] != v2[r][c] {
				t.Fatalf("solutions differ at (%d,%d): %d vs %d", r, c, v1[r][c], v2[r][c])
			}
		}
	}
}

func TestNoSolution(t *testing.T) {
	// Row 0 forces (0,8)=9 while column 8 already holds a 9.
	g, _ := grid.New(9, 3)
	for c := 0; c < 8; c++ {
		_ = g.Assign(0, c, c+1)
	}
	_ = g.Assign(4, 8, 9)
	d := &Driver{}
	if _, _, err := d.Solve(context.Background(), g); !errors.Is(err, ErrNoSolution) {
		t.Fatalf("err = %v, want ErrNoSolution", err)
	}
}

func TestNodeBudget(t *testing.T) {
	g, _ := grid.New(9, 3)
	d := &Driver{MaxNodes: 3}
	if _, _, err := d.Solve(context.Background(), g); !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
}

func TestParallelNodeBudgetShared(t *testing.T) {
	// The budget caps total work across workers. If each branch carried
	// its own counter, nine root branches on an empty grid could burn
	// nine budgets before giving up. Every branch may make one
	// over-budget increment before it unwinds, hence the slack of 9.
	g, _ := grid.New(9, 3)
	d := &Driver{Workers: 4, MaxNodes: 5}
	_, nodes, err := d.Solve(context.Background(), g)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if slack := d.MaxNodes + 9; nodes > slack {
		t.Fatalf("visited %d nodes, want at most %d", nodes, slack)
	}
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, _ := grid.New(9, 3)
	d := &Driver{}
	if _, _, err := d.Solve(ctx, g); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestParallelSolve(t *testing.T) {
	d := &Driver{Workers: 4}
	solved, _, err := d.Solve(context.Background(), sampleGrid(t))
	if err != nil {
		t.Fatalf("parallel Solve failed: %v", err)
	}
	got := solved.Values()
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if got[r][c] != sampleSolution[r][c] {
				t.Fatalf("cell (%d,%d) = %d, want %d", r, c, got[r][c], sampleSolution[r][c])
			}
		}
	}
}

func TestParallelNoSolution(t *testing.T) {
	g, _ := grid.New(9, 3)
	for c := 0; c < 8; c++ {
		_ = g.Assign(0, c, c+1)
	}
	_ = g.Assign(4, 8, 9)
	d := &Driver{Workers: 4}
	if _, _, err := d.Solve(context.Background(), g); !errors.Is(err, ErrNoSolution) {
		t.Fatalf("err = %v, want ErrNoSolution", err)
	}
}

func TestCountSolutions(t *testing.T) {
	d := &Driver{}
	count, _, err := d.CountSolutions(context.Background(), sampleGrid(t), 2)
	if err != nil {
		t.Fatalf("CountSolutions failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("sample puzzle counted %d solutions, want 1", count)
	}

	empty, _ := grid.New(4, 2)
	count, _, err = d.CountSolutions(context.Background(), empty, 2)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("empty 4x4 counted %d solutions (limit 2), want 2", count)
	}
}
