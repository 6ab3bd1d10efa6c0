// Package solver composes validation, grid construction, and the search
// driver into the single solve entry point behind ports.Solver.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"svw.info/gridsolve/internal/domain"
	"svw.info/gridsolve/internal/grid"
	"svw.info/gridsolve/internal/ports"
	"svw.info/gridsolve/internal/search"
	"svw.info/gridsolve/internal/validator"
)

var (
	// ErrInvalidInput marks malformed boards and givens that conflict
	// before any propagation runs.
	ErrInvalidInput = errors.New("invalid puzzle input")
	// ErrNoSolution is a normal outcome: every branch was exhausted.
	ErrNoSolution = errors.New("puzzle has no solution")
	// ErrSearchAborted means the node budget ran out; a solution may
	// still exist.
	ErrSearchAborted = errors.New("search aborted: node budget exceeded")
)

// PropagationSolver implements ports.Solver with the propagate-then-search
// engine.
type PropagationSolver struct {
	driver    *search.Driver
	validator ports.Validator
}

// Option configures a PropagationSolver.
type Option func(*PropagationSolver)

// WithMaxNodes bounds search to n branch attempts (0 = unlimited).
func WithMaxNodes(n int) Option {
	return func(s *PropagationSolver) { s.driver.MaxNodes = n }
}

// WithWorkers races the root branch point across n workers when n > 1.
func WithWorkers(n int) Option {
	return func(s *PropagationSolver) { s.driver.Workers = n }
}

func New(opts ...Option) *PropagationSolver {
	s := &PropagationSolver{
		driver:    &search.Driver{},
		validator: validator.New(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Solve validates the board, seeds a candidate grid from its givens, and
// searches for a solution.
func (s *PropagationSolver) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()

	g, err := s.prepare(ctx, b)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}

	solved, nodes, err := s.driver.Solve(ctx, g)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err != nil {
		switch {
		case errors.Is(err, search.ErrNoSolution):
			return nil, st, ErrNoSolution
		case errors.Is(err, search.ErrAborted):
			return nil, st, ErrSearchAborted
		default:
			return nil, st, err
		}
	}
	out := &domain.Board{Size: b.Size, BoxSide: b.BoxSide, Cells: solved.Values()}
	return out, st, nil
}

// Unique reports whether the board has exactly one solution, counting
// solutions up to 2.
func (s *PropagationSolver) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	start := time.Now()

	g, err := s.prepare(ctx, b)
	if err != nil {
		return false, ports.Stats{Duration: time.Since(start)}, err
	}

	count, nodes, err := s.driver.CountSolutions(ctx, g, 2)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err != nil {
		if errors.Is(err, search.ErrAborted) {
			return false, st, ErrSearchAborted
		}
		return false, st, err
	}
	return count == 1, st, nil
}

// prepare fails fast on malformed or self-conflicting input and builds
// the initial candidate grid.
func (s *PropagationSolver) prepare(ctx context.Context, b *domain.Board) (*grid.Grid, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil board", ErrInvalidInput)
	}
	// Geometry and range checks first; the duplicate scan assumes a
	// well-formed matrix.
	g, err := grid.FromBoard(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	ok, conflicts, err := s.validator.Validate(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: conflicting givens at %v", ErrInvalidInput, conflicts)
	}
	return g, nil
}
