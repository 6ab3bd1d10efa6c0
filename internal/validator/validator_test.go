package validator

import (
	"context"
	"errors"
	"testing"

	"svw.info/gridsolve/internal/domain"
)

func board4(t *testing.T, rows [4][4]int) *domain.Board {
	t.Helper()
	b := domain.NewBoard(4, 2)
	for r := range rows {
		copy(b.Cells[r], rows[r][:])
	}
	return b
}

func TestValidBoard(t *testing.T) {
	b := board4(t, [4][4]int{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	ok, conf, err := New().Validate(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || len(conf) != 0 {
		t.Fatalf("valid board flagged: conflicts=%v", conf)
	}
}

func TestRowConflict(t *testing.T) {
	b := board4(t, [4][4]int{{2, 0, 2, 0}})
	ok, conf, _ := New().Validate(context.Background(), b)
	if ok || len(conf) == 0 {
		t.Fatal("row duplicate not detected")
	}
	if conf[0] != (domain.CellCoord{Row: 0, Col: 2}) {
		t.Fatalf("conflict at %v, want (0,2)", conf[0])
	}
}

func TestColConflict(t *testing.T) {
	b := board4(t, [4][4]int{{3}, {}, {}, {3}})
	ok, conf, _ := New().Validate(context.Background(), b)
	if ok || len(conf) == 0 {
		t.Fatal("column duplicate not detected")
	}
}

func TestBoxConflict(t *testing.T) {
	// (0,0) and (1,1) share the top-left 2x2 box but no row or column.
	b := board4(t, [4][4]int{{4, 0, 0, 0}, {0, 4, 0, 0}})
	ok, conf, _ := New().Validate(context.Background(), b)
	if ok || len(conf) == 0 {
		t.Fatal("box duplicate not detected")
	}
}

func TestMalformedBoardRejected(t *testing.T) {
	cases := []struct {
		name  string
		board *domain.Board
	}{
		{"ragged rows", &domain.Board{Size: 9, BoxSide: 3, Cells: [][]int{{1, 2, 3}, {4, 5}}}},
		{"missing rows", func() *domain.Board {
			b := domain.NewBoard(9, 3)
			b.Cells = b.Cells[:4]
			return b
		}()},
		{"value above size", func() *domain.Board {
			b := domain.NewBoard(4, 2)
			b.Cells[0][0] = 5
			return b
		}()},
		{"negative value", func() *domain.Board {
			b := domain.NewBoard(4, 2)
			b.Cells[3][3] = -1
			return b
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := New().Validate(context.Background(), tc.board)
			if !errors.Is(err, ErrMalformedBoard) {
				t.Fatalf("err = %v, want ErrMalformedBoard", err)
			}
		})
	}
}

func TestEmptyCellsIgnored(t *testing.T) {
	ok, conf, _ := New().Validate(context.Background(), domain.NewBoard(9, 3))
	if !ok || len(conf) != 0 {
		t.Fatalf("empty board flagged: %v", conf)
	}
}
