package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"svw.info/gridsolve/internal/domain"
)

func testPuzzle() *domain.Puzzle {
	b := domain.NewBoard(9, 3)
	b.Cells[0][0] = 5
	return &domain.Puzzle{
		Board:     *b,
		Name:      "morning coffee",
		CreatedAt: 1700000000,
	}
}

func TestSaveAssignsID(t *testing.T) {
	fs := NewFS(t.TempDir())
	p := testPuzzle()
	if err := fs.Save(context.Background(), p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.ID == "" {
		t.Fatal("Save did not assign an ID")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	fs := NewFS(t.TempDir())
	p := testPuzzle()
	if err := fs.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Load(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Name != p.Name || got.Board.Size != 9 || got.Board.Cells[0][0] != 5 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFS(t.TempDir())
	if _, err := fs.Load(context.Background(), "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestListAcrossSizes(t *testing.T) {
	fs := NewFS(t.TempDir())
	p9 := testPuzzle()
	if err := fs.Save(context.Background(), p9); err != nil {
		t.Fatal(err)
	}
	p4 := &domain.Puzzle{Board: *domain.NewBoard(4, 2), Name: "mini"}
	if err := fs.Save(context.Background(), p4); err != nil {
		t.Fatal(err)
	}

	metas, err := fs.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(metas))
	}
	sizes := map[int]bool{}
	for _, m := range metas {
		sizes[m.Size] = true
	}
	if !sizes[4] || !sizes[9] {
		t.Fatalf("List sizes = %v, want 4 and 9", sizes)
	}
}
