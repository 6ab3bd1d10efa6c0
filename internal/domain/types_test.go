package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBoardFromGivens(t *testing.T) {
	b, err := BoardFromGivens(9, 3, []Given{{Row: 0, Col: 0, Value: 5}, {Row: 8, Col: 8, Value: 9}})
	if err != nil {
		t.Fatalf("BoardFromGivens failed: %v", err)
	}
	if b.Cells[0][0] != 5 || b.Cells[8][8] != 9 {
		t.Fatalf("givens not applied: %v", b.Cells)
	}
	if got := b.Givens(); len(got) != 2 {
		t.Fatalf("Givens() = %v, want 2 entries", got)
	}
}

func TestBoardFromGivensRange(t *testing.T) {
	cases := []Given{
		{Row: -1, Col: 0, Value: 1},
		{Row: 0, Col: 9, Value: 1},
		{Row: 0, Col: 0, Value: 0},
		{Row: 0, Col: 0, Value: 10},
	}
	for _, g := range cases {
		if _, err := BoardFromGivens(9, 3, []Given{g}); err == nil {
			t.Fatalf("given %+v accepted, want error", g)
		}
	}
}

func TestBoardJSONCellsStayNumeric(t *testing.T) {
	// Cell rows must marshal as JSON number arrays, never as the base64
	// strings []byte would produce.
	b, err := BoardFromGivens(4, 2, []Given{{Row: 0, Col: 0, Value: 1}, {Row: 0, Col: 1, Value: 2}})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"cells":[[1,2,0,0],`) {
		t.Fatalf("cells not serialized as number arrays: %s", data)
	}

	var back Board
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Cells[0][1] != 2 {
		t.Fatalf("roundtrip lost cells: %v", back.Cells)
	}
}

func TestBoardClone(t *testing.T) {
	b, _ := BoardFromGivens(4, 2, []Given{{Row: 1, Col: 1, Value: 2}})
	c := b.Clone()
	c.Cells[1][1] = 4
	if b.Cells[1][1] != 2 {
		t.Fatal("mutating the clone changed the original")
	}
}
