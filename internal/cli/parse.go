package cli

import (
	"fmt"

	"svw.info/gridsolve/internal/domain"
)

// maxStringSize is the largest board the one-character-per-cell encoding
// can express: digits 1..9 plus letters for 10..35.
const maxStringSize = 35

// ParseBoard builds a board from an N²-character string in row-major
// order. '.' or '0' marks an empty cell; values above 9 (16×16 grids)
// use 'a'..'z' or 'A'..'Z'.
func ParseBoard(s string, size, boxSide int) (*domain.Board, error) {
	if size > maxStringSize {
		return nil, fmt.Errorf("board strings support sizes up to %d, got %d", maxStringSize, size)
	}
	if len(s) != size*size {
		return nil, fmt.Errorf("board string must be exactly %d characters, got %d", size*size, len(s))
	}
	b := domain.NewBoard(size, boxSide)
	for i := 0; i < len(s); i++ {
		v, err := parseCell(s[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		b.Cells[i/size][i%size] = v
	}
	return b, nil
}

func parseCell(ch byte) (int, error) {
	switch {
	case ch == '.' || ch == '0':
		return 0, nil
	case ch >= '1' && ch <= '9':
		return int(ch - '0'), nil
	case ch >= 'a' && ch <= 'z':
		return int(ch-'a') + 10, nil
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 10, nil
	default:
		return 0, fmt.Errorf("invalid character %q", ch)
	}
}

// FormatBoard renders a board with box separators for terminal output.
func FormatBoard(b *domain.Board) string {
	boxW := b.Size
	if b.BoxSide > 0 {
		boxW = b.Size / b.BoxSide
	}
	var out []byte
	sep := func() {
		for i := 0; i < b.Size; i++ {
			out = append(out, '-', '-')
			if (i+1)%boxW == 0 && i != b.Size-1 {
				out = append(out, '+', '-')
			}
		}
		out = append(out, '\n')
	}
	for r := 0; r < b.Size; r++ {
		if r != 0 && b.BoxSide > 0 && r%b.BoxSide == 0 {
			sep()
		}
		for c := 0; c < b.Size; c++ {
			if c != 0 && c%boxW == 0 {
				out = append(out, '|', ' ')
			}
			out = append(out, cellRune(b.Cells[r][c]), ' ')
		}
		out = append(out, '\n')
	}
	return string(out)
}

func cellRune(v int) byte {
	switch {
	case v <= 0:
		return '.'
	case v <= 9:
		return '0' + byte(v)
	case v <= maxStringSize:
		return 'a' + byte(v) - 10
	default:
		return '?'
	}
}
