package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"svw.info/gridsolve/internal/domain"
)

// FS persists puzzles as one JSON file each, bucketed by grid size
// (e.g. data/9x9/<id>.json).
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func sizeDir(size int) string { return fmt.Sprintf("%dx%d", size, size) }

func (s *FS) pathFor(id string, size int) string {
	return filepath.Join(s.dir, sizeDir(size), strings.TrimSpace(id)+".json")
}

// Save writes the puzzle, assigning a UUID when the ID is empty.
func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil {
		return errors.New("invalid puzzle: nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	target := s.pathFor(p.ID, p.Board.Size)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Load looks the ID up across all size buckets, falling back to a flat
// legacy layout directly under the data dir.
func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	buckets, _ := s.buckets()
	paths := make([]string, 0, len(buckets)+1)
	for _, b := range buckets {
		paths = append(paths, filepath.Join(b, id+".json"))
	}
	paths = append(paths, filepath.Join(s.dir, id+".json"))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.Puzzle
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

// List returns lightweight metadata for every stored puzzle.
func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	dirs, err := s.buckets()
	if err != nil {
		return nil, err
	}
	dirs = append(dirs, s.dir) // legacy flat files

	for _, dir := range dirs {
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var p domain.Puzzle
			if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
				continue
			}
			out = append(out, domain.PuzzleMeta{
				ID:        p.ID,
				Name:      p.Name,
				Size:      p.Board.Size,
				CreatedAt: p.CreatedAt,
			})
		}
	}
	return out, nil
}

// buckets returns existing size subdirectories (data/4x4, data/9x9, ...).
func (s *FS) buckets() ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() && strings.Contains(e.Name(), "x") {
			out = append(out, filepath.Join(s.dir, e.Name()))
		}
	}
	return out, nil
}
