package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// FileStore persists the cart as a JSON blob on disk, the counterpart of the
// browser's localStorage entry. A missing file means an empty cart.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *FileStore) Save(lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// MemoryStore keeps the blob in memory. Used by tests and short-lived
// sessions that do not need reload persistence.
type MemoryStore struct {
	lines []Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]Line, error) {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

func (s *MemoryStore) Save(lines []Line) error {
	s.lines = make([]Line, len(lines))
	copy(s.lines, lines)
	return nil
}
