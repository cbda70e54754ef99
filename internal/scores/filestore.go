package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a Board persisted as a JSON array at Path.
type FileStore struct {
	Path string

	board  *Board
	saveMu sync.Mutex
}

// OpenFileStore loads the table at path. A missing file starts an empty
// table; an unreadable or corrupt one is logged and also starts empty.
func OpenFileStore(path string) *FileStore {
	s := &FileStore{Path: path, board: NewBoard(nil)}
	entries, err := readEntries(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		slog.Warn("high scores unreadable, starting empty", "path", path, "error", err)
	default:
		s.board.Replace(entries)
	}
	return s
}

func readEntries(path string) ([]HighScore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []HighScore
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}

// AddScore records a score and rewrites the file. If the write fails the
// score is still kept in memory.
func (s *FileStore) AddScore(_ context.Context, initials string, score int) error {
	if _, err := s.board.Add(initials, score); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	return nil
}

func (s *FileStore) TopScores(context.Context) ([]HighScore, error) {
	return s.board.Top(), nil
}

func (s *FileStore) save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := json.MarshalIndent(s.board.Top(), "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
