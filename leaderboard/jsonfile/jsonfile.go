// Package jsonfile stores a leaderboard as a JSON array in a single file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/plus3/rainbowdrop/leaderboard"
)

type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store backed by path. The file is created on first Record.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath is scores.json under the user's config directory.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(root, "rainbowdrop", "scores.json"), nil
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the board. A missing file is an empty board.
func (s *Store) Load(ctx context.Context) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]leaderboard.Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []leaderboard.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	var entries []leaderboard.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode scores %s: %w", s.path, err)
	}
	leaderboard.Sort(entries)
	return entries, nil
}

func (s *Store) Record(ctx context.Context, e leaderboard.Entry) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := e.Validate()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	entries = leaderboard.Insert(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create scores dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write scores: %w", err)
	}
	return entries, nil
}
