package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/plus3/rainbowdrop/leaderboard"
	"github.com/plus3/rainbowdrop/leaderboard/backend"
	"github.com/plus3/rainbowdrop/leaderboard/jsonfile"
	"github.com/plus3/rainbowdrop/leaderboard/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		file string
		want any
	}{
		{"json", "scores.json", &jsonfile.Store{}},
		{"no extension", "scores", &jsonfile.Store{}},
		{"sqlite", "scores.db", &sqlite.Store{}},
		{"sqlite upper case", "SCORES.SQLITE", &sqlite.Store{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := backend.Open(filepath.Join(t.TempDir(), tt.file))
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeStore()) }()

			assert.IsType(t, tt.want, store)

			board, err := store.Record(context.Background(), leaderboard.Entry{Name: "ana", Score: 5})
			require.NoError(t, err)
			assert.Len(t, board, 1)
		})
	}
}

func TestOpenBadSQLitePath(t *testing.T) {
	_, _, err := backend.Open(filepath.Join(t.TempDir(), "missing", "dir", "scores.db"))
	assert.Error(t, err)
}
