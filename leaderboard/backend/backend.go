// Package backend opens the leaderboard store a path asks for.
package backend

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/plus3/rainbowdrop/leaderboard"
	"github.com/plus3/rainbowdrop/leaderboard/jsonfile"
	"github.com/plus3/rainbowdrop/leaderboard/sqlite"
)

// Open picks the backend from the file extension: .db, .sqlite and .sqlite3
// select SQLite, anything else a JSON file. An empty path means the JSON
// file under the user config dir. The returned func releases the store.
func Open(path string) (leaderboard.Store, func() error, error) {
	if path == "" {
		def, err := jsonfile.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = def
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", path, err)
		}
		return store, store.Close, nil
	default:
		return jsonfile.New(path), func() error { return nil }, nil
	}
}
