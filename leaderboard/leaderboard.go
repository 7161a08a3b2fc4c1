// Package leaderboard keeps the top scores of finished sessions.
package leaderboard

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

// MaxEntries is how many scores a board keeps.
const MaxEntries = 10

var ErrNameRequired = errors.New("player name is required")

type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	When  time.Time `json:"when"`
}

// Validate trims the name and rejects entries without one.
func (e Entry) Validate() (Entry, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return e, ErrNameRequired
	}
	return e, nil
}

// Store persists a board.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	// Record adds e and returns the resulting board.
	Record(ctx context.Context, e Entry) ([]Entry, error)
}

// Insert returns a copy of entries with e added, sorted by score and cut to
// MaxEntries. Among equal scores the earlier entry ranks first, so a new
// entry tying the last place is the one dropped.
func Insert(entries []Entry, e Entry) []Entry {
	entries = append(slices.Clone(entries), e)
	Sort(entries)
	if len(entries) > MaxEntries {
		return entries[:MaxEntries]
	}
	return entries
}

// Sort orders entries by score, then oldest first. Entries that tie on both
// keep their order.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.When.Compare(b.When)
	})
}
