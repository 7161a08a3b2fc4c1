package leaderboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/plus3/rainbowdrop/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func entry(name string, score int, minutes int) leaderboard.Entry {
	return leaderboard.Entry{Name: name, Score: score, When: epoch.Add(time.Duration(minutes) * time.Minute)}
}

func TestInsertSorts(t *testing.T) {
	var board []leaderboard.Entry
	board = leaderboard.Insert(board, entry("ana", 30, 0))
	board = leaderboard.Insert(board, entry("bo", 50, 1))
	board = leaderboard.Insert(board, entry("cy", 10, 2))

	names := []string{board[0].Name, board[1].Name, board[2].Name}
	assert.Equal(t, []string{"bo", "ana", "cy"}, names)
}

func TestInsertTiesKeepEarlier(t *testing.T) {
	board := []leaderboard.Entry{entry("old", 20, 0)}

	board = leaderboard.Insert(board, entry("new", 20, 5))

	assert.Equal(t, "old", board[0].Name)
	assert.Equal(t, "new", board[1].Name)
}

func TestInsertDropsTyingNewcomerAtCutoff(t *testing.T) {
	var board []leaderboard.Entry
	for i := range leaderboard.MaxEntries {
		board = leaderboard.Insert(board, entry(fmt.Sprintf("p%d", i), 100-i*10, i))
	}
	last := board[len(board)-1]

	board = leaderboard.Insert(board, entry("late", last.Score, 60))

	require.Len(t, board, leaderboard.MaxEntries)
	assert.Equal(t, last, board[len(board)-1])
	for _, e := range board {
		assert.NotEqual(t, "late", e.Name)
	}
}

func TestInsertDoesNotWriteCallerArray(t *testing.T) {
	backing := make([]leaderboard.Entry, 1, 4)
	backing[0] = entry("ana", 10, 0)

	board := leaderboard.Insert(backing, entry("bo", 50, 1))

	assert.Equal(t, "bo", board[0].Name)
	assert.Equal(t, "ana", backing[0].Name)
	assert.Equal(t, leaderboard.Entry{}, backing[:2][1], "spare capacity is untouched")
}

func TestInsertKeepsTopTen(t *testing.T) {
	var board []leaderboard.Entry
	for i := range 15 {
		board = leaderboard.Insert(board, entry(fmt.Sprintf("p%d", i), i*10, i))
	}

	require.Len(t, board, leaderboard.MaxEntries)
	assert.Equal(t, 140, board[0].Score)
	assert.Equal(t, 50, board[len(board)-1].Score)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", "ana", "ana", nil},
		{"trimmed", "  bo\t", "bo", nil},
		{"empty", "", "", leaderboard.ErrNameRequired},
		{"blank", "   ", "", leaderboard.ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := leaderboard.Entry{Name: tt.in}.Validate()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, e.Name)
		})
	}
}

func ExampleInsert() {
	when := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	board := []leaderboard.Entry{
		{Name: "ana", Score: 40, When: when},
		{Name: "bo", Score: 25, When: when},
	}

	board = leaderboard.Insert(board, leaderboard.Entry{Name: "cy", Score: 30, When: when.Add(time.Hour)})
	for i, e := range board {
		fmt.Printf("%d. %s %d\n", i+1, e.Name, e.Score)
	}

	// Output:
	// 1. ana 40
	// 2. cy 30
	// 3. bo 25
}
