// Package scores keeps the high-score table: validation, an in-memory top-ten
// board, a JSON file store, and an HTTP service and client around them.
package scores

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// MaxEntries is the number of scores the board keeps.
const MaxEntries = 10

// MaxInitialsLen bounds the initials a player may enter.
const MaxInitialsLen = 3

var ErrInvalidEntry = errors.New("invalid score entry")

type HighScore struct {
	Initials string `json:"initials"`
	Score    int    `json:"score"`
}

// Store is what the game needs from a leaderboard.
type Store interface {
	AddScore(ctx context.Context, initials string, score int) error
	TopScores(ctx context.Context) ([]HighScore, error)
}

// Validate rejects blank or over-long initials and negative scores.
func Validate(initials string, score int) error {
	n := utf8.RuneCountInString(initials)
	if strings.TrimSpace(initials) == "" || n > MaxInitialsLen {
		return fmt.Errorf("%w: initials %q", ErrInvalidEntry, initials)
	}
	if score < 0 {
		return fmt.Errorf("%w: score %d", ErrInvalidEntry, score)
	}
	return nil
}

// Board is an in-memory top-ten table, highest first. Earlier entries win ties.
// It is safe for concurrent use.
type Board struct {
	mu      sync.RWMutex
	entries []HighScore
}

func NewBoard(entries []HighScore) *Board {
	b := &Board{}
	b.Replace(entries)
	return b
}

// Replace swaps in a new set of entries, dropping invalid ones.
func (b *Board) Replace(entries []HighScore) {
	kept := make([]HighScore, 0, len(entries))
	for _, e := range entries {
		if Validate(e.Initials, e.Score) == nil {
			kept = append(kept, e)
		}
	}
	b.mu.Lock()
	b.entries = trim(kept)
	b.mu.Unlock()
}

// Add inserts a score and reports whether it made the table.
func (b *Board) Add(initials string, score int) (bool, error) {
	if err := Validate(initials, score); err != nil {
		return false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	// Stable ordering places the new entry after every score >= its own.
	rank := 0
	for _, e := range b.entries {
		if e.Score >= score {
			rank++
		}
	}
	b.entries = trim(append(b.entries, HighScore{Initials: initials, Score: score}))
	return rank < MaxEntries, nil
}

// Top returns a copy of the table.
func (b *Board) Top() []HighScore {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]HighScore, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Board) AddScore(_ context.Context, initials string, score int) error {
	_, err := b.Add(initials, score)
	return err
}

func (b *Board) TopScores(context.Context) ([]HighScore, error) {
	return b.Top(), nil
}

func trim(entries []HighScore) []HighScore {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}
