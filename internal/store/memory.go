// internal/store/memory.go
//
// Finished-game archive.
// Only completed results are stored; live room and game state never is.
//
// Characteristics of the in-memory implementation:
//   - Newest result first, capped at a fixed number of entries.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PlayerScore is one line of a final scoreboard.
type PlayerScore struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Result is the archived outcome of one game.
type Result struct {
	GameID     string        `json:"gameId"`
	RoomID     string        `json:"roomId"`
	RoomCode   string        `json:"roomCode"`
	Rounds     int           `json:"rounds"`
	WinnerID   string        `json:"winnerId,omitempty"`
	WinnerName string        `json:"winnerName,omitempty"`
	Scores     []PlayerScore `json:"scores"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// Archive persists finished games.
type Archive interface {
	// Save records r. Saving the same GameID twice keeps the first copy.
	Save(ctx context.Context, r Result) error

	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]Result, error)
}

// clampLimit maps a caller-supplied limit into [1, MaxLimit].
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

type memory struct {
	mu      sync.RWMutex // guards results and seen
	results []Result     // newest first
	seen    map[string]bool
	max     int
}

// NewMemoryArchive keeps the last max results in memory.
func NewMemoryArchive(max int) Archive {
	if max <= 0 {
		max = MaxLimit
	}
	return &memory{seen: make(map[string]bool), max: max}
}

func (m *memory) Save(ctx context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[r.GameID] {
		return nil
	}
	m.seen[r.GameID] = true
	m.results = append([]Result{r}, m.results...)
	if len(m.results) > m.max {
		for _, old := range m.results[m.max:] {
			delete(m.seen, old.GameID)
		}
		m.results = m.results[:m.max]
	}
	return nil
}

func (m *memory) Recent(ctx context.Context, limit int) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit = clampLimit(limit)
	if limit > len(m.results) {
		limit = len(m.results)
	}
	return append([]Result{}, m.results[:limit]...), nil
}
