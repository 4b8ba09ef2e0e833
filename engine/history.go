package engine

import (
	"sync"

	"simon-piano/game"

	"github.com/google/uuid"
)

// Record is one finished game
type Record struct {
	ID      uuid.UUID
	Start   float64 // game clock seconds
	End     float64
	Rounds  int // rounds reproduced without exceeding the miss budget
	Misses  int
	MaxMiss int
	Ending  game.Ending
}

// History keeps the most recent finished games
type History struct {
	mu    sync.RWMutex
	games []Record
	limit int
}

// NewHistory keeps at most limit games; zero keeps everything
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add appends a finished game, dropping the oldest beyond the limit
func (h *History) Add(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.games = append(h.games, r)
	if h.limit > 0 && len(h.games) > h.limit {
		h.games = append(h.games[:0], h.games[len(h.games)-h.limit:]...)
	}
}

// All returns a copy, oldest first
func (h *History) All() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Record(nil), h.games...)
}

// Len returns the number of kept games
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games)
}

// Best returns the kept game with the most rounds, the earliest on ties
func (h *History) Best() (Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.games) == 0 {
		return Record{}, false
	}
	best := h.games[0]
	for _, r := range h.games[1:] {
		if r.Rounds > best.Rounds {
			best = r
		}
	}
	return best, true
}
