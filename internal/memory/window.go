// Package memory keeps the short-term conversation history for one session.
package memory

import (
	"sync"

	"github.com/docchat/docchat-backend/internal/entity"
)

// Window is a bounded FIFO of conversation turns. Capacity is expressed in
// user/assistant pairs; once exceeded the oldest turns are evicted.
type Window struct {
	mu       sync.Mutex
	maxTurns int
	turns    []entity.Turn
}

// NewWindow creates a window holding at most pairs*2 turns.
func NewWindow(pairs int) *Window {
	if pairs <= 0 {
		pairs = 5
	}
	return &Window{maxTurns: pairs * 2}
}

// Append adds a turn, evicting the oldest turns once capacity is exceeded.
func (w *Window) Append(turn entity.Turn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.turns = append(w.turns, turn)
	if len(w.turns) > w.maxTurns {
		w.turns = w.turns[len(w.turns)-w.maxTurns:]
	}
}

// Window returns the retained turns in chronological order.
func (w *Window) Window() []entity.Turn {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]entity.Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// Clear drops all retained turns.
func (w *Window) Clear() {
	w.mu.Lock()
	w.turns = nil
	w.mu.Unlock()
}
