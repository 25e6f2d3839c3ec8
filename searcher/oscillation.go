package searcher

import (
	"ropes/game"
	"ropes/meta"
)

// OscillationGuard remembers the positions of the game played so far and
// the line currently being searched. A position that reappears within a
// short window is penalised, never forbidden.
type OscillationGuard struct {
	history []game.StateHash
	path    []game.StateHash
}

func NewOscillationGuard() *OscillationGuard {
	return &OscillationGuard{}
}

// Observe records a position that was actually played.
func (g *OscillationGuard) Observe(h game.StateHash) {
	g.history = append(g.history, h)
	if n := len(g.history); n > meta.HISTORY_LENGTH {
		g.history = append(g.history[:0], g.history[n-meta.HISTORY_LENGTH:]...)
	}
}

func (g *OscillationGuard) Push(h game.StateHash) {
	g.path = append(g.path, h)
}

func (g *OscillationGuard) Pop() {
	g.path = g.path[:len(g.path)-1]
}

// Recent reports whether h is among the last window positions of the
// played history followed by the current search line.
func (g *OscillationGuard) Recent(h game.StateHash, window int) bool {
	for i := len(g.path) - 1; i >= 0 && window > 0; i-- {
		if g.path[i] == h {
			return true
		}
		window--
	}
	last := len(g.history) - 1
	if last >= 0 && len(g.path) > 0 && g.history[last] == g.path[0] {
		// The searched root was already observed.
		last--
	}
	for i := last; i >= 0 && window > 0; i-- {
		if g.history[i] == h {
			return true
		}
		window--
	}
	return false
}

// Repeats reports whether h occurs on the current search line before its
// last position.
func (g *OscillationGuard) Repeats(h game.StateHash) bool {
	for i := len(g.path) - 2; i >= 0; i-- {
		if g.path[i] == h {
			return true
		}
	}
	return false
}

func (g *OscillationGuard) Reset() {
	g.history = g.history[:0]
	g.path = g.path[:0]
}
