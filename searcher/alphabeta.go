package searcher

import (
	"context"
	"math"
	"time"

	"ropes/game"
)

// search holds the state of one SelectMove call. Scores are always from the
// perspective of the root player, who maximises.
type search struct {
	cfg      Config
	evaluate game.Evaluate
	table    *TranspositionTable
	guard    *OscillationGuard
	metrics  MetricsCollector
	root     game.PlayerID
	ctx      context.Context
	deadline time.Time
	aborted  bool
	// unstable counts repeated positions on the current line. Scores below
	// one depend on the line and are kept out of the table.
	unstable int
}

type rootResult struct {
	move   game.Move
	found  bool
	score  float64
	scores map[game.Move]float64
}

// expired polls the deadline and the context. Once it reports true, the
// whole iteration unwinds.
func (s *search) expired() bool {
	if s.aborted {
		return true
	}
	if !time.Now().Before(s.deadline) || s.ctx.Err() != nil {
		s.aborted = true
	}
	return s.aborted
}

// searchRoot runs one full-window iteration. It reports false when the
// deadline interrupted it, together with whatever root moves finished.
func (s *search) searchRoot(gs *game.GameState, depth int, hint game.Move, hasHint bool) (rootResult, bool) {
	res := rootResult{score: math.Inf(-1), scores: make(map[game.Move]float64)}
	alpha, beta := math.Inf(-1), math.Inf(1)

	for _, m := range s.candidates(gs, hint, hasHint) {
		child, err := game.Apply(gs, m)
		if err != nil {
			continue
		}
		score, ok := s.child(child, depth, 1, alpha, beta, true)
		if !ok {
			return res, false
		}
		res.scores[m] = score
		if score > res.score {
			res.move, res.score, res.found = m, score, true
		}
		alpha = math.Max(alpha, score)
	}

	if res.found {
		s.store(gs.Hash(), depth, 0, res.score, Exact, res.move, true)
	}
	return res, true
}

// child searches the position reached by a move at ply and applies the
// repetition penalty against the player who made the move. The window is
// shifted by the penalty so that a bound returned by the child stays a
// bound once the penalty is applied.
func (s *search) child(child *game.GameState, depth, ply int, alpha, beta float64, maximizing bool) (float64, bool) {
	hash := child.Hash()
	penalty := 0.0
	if s.guard.Recent(hash, s.cfg.Oscillation.Window) {
		penalty = s.cfg.Oscillation.Penalty
	}
	if !maximizing {
		penalty = -penalty
	}

	s.guard.Push(hash)
	score := s.alphaBeta(child, hash, depth-1, ply, alpha+penalty, beta+penalty)
	s.guard.Pop()
	if s.aborted {
		return 0, false
	}
	return score - penalty, true
}

func (s *search) alphaBeta(gs *game.GameState, hash game.StateHash, depth, ply int, alpha, beta float64) float64 {
	if s.expired() {
		return 0
	}
	s.metrics.AddNode()

	if gs.IsTerminal() || depth == 0 {
		return s.leaf(gs, ply)
	}

	maximizing := gs.Player().ID == s.root
	alphaOrig, betaOrig := alpha, beta

	if s.guard.Repeats(hash) {
		s.unstable++
		defer func() { s.unstable-- }()
	}
	shared := s.unstable == 0

	var hint game.Move
	var hasHint bool
	if e, ok := s.table.Probe(hash); ok {
		s.metrics.AddTableHit()
		hint, hasHint = e.Best, e.HasBest
		if shared && e.Depth >= depth {
			score, bound := s.fromEntry(e, ply, maximizing)
			switch bound {
			case Exact:
				return score
			case Lower:
				alpha = math.Max(alpha, score)
			case Upper:
				beta = math.Min(beta, score)
			}
			if alpha >= beta {
				return score
			}
		}
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	var bestMove game.Move
	var found bool

	for _, m := range s.candidates(gs, hint, hasHint) {
		child, err := game.Apply(gs, m)
		if err != nil {
			continue
		}
		score, ok := s.child(child, depth, ply+1, alpha, beta, maximizing)
		if !ok {
			return 0
		}

		if maximizing {
			if score > best {
				best, bestMove, found = score, m, true
			}
			alpha = math.Max(alpha, best)
		} else {
			if score < best {
				best, bestMove, found = score, m, true
			}
			beta = math.Min(beta, best)
		}
		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}
	if !found {
		return s.leaf(gs, ply)
	}

	if !shared {
		return best
	}
	bound := Exact
	if best <= alphaOrig {
		bound = Upper
	} else if best >= betaOrig {
		bound = Lower
	}
	s.store(hash, depth, ply, best, bound, bestMove, maximizing)
	return best
}

// leaf scores a terminal or horizon node. Decided games are pulled towards
// zero by ply so that quicker wins and slower losses are preferred.
func (s *search) leaf(gs *game.GameState, ply int) float64 {
	if gs.IsTerminal() {
		if gs.Winner == s.root {
			return game.WinScore - float64(ply)
		}
		return -game.WinScore + float64(ply)
	}
	return s.evaluate(gs, s.root)
}

// store converts a root-perspective score to the perspective of the player
// to move at the node, so entries stay valid whichever side searches later.
func (s *search) store(hash game.StateHash, depth, ply int, score float64, bound Bound, best game.Move, maximizing bool) {
	if !maximizing {
		score = -score
		bound = flip(bound)
	}
	s.table.Store(hash, Entry{
		Depth:   depth,
		Score:   toTableScore(score, ply),
		Bound:   bound,
		Best:    best,
		HasBest: true,
	})
}

func (s *search) fromEntry(e Entry, ply int, maximizing bool) (float64, Bound) {
	score := fromTableScore(e.Score, ply)
	if !maximizing {
		return -score, flip(e.Bound)
	}
	return score, e.Bound
}

func flip(b Bound) Bound {
	switch b {
	case Lower:
		return Upper
	case Upper:
		return Lower
	}
	return b
}
