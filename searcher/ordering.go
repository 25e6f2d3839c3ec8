package searcher

import (
	"golang.org/x/exp/slices"

	"ropes/game"
)

type candidate struct {
	move     game.Move
	priority float64
}

// candidates returns the moves to search from gs, best first. Rope
// placements are capped per phase, except for urgent defenses, which are
// always kept. hint, when set, is searched first.
func (s *search) candidates(gs *game.GameState, hint game.Move, hasHint bool) []game.Move {
	b := gs.Board
	me, opp := gs.Player(), gs.Opponent()
	phase := gs.Phase()
	oppDist := b.DistanceToPrize(opp.Position)

	urgent := urgentDefenses(gs, s.cfg.Strategy.UrgentDistance)

	var moves, ropes []candidate
	for _, m := range game.LegalMoves(gs) {
		switch m.Kind {
		case game.Movement:
			moves = append(moves, candidate{m, movementPriority(gs, m.Target)})
		case game.RopePlacement:
			c := candidate{m, placementPriority(b, phase, opp.Position, m.Target)}
			if urgent[m.Target] {
				c.priority += urgentPriority
			}
			ropes = append(ropes, c)
		default:
			panic("unknown move kind " + m.Kind.String())
		}
	}

	sortCandidates(ropes)
	if limit := s.ropeCap(phase, me.Ropes, oppDist); limit > 0 && len(ropes) > limit {
		kept := append([]candidate(nil), ropes[:limit]...)
		for _, c := range ropes[limit:] {
			if urgent[c.move.Target] {
				kept = append(kept, c)
			}
		}
		ropes = kept
	}

	all := append(moves, ropes...)
	if hasHint {
		for i := range all {
			if all[i].move == hint {
				all[i].priority = hintPriority
				break
			}
		}
	}
	sortCandidates(all)

	out := make([]game.Move, len(all))
	for i, c := range all {
		out[i] = c.move
	}
	return out
}

// sortCandidates orders by descending priority. Ties keep board order.
func sortCandidates(cs []candidate) {
	slices.SortStableFunc(cs, func(a, b candidate) int {
		switch {
		case a.priority > b.priority:
			return -1
		case a.priority < b.priority:
			return 1
		}
		return 0
	})
}

// ropeCap is the number of placements searched in phase, 0 for all. Caps
// are lifted when the remaining ropes could not all be spent before the
// opponent arrives.
func (s *search) ropeCap(phase game.Phase, ropes, oppDist int) int {
	var limit int
	switch phase {
	case game.Early:
		limit = s.cfg.Strategy.EarlyRopeCap
	case game.Mid:
		limit = s.cfg.Strategy.MidRopeCap
	default:
		limit = s.cfg.Strategy.LateRopeCap
	}
	if ropes >= oppDist {
		return 0
	}
	return limit
}

// urgentDefenses marks the cells one move ahead of an opponent who is at
// most threshold moves from the prize.
func urgentDefenses(gs *game.GameState, threshold int) map[int]bool {
	me, opp := gs.Player(), gs.Opponent()
	if me.Ropes == 0 || gs.Board.DistanceToPrize(opp.Position) > threshold {
		return nil
	}
	cells := make(map[int]bool)
	for _, c := range gs.Board.NextOnPath(opp.Position) {
		cells[c] = true
	}
	return cells
}

// movementPriority rewards distance gained after ladders and ropes resolve.
func movementPriority(gs *game.GameState, target int) float64 {
	b := gs.Board
	me := gs.Player()
	cell := b.Land(target)
	for _, o := range gs.Obstacles {
		if o.Active && o.Owner != me.ID && o.Anchor == cell {
			cell = b.PushBack(cell, o.PushOffset)
			break
		}
	}
	if cell == b.Prize() {
		return winPriority
	}
	return progressPriority * float64(b.DistanceToPrize(me.Position)-b.DistanceToPrize(cell))
}

// placementPriority favours anchors on the opponent's shortest path, the
// closer to the opponent the better.
func placementPriority(b *game.Board, phase game.Phase, opp, cell int) float64 {
	ahead := b.Distance(opp, cell)
	if !b.OnShortestPath(opp, cell) {
		if ahead < 0 {
			return -float64(b.Size())
		}
		return -float64(ahead)
	}
	base := blockPriority
	if phase == game.Late {
		base = lateBlockPriority
	}
	return base + 40/float64(ahead)
}
