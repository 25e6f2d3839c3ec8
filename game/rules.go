package game

import "fmt"

// Reason explains why Apply rejected a move.
type Reason string

const (
	ReasonGameOver    Reason = "game is over"
	ReasonOutOfBounds Reason = "target out of bounds"
	ReasonWall        Reason = "target is a wall"
	ReasonNotAdjacent Reason = "target not reachable in one move"
	ReasonOutsideZone Reason = "target outside the rope zone"
	ReasonOccupied    Reason = "target occupied by a player"
	ReasonDuplicate   Reason = "target already anchored by the same player"
	ReasonNoRopes     Reason = "no ropes left"
	ReasonUnknownKind Reason = "unknown move kind"
)

type IllegalMoveError struct {
	Move   Move
	Reason Reason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// LegalMoves lists every move available to the player to move, in ascending
// cell order. A movement precedes a rope placement on the same cell.
func LegalMoves(gs *GameState) []Move {
	if gs.IsTerminal() {
		return nil
	}
	b := gs.Board
	me := gs.Player()

	targets := b.Targets(me.Position)
	moves := make([]Move, 0, len(targets)+b.Size())
	next := 0
	for c := 0; c < b.Size(); c++ {
		if next < len(targets) && targets[next] == c {
			moves = append(moves, MoveTo(c))
			next++
		}
		if me.Ropes > 0 && placementReason(gs, c) == "" {
			moves = append(moves, PlaceRope(c))
		}
	}
	return moves
}

// placementReason returns why the player to move may not anchor on cell, or
// the empty reason when the placement is allowed.
func placementReason(gs *GameState, cell int) Reason {
	b := gs.Board
	switch {
	case !b.InBounds(cell):
		return ReasonOutOfBounds
	case b.IsWall(cell):
		return ReasonWall
	case !b.InZone(cell):
		return ReasonOutsideZone
	case gs.Players[0].Position == cell || gs.Players[1].Position == cell:
		return ReasonOccupied
	case gs.HasActiveAnchor(gs.Player().ID, cell):
		return ReasonDuplicate
	case gs.Player().Ropes <= 0:
		return ReasonNoRopes
	}
	return ""
}

func movementReason(gs *GameState, cell int) Reason {
	b := gs.Board
	switch {
	case !b.InBounds(cell):
		return ReasonOutOfBounds
	case b.IsWall(cell):
		return ReasonWall
	case !b.IsTarget(gs.Player().Position, cell):
		return ReasonNotAdjacent
	}
	return ""
}

// Apply returns the state after m. The input state is left untouched, also
// when m is rejected.
func Apply(gs *GameState, m Move) (*GameState, error) {
	if gs.IsTerminal() {
		return nil, &IllegalMoveError{Move: m, Reason: ReasonGameOver}
	}

	var reason Reason
	switch m.Kind {
	case Movement:
		reason = movementReason(gs, m.Target)
	case RopePlacement:
		reason = placementReason(gs, m.Target)
	default:
		reason = ReasonUnknownKind
	}
	if reason != "" {
		return nil, &IllegalMoveError{Move: m, Reason: reason}
	}

	next := gs.Copy()
	me := &next.Players[next.Current]
	switch m.Kind {
	case Movement:
		next.resolveLanding(me, m.Target)
	case RopePlacement:
		me.Ropes--
		next.Obstacles = append(next.Obstacles, RopeObstacle{
			Owner:      me.ID,
			Anchor:     m.Target,
			PushOffset: next.Board.PushOffset(),
			Active:     true,
		})
	}

	for _, p := range next.Players {
		if p.Position == next.Board.Prize() {
			next.Winner = p.ID
			break
		}
	}
	next.Current = 1 - next.Current
	next.Ply++
	return next, nil
}

// resolveLanding moves p onto target, climbs at most one ladder and then
// springs at most one rope of the other player anchored where p ended up.
// The push destination is final.
func (gs *GameState) resolveLanding(p *Player, target int) {
	cell := gs.Board.Land(target)
	for i := range gs.Obstacles {
		o := &gs.Obstacles[i]
		if o.Active && o.Owner != p.ID && o.Anchor == cell {
			o.Active = false
			cell = gs.Board.PushBack(cell, o.PushOffset)
			break
		}
	}
	p.Position = cell
}

// IsTerminal reports whether the game is over and who won it.
func IsTerminal(gs *GameState) (bool, PlayerID) {
	return gs.IsTerminal(), gs.Winner
}
