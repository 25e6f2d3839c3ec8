package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/samber/lo"
)

type Phase int

const (
	Early Phase = iota
	Mid
	Late
)

func (p Phase) String() string {
	switch p {
	case Early:
		return "early"
	case Mid:
		return "mid"
	case Late:
		return "late"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type Player struct {
	ID       PlayerID
	Position int
	Ropes    int
}

// RopeObstacle pushes the other player back when they land on Anchor. It is
// spent after one push.
type RopeObstacle struct {
	Owner      PlayerID
	Anchor     int
	PushOffset int
	Active     bool
}

// GameState is a snapshot of a game. States are never modified once handed
// out: Apply returns a fresh copy.
type GameState struct {
	Board     *Board         // Shared static layout
	Players   [2]Player      // Players[0] is Player1
	Obstacles []RopeObstacle // Every rope placed so far, in placement order
	Current   int            // Index into Players of the player to move
	Ply       int            // Moves applied since the start
	Winner    PlayerID       // NoPlayer until someone reaches the prize
}

// NewGameState puts both players on the start cell with a full inventory.
func NewGameState(b *Board) *GameState {
	return &GameState{
		Board: b,
		Players: [2]Player{
			{ID: Player1, Position: b.Start(), Ropes: b.Ropes()},
			{ID: Player2, Position: b.Start(), Ropes: b.Ropes()},
		},
	}
}

func (gs *GameState) Copy() *GameState {
	var obstacles []RopeObstacle
	if len(gs.Obstacles) > 0 {
		obstacles = make([]RopeObstacle, len(gs.Obstacles), len(gs.Obstacles)+1)
		copy(obstacles, gs.Obstacles)
	}

	return &GameState{
		Board:     gs.Board,
		Players:   gs.Players,
		Obstacles: obstacles,
		Current:   gs.Current,
		Ply:       gs.Ply,
		Winner:    gs.Winner,
	}
}

// Player returns the player to move.
func (gs *GameState) Player() Player {
	return gs.Players[gs.Current]
}

// Opponent returns the player waiting for their turn.
func (gs *GameState) Opponent() Player {
	return gs.Players[1-gs.Current]
}

// PlayerByID looks a player up by id.
func (gs *GameState) PlayerByID(id PlayerID) Player {
	if gs.Players[0].ID == id {
		return gs.Players[0]
	}
	return gs.Players[1]
}

func (gs *GameState) ActiveObstacles() []RopeObstacle {
	return lo.Filter(gs.Obstacles, func(o RopeObstacle, _ int) bool {
		return o.Active
	})
}

// HasActiveAnchor reports whether owner has an active rope anchored at cell.
func (gs *GameState) HasActiveAnchor(owner PlayerID, cell int) bool {
	for _, o := range gs.Obstacles {
		if o.Active && o.Owner == owner && o.Anchor == cell {
			return true
		}
	}
	return false
}

func (gs *GameState) Phase() Phase {
	return gs.Board.Phase(gs.Ply, gs.Players[0].Position, gs.Players[1].Position)
}

func (gs *GameState) IsTerminal() bool {
	return gs.Winner != NoPlayer
}

// Hash is a canonical key over the player to move, positions, inventories
// and active obstacles. Ply count and spent ropes do not contribute.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Players[gs.Current].ID))
	for _, p := range gs.Players {
		binary.Write(hasher, binary.LittleEndian, int64(p.Position))
		binary.Write(hasher, binary.LittleEndian, int64(p.Ropes))
	}

	active := gs.ActiveObstacles()
	sort.Slice(active, func(i, j int) bool {
		if active[i].Anchor != active[j].Anchor {
			return active[i].Anchor < active[j].Anchor
		}
		return active[i].Owner < active[j].Owner
	})
	for _, o := range active {
		binary.Write(hasher, binary.LittleEndian, int64(o.Owner))
		binary.Write(hasher, binary.LittleEndian, int64(o.Anchor))
	}

	return StateHash(hasher.Sum64())
}

// Snapshot is the file form of a position.
type Snapshot struct {
	Positions [2]int      `yaml:"positions"`
	Ropes     [2]int      `yaml:"ropes"`
	Anchors   []AnchorDef `yaml:"anchors"`
	Current   PlayerID    `yaml:"current"`
	Ply       int         `yaml:"ply"`
}

type AnchorDef struct {
	Owner PlayerID `yaml:"owner"`
	Cell  int      `yaml:"cell"`
}

func (gs *GameState) Snapshot() Snapshot {
	snap := Snapshot{
		Positions: [2]int{gs.Players[0].Position, gs.Players[1].Position},
		Ropes:     [2]int{gs.Players[0].Ropes, gs.Players[1].Ropes},
		Current:   gs.Player().ID,
		Ply:       gs.Ply,
	}
	for _, o := range gs.ActiveObstacles() {
		snap.Anchors = append(snap.Anchors, AnchorDef{Owner: o.Owner, Cell: o.Anchor})
	}
	return snap
}

// Restore builds a position from a snapshot. The result is checked against
// the same invariants Apply maintains.
func Restore(b *Board, snap Snapshot) (*GameState, error) {
	gs := NewGameState(b)
	gs.Ply = snap.Ply
	switch snap.Current {
	case Player1, NoPlayer:
		gs.Current = 0
	case Player2:
		gs.Current = 1
	default:
		return nil, fmt.Errorf("%w: unknown player %d", ErrInvalidState, snap.Current)
	}
	if snap.Ply < 0 {
		return nil, fmt.Errorf("%w: negative ply %d", ErrInvalidState, snap.Ply)
	}

	for i := range gs.Players {
		pos, ropes := snap.Positions[i], snap.Ropes[i]
		if !b.InBounds(pos) || b.IsWall(pos) {
			return nil, fmt.Errorf("%w: %s on cell %d", ErrInvalidState, gs.Players[i].ID, pos)
		}
		if ropes < 0 {
			return nil, fmt.Errorf("%w: %s has %d ropes", ErrInvalidState, gs.Players[i].ID, ropes)
		}
		gs.Players[i].Position = pos
		gs.Players[i].Ropes = ropes
		if pos == b.Prize() {
			gs.Winner = gs.Players[i].ID
		}
	}

	for _, a := range snap.Anchors {
		if a.Owner != Player1 && a.Owner != Player2 {
			return nil, fmt.Errorf("%w: anchor owned by unknown player %d", ErrInvalidState, a.Owner)
		}
		if !b.InZone(a.Cell) || b.IsWall(a.Cell) {
			return nil, fmt.Errorf("%w: anchor on cell %d outside the rope zone", ErrInvalidState, a.Cell)
		}
		if gs.HasActiveAnchor(a.Owner, a.Cell) {
			return nil, fmt.Errorf("%w: duplicate anchor on cell %d", ErrInvalidState, a.Cell)
		}
		gs.Obstacles = append(gs.Obstacles, RopeObstacle{
			Owner:      a.Owner,
			Anchor:     a.Cell,
			PushOffset: b.PushOffset(),
			Active:     true,
		})
	}
	return gs, nil
}
