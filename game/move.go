package game

import "fmt"

type MoveKind uint8

const (
	Movement MoveKind = iota
	RopePlacement
)

func (k MoveKind) String() string {
	switch k {
	case Movement:
		return "move"
	case RopePlacement:
		return "rope"
	default:
		return fmt.Sprintf("MoveKind(%d)", uint8(k))
	}
}

// Move is either a Movement to Target or a RopePlacement anchored at Target.
// Moves are comparable and can be used as map keys.
type Move struct {
	Kind   MoveKind
	Target int
}

func MoveTo(cell int) Move {
	return Move{Kind: Movement, Target: cell}
}

func PlaceRope(cell int) Move {
	return Move{Kind: RopePlacement, Target: cell}
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%d", m.Kind, m.Target)
}

// ParseMove reads the format produced by String.
func ParseMove(s string) (Move, error) {
	var kind string
	var cell int
	n, err := fmt.Sscanf(s, "%4s@%d", &kind, &cell)
	if err != nil || n != 2 {
		return Move{}, fmt.Errorf("malformed move %q", s)
	}
	switch kind {
	case "move":
		return MoveTo(cell), nil
	case "rope":
		return PlaceRope(cell), nil
	default:
		return Move{}, fmt.Errorf("unknown move kind %q", kind)
	}
}
