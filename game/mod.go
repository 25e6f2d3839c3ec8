package game

import "errors"

// PlayerID identifies a player. Player 1 always moves first.
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return ""
	}
}

// Other returns the opponent of p.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

type StateHash uint64

// WinScore is the saturating sentinel returned for decided games. Every
// heuristic score stays far below it.
const WinScore = 1e9

// winThreshold separates sentinel-derived scores from heuristic ones.
const winThreshold = WinScore / 2

// IsWinScore reports whether score encodes a decided game for either side.
func IsWinScore(score float64) bool {
	return score >= winThreshold || score <= -winThreshold
}

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidState = errors.New("invalid state")
)
