package searcher

import (
	"context"
	"errors"

	"ropes/game"
)

// Searcher picks a move for the player to move.
type Searcher interface {
	SelectMove(ctx context.Context, state *game.GameState, cfg Config) (game.Move, error)
}

var (
	ErrInvalidConfig = errors.New("invalid search config")
	ErrGameOver      = errors.New("game is over")
	ErrNoLegalMoves  = errors.New("no legal moves")
)

// Result describes a finished search.
type Result struct {
	Move  game.Move
	Score float64 // From the perspective of the player to move
	// Depth is the last fully completed iteration, 0 when even depth 1 ran
	// out of time.
	Depth int
	// RootScores holds the score of every root move searched at Depth. Moves
	// that failed low carry an upper bound.
	RootScores map[game.Move]float64
	Metrics    SearchMetrics
}
