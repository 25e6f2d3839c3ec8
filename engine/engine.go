package engine

import (
	"context"

	"ropes/experiments/metrics"
	"ropes/game"
	"ropes/searcher"
)

type Engine interface {
	// Run plays a game till there's a winner or meta.MAX_TURNS moves were made
	Run(ctx context.Context) (winner game.PlayerID, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Agent chooses the moves of one player.
type Agent interface {
	FindMove(ctx context.Context, state *game.GameState) (game.Move, searcher.SearchMetrics, error)
	// Observe is called with every position reached in the game, including
	// the initial one.
	Observe(state *game.GameState)
}

// SearchAgent plays the moves chosen by its own searcher.Engine, so its
// transposition table and history are never shared with another game.
type SearchAgent struct {
	searcher *searcher.Engine
	config   searcher.Config
}

func NewSearchAgent(config searcher.Config, options ...searcher.Option) *SearchAgent {
	options = append([]searcher.Option{
		searcher.WithTableCapacity(config.TableCapacity),
		searcher.WithMetrics(),
	}, options...)
	return &SearchAgent{
		searcher: searcher.NewEngine(options...),
		config:   config,
	}
}

func (a *SearchAgent) FindMove(ctx context.Context, state *game.GameState) (game.Move, searcher.SearchMetrics, error) {
	res, err := a.searcher.Search(ctx, state, a.config)
	if err != nil {
		return game.Move{}, searcher.SearchMetrics{}, err
	}
	return res.Move, res.Metrics, nil
}

func (a *SearchAgent) Observe(state *game.GameState) {
	a.searcher.Observe(state)
}
