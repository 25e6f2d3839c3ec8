package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ropes/game"
	"ropes/meta"
	"ropes/searcher"
)

// scriptedAgent plays the first legal move matching prefer, or the first
// legal move.
type scriptedAgent struct {
	prefer   func(*game.GameState, game.Move) bool
	observed int
	err      error
}

func (a *scriptedAgent) FindMove(_ context.Context, state *game.GameState) (game.Move, searcher.SearchMetrics, error) {
	if a.err != nil {
		return game.Move{}, searcher.SearchMetrics{}, a.err
	}
	moves := game.LegalMoves(state)
	for _, m := range moves {
		if a.prefer != nil && a.prefer(state, m) {
			return m, searcher.SearchMetrics{Depth: 1}, nil
		}
	}
	return moves[0], searcher.SearchMetrics{Depth: 1}, nil
}

func (a *scriptedAgent) Observe(*game.GameState) {
	a.observed++
}

func forward(state *game.GameState, m game.Move) bool {
	return m.Kind == game.Movement && m.Target > state.Player().Position
}

func pacing(_ *game.GameState, m game.Move) bool {
	return m.Kind == game.Movement && m.Target <= 1
}

func smallBoard(t *testing.T) *game.Board {
	t.Helper()
	b, err := game.NewBoard(game.BoardConfig{
		Size:       8,
		Prize:      7,
		MaxStep:    1,
		PushOffset: 2,
		Ropes:      1,
		Phases:     game.PhaseThresholds{EarlyPlies: 4, MidPlies: 8, LateDistance: 2},
	})
	require.NoError(t, err)
	return b
}

func TestLocal(t *testing.T) {
	ctx := context.Background()

	t.Run("the faster runner wins", func(t *testing.T) {
		b := smallBoard(t)
		runner := &scriptedAgent{prefer: forward}
		idle := &scriptedAgent{prefer: pacing}
		l := NewLocal(b, runner, idle)

		winner, gm, moves, err := l.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.Player1, winner)
		require.Equal(t, game.Player1, gm.Winner)
		require.Equal(t, game.Player1, gm.StartingPlayer)
		require.Equal(t, len(moves), gm.TotalMoves)
		require.Equal(t, game.Player1, moves[0].Player)
		require.Equal(t, 1, moves[0].Step)
		require.Equal(t, game.MoveTo(7), moves[len(moves)-1].Move)
		require.Equal(t, len(moves)+1, runner.observed)
		require.Equal(t, len(moves)+1, idle.observed)
		require.False(t, gm.EndTime.Before(gm.StartTime))
	})

	t.Run("stalled games are draws", func(t *testing.T) {
		b := smallBoard(t)
		l := NewLocal(b, &scriptedAgent{prefer: pacing}, &scriptedAgent{prefer: pacing})

		winner, gm, moves, err := l.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.NoPlayer, winner)
		require.Len(t, moves, meta.MAX_TURNS)
		require.Equal(t, meta.MAX_TURNS, gm.TotalMoves)
	})

	t.Run("agent errors end the game", func(t *testing.T) {
		boom := errors.New("boom")
		l := NewLocal(smallBoard(t), &scriptedAgent{err: boom}, &scriptedAgent{})

		_, _, _, err := l.Run(ctx)

		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context ends the game", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		l := NewLocal(smallBoard(t), &scriptedAgent{}, &scriptedAgent{})

		_, _, moves, err := l.Run(cancelled)

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, moves)
	})

	t.Run("needs two agents", func(t *testing.T) {
		require.Panics(t, func() { NewLocal(smallBoard(t), &scriptedAgent{}) })
	})
}

func TestSearchAgent(t *testing.T) {
	b := smallBoard(t)
	cfg := searcher.DefaultConfig()
	cfg.MaxDepth = 3
	cfg.TimeLimit = time.Minute
	l := NewLocal(b, NewSearchAgent(cfg), NewSearchAgent(cfg))

	winner, gm, moves, err := l.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, gm.Winner, winner)
	require.NotEmpty(t, moves)
	for _, m := range moves {
		require.Positive(t, m.Depth, "Every search should complete at least depth 1")
		require.Positive(t, m.Nodes)
	}
	require.LessOrEqual(t, gm.RopesPlaced, 2*b.Ropes())
}
