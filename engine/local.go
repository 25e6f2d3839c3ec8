package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ropes/experiments/metrics"
	"ropes/game"
	"ropes/meta"
)

// Local runs a game between two in-process agents. Agents[0] plays Player1.
type Local struct {
	State  *game.GameState
	Agents [2]Agent
}

func NewLocal(b *game.Board, agents ...Agent) *Local {
	if len(agents) != 2 {
		panic(fmt.Sprintf("need exactly two agents, got %d", len(agents)))
	}
	return &Local{
		State:  game.NewGameState(b),
		Agents: [2]Agent{agents[0], agents[1]},
	}
}

// Run plays from State until the game is decided or meta.MAX_TURNS moves
// were made, in which case the game is a draw and the winner is
// game.NoPlayer. A failing agent or a cancelled context ends the game with
// an error.
func (l *Local) Run(ctx context.Context) (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: l.State.Player().ID,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting", l.State.Player().ID)

	for _, agent := range l.Agents {
		agent.Observe(l.State)
	}

	step := 1
	for !l.State.IsTerminal() && step <= meta.MAX_TURNS {
		if err := ctx.Err(); err != nil {
			return game.NoPlayer, l.complete(gameMetric, step-1), moveMetrics, err
		}

		player := l.State.Player().ID
		move, searchMetrics, err := l.Agents[l.State.Current].FindMove(ctx, l.State)
		if err != nil {
			return game.NoPlayer, l.complete(gameMetric, step-1), moveMetrics, fmt.Errorf("%s failed to find a move: %w", player, err)
		}
		next, err := game.Apply(l.State, move)
		if err != nil {
			return game.NoPlayer, l.complete(gameMetric, step-1), moveMetrics, fmt.Errorf("%s chose %s: %w", player, move, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:          step,
			Player:        player,
			Move:          move,
			SearchMetrics: searchMetrics,
		})
		if move.Kind == game.RopePlacement {
			gameMetric.RopesPlaced++
		}
		log.Debug().
			Int("step", step).
			Str("player", player.String()).
			Str("move", move.String()).
			Int("depth", searchMetrics.Depth).
			Msg("played")

		l.State = next
		for _, agent := range l.Agents {
			agent.Observe(l.State)
		}
		step++
	}

	if l.State.IsTerminal() {
		log.Info().Msgf("game ended with winner %s after %d moves", l.State.Winner, step-1)
	} else {
		log.Info().Msgf("stopped after %d moves without a winner", meta.MAX_TURNS)
	}

	return l.State.Winner, l.complete(gameMetric, step-1), moveMetrics, nil
}

func (l *Local) complete(gm metrics.GameMetric, moves int) metrics.GameMetric {
	gm.Winner = l.State.Winner
	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)
	gm.TotalMoves = moves
	return gm
}
