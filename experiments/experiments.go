package experiments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ropes/engine"
	"ropes/experiments/metrics"
	"ropes/game"
	"ropes/searcher"
)

// Experiment is a series of self-play games between two agent configs.
// Seats alternate from game to game, so each config starts half the games.
type Experiment struct {
	Name     string
	Board    *game.Board
	Agents   [2]metrics.AgentConfig
	Games    int
	Parallel int    // Games played at once, at least 1
	OutDir   string // CSV output root, empty to skip writing
	// Metrics, when set, receives the metrics of every search.
	Metrics *searcher.PrometheusMetrics
}

type Report struct {
	RunID   uuid.UUID
	Dir     string // Empty when nothing was written
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Summary metrics.Summary
}

var ErrInvalidExperiment = errors.New("invalid experiment")

func Run(ctx context.Context, exp Experiment) (Report, error) {
	if exp.Board == nil {
		return Report{}, fmt.Errorf("%w: no board", ErrInvalidExperiment)
	}
	if exp.Games <= 0 {
		return Report{}, fmt.Errorf("%w: %d games", ErrInvalidExperiment, exp.Games)
	}
	for _, a := range exp.Agents {
		if err := a.Validate(); err != nil {
			return Report{}, fmt.Errorf("agent %d: %w", a.ID, err)
		}
	}

	report := Report{RunID: uuid.New()}
	games := make([]metrics.GameRecord, exp.Games)
	moves := make([][]metrics.MoveRecord, exp.Games)

	log.Info().Msgf("starting %s experiment %s with %d games...", exp.Name, report.RunID, exp.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Parallel, 1))
	for i := 0; i < exp.Games; i++ {
		i := i
		g.Go(func() error {
			config1, config2 := exp.Agents[0], exp.Agents[1]
			if i%2 == 1 {
				config1, config2 = config2, config1
			}

			log.Info().Msgf("starting game %d of %d between agent %d and agent %d...", i+1, exp.Games, config1.ID, config2.ID)

			winner, gameMetric, moveMetrics, err := runGame(ctx, exp, config1, config2)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			record := metrics.GameRecord{
				ID:         uuid.New(),
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			}
			games[i] = record
			for _, mm := range moveMetrics {
				moves[i] = append(moves[i], metrics.MoveRecord{
					Game:       record.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, exp.Games, winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report.Games = games
	for _, mr := range moves {
		report.Moves = append(report.Moves, mr...)
	}
	report.Summary = metrics.Summarize(report.Games, report.Moves)

	log.Info().Msgf("completed %s experiment: %d draws, wins %v", exp.Name, report.Summary.Draws, report.Summary.Wins)

	if exp.OutDir == "" {
		return report, nil
	}
	dir, err := store(exp, report)
	if err != nil {
		return report, err
	}
	report.Dir = dir
	return report, nil
}

// runGame plays one game between freshly created agents.
func runGame(ctx context.Context, exp Experiment, config1, config2 metrics.AgentConfig) (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric, error) {
	var options []searcher.Option
	if exp.Metrics != nil {
		options = append(options, searcher.WithPrometheus(exp.Metrics))
	}
	var e engine.Engine = engine.NewLocal(exp.Board,
		engine.NewSearchAgent(config1.Config, options...),
		engine.NewSearchAgent(config2.Config, options...),
	)
	return e.Run(ctx)
}

func store(exp Experiment, report Report) (string, error) {
	writer, err := metrics.NewWriter(exp.OutDir, exp.Name, report.RunID)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := []metrics.AgentConfig{exp.Agents[0]}
	if exp.Agents[1].ID != exp.Agents[0].ID {
		configs = append(configs, exp.Agents[1])
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
