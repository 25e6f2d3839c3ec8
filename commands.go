package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"ropes/experiments"
	"ropes/experiments/metrics"
	"ropes/game"
	"ropes/searcher"
)

var (
	logLevel       string
	boardPath      string
	configPath     string
	opponentConfig string
	positionPath   string
	playedMoves    []string
	numGames       int
	numParallel    int
	outDir         string
	experimentName string

	rootCmd = &cobra.Command{
		Use:          "ropes",
		Short:        "Play and analyse ropes-and-ladders games with an alpha-beta searcher",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			return nil
		},
	}

	selfplayCmd = &cobra.Command{
		Use:   "selfplay",
		Short: "Play searcher against searcher and record the games as CSV",
		Args:  cobra.NoArgs,
		RunE:  runSelfplay,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Search a position and print the chosen move with every root score",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}

	validateBoardCmd = &cobra.Command{
		Use:   "validate-board [file]",
		Short: "Check that a board file loads",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidateBoard,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")

	selfplayCmd.Flags().StringVar(&boardPath, "board", "", "board YAML file, the default board when empty")
	selfplayCmd.Flags().StringVar(&configPath, "config", "", "search config YAML file for the first agent")
	selfplayCmd.Flags().StringVar(&opponentConfig, "opponent-config", "", "search config YAML file for the second agent, same as --config when empty")
	selfplayCmd.Flags().IntVar(&numGames, "games", 10, "number of games")
	selfplayCmd.Flags().IntVar(&numParallel, "parallel", 1, "games played at once")
	selfplayCmd.Flags().StringVar(&outDir, "out", "experiments", "CSV output root, nothing is written when empty")
	selfplayCmd.Flags().StringVar(&experimentName, "name", "selfplay", "experiment name, used as the output subdirectory")

	analyzeCmd.Flags().StringVar(&boardPath, "board", "", "board YAML file, the default board when empty")
	analyzeCmd.Flags().StringVar(&positionPath, "position", "", "position YAML file, the initial position when empty")
	analyzeCmd.Flags().StringVar(&configPath, "config", "", "search config YAML file")
	analyzeCmd.Flags().StringSliceVar(&playedMoves, "moves", nil, "moves played from the position before searching, e.g. move@3,rope@12")

	rootCmd.AddCommand(selfplayCmd, analyzeCmd, validateBoardCmd)
}

func runSelfplay(cmd *cobra.Command, args []string) error {
	board, err := game.LoadBoard(boardPath)
	if err != nil {
		return err
	}
	config1, err := searcher.LoadConfig(configPath)
	if err != nil {
		return err
	}
	config2 := config1
	if opponentConfig != "" {
		if config2, err = searcher.LoadConfig(opponentConfig); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	report, err := experiments.Run(cmd.Context(), experiments.Experiment{
		Name:     experimentName,
		Board:    board,
		Agents:   [2]metrics.AgentConfig{{ID: 1, Config: config1}, {ID: 2, Config: config2}},
		Games:    numGames,
		Parallel: numParallel,
		OutDir:   outDir,
		Metrics:  searcher.NewPrometheusMetrics(reg),
	})
	if err != nil {
		return err
	}

	logRegistry(reg)
	s := report.Summary
	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d games, agent 1 won %d, agent 2 won %d, %d draws, %.1f moves per game\n",
		report.RunID, s.Games, s.Wins[1], s.Wins[2], s.Draws, s.AvgMoves)
	if report.Dir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", report.Dir)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	board, err := game.LoadBoard(boardPath)
	if err != nil {
		return err
	}
	config, err := searcher.LoadConfig(configPath)
	if err != nil {
		return err
	}
	state, err := loadPosition(board, positionPath)
	if err != nil {
		return err
	}
	for _, text := range playedMoves {
		m, err := game.ParseMove(text)
		if err != nil {
			return err
		}
		if state, err = game.Apply(state, m); err != nil {
			return err
		}
	}

	res, err := searcher.NewEngine(
		searcher.WithTableCapacity(config.TableCapacity),
		searcher.WithMetrics(),
	).Search(cmd.Context(), state, config)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s to move, phase %s\n", state.Player().ID, state.Phase())
	fmt.Fprintf(out, "best move %s, score %.2f, depth %d, %d nodes in %s\n",
		res.Move, res.Score, res.Depth, res.Metrics.Nodes, res.Metrics.Duration)

	moves := lo.Keys(res.RootScores)
	slices.SortFunc(moves, func(a, b game.Move) int {
		switch sa, sb := res.RootScores[a], res.RootScores[b]; {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return a.Target - b.Target
	})
	for _, m := range moves {
		fmt.Fprintf(out, "  %-8s %.2f\n", m, res.RootScores[m])
	}
	return nil
}

func runValidateBoard(cmd *cobra.Command, args []string) error {
	board, err := game.LoadBoard(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cells, prize %d, %d ladders, start is %d moves from the prize\n",
		args[0], board.Size(), board.Prize(), len(board.Ladders()), board.DistanceToPrize(board.Start()))
	return nil
}

// loadPosition reads a game.Snapshot, or returns the initial position when
// path is empty.
func loadPosition(board *game.Board, path string) (*game.GameState, error) {
	if path == "" {
		return game.NewGameState(board), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read position %s: %w", path, err)
	}
	var snap game.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", game.ErrInvalidState, path, err)
	}
	return game.Restore(board, snap)
}

// logRegistry logs the total of every counter and histogram in reg.
func logRegistry(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("failed to gather search metrics")
		return
	}
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				total += m.GetHistogram().GetSampleSum()
			}
		}
		log.Info().Str("metric", mf.GetName()).Float64("total", total).Msg("search metrics")
	}
}
