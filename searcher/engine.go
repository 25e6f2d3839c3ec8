package searcher

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ropes/game"
)

type Option func(e *Engine)

func WithTableCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.table = NewTranspositionTable(capacity)
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Engine) {
		e.evaluate = evaluate
	}
}

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = NewMetricsCollector()
	}
}

// WithPrometheus reports every search to m as well as to Result.Metrics.
func WithPrometheus(m *PrometheusMetrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m.Collector()
		}
	}
}

// Engine is an alpha-beta searcher with iterative deepening. It owns its
// transposition table and game history, so each concurrent game needs its
// own Engine.
type Engine struct {
	table    *TranspositionTable
	guard    *OscillationGuard
	evaluate game.Evaluate
	metrics  MetricsCollector
}

var _ Searcher = (*Engine)(nil)

func NewEngine(options ...Option) *Engine {
	e := &Engine{ // Default values
		table:   NewTranspositionTable(0),
		guard:   NewOscillationGuard(),
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Observe records a position reached in the actual game, so the search can
// steer away from repeating it.
func (e *Engine) Observe(state *game.GameState) {
	e.guard.Observe(state.Hash())
}

// Reset forgets the game history and every cached search result.
func (e *Engine) Reset() {
	e.guard.Reset()
	e.table.Clear()
}

func (e *Engine) Table() *TranspositionTable {
	return e.table
}

func (e *Engine) SelectMove(ctx context.Context, state *game.GameState, cfg Config) (game.Move, error) {
	res, err := e.Search(ctx, state, cfg)
	if err != nil {
		return game.Move{}, err
	}
	return res.Move, nil
}

// Search deepens from depth 1 to cfg.MaxDepth until cfg.TimeLimit runs out
// and returns the best move of the deepest completed iteration. When not
// even depth 1 completes, the best root move scored so far is returned, or
// else the first move in search order. Running out of time is not an error.
func (e *Engine) Search(ctx context.Context, state *game.GameState, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if state.IsTerminal() {
		return Result{}, ErrGameOver
	}
	if len(game.LegalMoves(state)) == 0 {
		return Result{}, fmt.Errorf("%w for %s", ErrNoLegalMoves, state.Player().ID)
	}

	evaluate := e.evaluate
	if evaluate == nil {
		evaluate = game.Evaluator{Weights: cfg.Weights}.Score
	}
	s := &search{
		cfg:      cfg,
		evaluate: evaluate,
		table:    e.table,
		guard:    e.guard,
		metrics:  e.metrics,
		root:     state.Player().ID,
		ctx:      ctx,
		deadline: time.Now().Add(cfg.TimeLimit),
	}
	if d, ok := ctx.Deadline(); ok && d.Before(s.deadline) {
		s.deadline = d
	}

	s.metrics.Start()
	evictions := e.table.Stats().Evictions
	rootHash := state.Hash()
	s.guard.Push(rootHash)
	defer s.guard.Pop()

	var hint game.Move
	var hasHint bool
	if entry, ok := e.table.Probe(rootHash); ok {
		hint, hasHint = entry.Best, entry.HasBest
	}

	var result Result
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		r, complete := s.searchRoot(state, depth, hint, hasHint)
		if !complete {
			s.metrics.TimedOut()
			if depth == 1 {
				result = fallback(s, state, r, hint, hasHint)
			}
			log.Debug().Int("depth", depth).Msg("search timed out")
			break
		}

		result = Result{Move: r.move, Score: r.score, Depth: depth, RootScores: r.scores}
		s.metrics.CompleteDepth(depth)
		log.Debug().
			Int("depth", depth).
			Str("move", r.move.String()).
			Float64("score", r.score).
			Msg("deepening-iteratively")

		hint, hasHint = r.move, true
		if game.IsWinScore(r.score) {
			break
		}
	}

	s.metrics.AddEvictions(e.table.Stats().Evictions - evictions)
	result.Metrics = s.metrics.Complete()
	return result, nil
}

// fallback picks a move when depth 1 did not finish.
func fallback(s *search, state *game.GameState, partial rootResult, hint game.Move, hasHint bool) Result {
	if partial.found {
		return Result{Move: partial.move, Score: partial.score, RootScores: partial.scores}
	}
	moves := s.candidates(state, hint, hasHint)
	if len(moves) == 0 {
		moves = game.LegalMoves(state)
	}
	return Result{Move: moves[0], Score: s.evaluate(state, s.root), RootScores: partial.scores}
}
