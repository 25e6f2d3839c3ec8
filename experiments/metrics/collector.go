package metrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"ropes/game"
	"ropes/searcher"
)

// AgentConfig identifies one searcher configuration taking part in an
// experiment.
type AgentConfig struct {
	ID int
	searcher.Config
}

type MoveMetric struct {
	Step   int
	Player game.PlayerID
	Move   game.Move
	searcher.SearchMetrics
}

type GameMetric struct {
	StartingPlayer game.PlayerID
	Winner         game.PlayerID // NoPlayer for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	RopesPlaced    int
}

type GameRecord struct {
	ID     uuid.UUID
	Agent1 int // AgentConfig.ID playing as Player1
	Agent2 int // AgentConfig.ID playing as Player2
	GameMetric
}

// WinnerAgent returns the AgentConfig.ID of the winner, or -1 for a draw.
func (r GameRecord) WinnerAgent() int {
	switch r.Winner {
	case game.Player1:
		return r.Agent1
	case game.Player2:
		return r.Agent2
	}
	return -1
}

type MoveRecord struct {
	Game uuid.UUID // GameRecord.ID
	MoveMetric
}

type Summary struct {
	Games     int
	Draws     int
	Wins      map[int]int // By AgentConfig.ID
	AvgMoves  float64
	AvgNodes  float64
	AvgDepth  float64
	TimedOuts int
}

func Summarize(games []GameRecord, moves []MoveRecord) Summary {
	s := Summary{
		Games: len(games),
		Wins:  lo.CountValuesBy(lo.Filter(games, isDecided), GameRecord.WinnerAgent),
		Draws: lo.CountBy(games, func(r GameRecord) bool { return !isDecided(r, 0) }),
	}
	if len(games) > 0 {
		s.AvgMoves = float64(lo.SumBy(games, func(r GameRecord) int { return r.TotalMoves })) / float64(len(games))
	}
	if len(moves) > 0 {
		s.AvgNodes = float64(lo.SumBy(moves, func(r MoveRecord) int64 { return r.Nodes })) / float64(len(moves))
		s.AvgDepth = float64(lo.SumBy(moves, func(r MoveRecord) int { return r.Depth })) / float64(len(moves))
	}
	s.TimedOuts = lo.CountBy(moves, func(r MoveRecord) bool { return r.TimedOut })
	return s
}

func isDecided(r GameRecord, _ int) bool {
	return r.Winner != game.NoPlayer
}
