package searcher

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"ropes/game"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("search reports what it did", func(t *testing.T) {
		gs := restore(t, trackBoard(t), game.Snapshot{Positions: [2]int{5, 10}, Ropes: [2]int{3, 3}})

		res, err := NewEngine(WithMetrics()).Search(ctx, gs, testConfig(3))

		require.NoError(t, err)
		require.Equal(t, 3, res.Metrics.Depth)
		require.Positive(t, res.Metrics.Nodes)
		require.False(t, res.Metrics.TimedOut)
		require.False(t, res.Metrics.StartTime.IsZero())
	})

	t.Run("no metrics by default", func(t *testing.T) {
		gs := restore(t, trackBoard(t), game.Snapshot{Positions: [2]int{5, 10}, Ropes: [2]int{3, 3}})

		res, err := NewEngine().Search(ctx, gs, testConfig(2))

		require.NoError(t, err)
		require.Zero(t, res.Metrics.Nodes)
	})

	t.Run("time outs are reported", func(t *testing.T) {
		gs := game.NewGameState(trackBoard(t))
		cfg := testConfig(4)
		cfg.TimeLimit = 0

		res, err := NewEngine(WithMetrics()).Search(ctx, gs, cfg)

		require.NoError(t, err)
		require.True(t, res.Metrics.TimedOut)
		require.Zero(t, res.Metrics.Depth)
	})

	t.Run("prometheus sink aggregates searches", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		sink := NewPrometheusMetrics(reg)
		gs := restore(t, trackBoard(t), game.Snapshot{Positions: [2]int{5, 10}, Ropes: [2]int{3, 3}})

		first, err := NewEngine(WithPrometheus(sink)).Search(ctx, gs, testConfig(2))
		require.NoError(t, err)
		second, err := NewEngine(WithPrometheus(sink)).Search(ctx, gs, testConfig(2))
		require.NoError(t, err)

		require.Equal(t, 2.0, testutil.ToFloat64(sink.SearchesTotal.WithLabelValues("false")))
		require.Equal(t, float64(first.Metrics.Nodes+second.Metrics.Nodes), testutil.ToFloat64(sink.NodesTotal))
		count, err := testutil.GatherAndCount(reg)
		require.NoError(t, err)
		require.Equal(t, 7, count)
	})
}
