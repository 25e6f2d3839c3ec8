package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ropes/game"
)

func TestTranspositionTable(t *testing.T) {
	t.Run("evicts the least recently used entry", func(t *testing.T) {
		table := NewTranspositionTable(2)
		table.Store(1, Entry{Depth: 1})
		table.Store(2, Entry{Depth: 1})
		_, ok := table.Probe(1)
		require.True(t, ok)

		table.Store(3, Entry{Depth: 1})

		require.Equal(t, 2, table.Len())
		_, ok = table.Probe(2)
		require.False(t, ok, "Entry 2 was used least recently")
		_, ok = table.Probe(1)
		require.True(t, ok)
		_, ok = table.Probe(3)
		require.True(t, ok)
		require.Equal(t, int64(1), table.Stats().Evictions)
	})

	t.Run("keeps deeper entries", func(t *testing.T) {
		table := NewTranspositionTable(4)
		table.Store(1, Entry{Depth: 3, Score: 7, Best: game.MoveTo(2), HasBest: true})

		table.Store(1, Entry{Depth: 2, Score: 1})
		e, _ := table.Probe(1)
		require.Equal(t, 7.0, e.Score)

		table.Store(1, Entry{Depth: 3, Score: 5, Bound: Lower})
		e, _ = table.Probe(1)
		require.Equal(t, 5.0, e.Score)
		require.Equal(t, Lower, e.Bound)
		require.Equal(t, 1, table.Len())
	})

	t.Run("clear empties the table", func(t *testing.T) {
		table := NewTranspositionTable(4)
		table.Store(1, Entry{})
		table.Store(2, Entry{})

		table.Clear()

		require.Zero(t, table.Len())
		_, ok := table.Probe(1)
		require.False(t, ok)
	})

	t.Run("non-positive capacity falls back to the default", func(t *testing.T) {
		require.Positive(t, NewTranspositionTable(0).Capacity())
	})
}

func TestTableScores(t *testing.T) {
	win := game.WinScore - 5.0

	require.Equal(t, game.WinScore-2.0, toTableScore(win, 3), "Stored wins count from the node")
	require.Equal(t, win, fromTableScore(toTableScore(win, 3), 3))
	require.Equal(t, -win, fromTableScore(toTableScore(-win, 3), 3))
	require.Equal(t, 42.0, toTableScore(42, 3))
	require.Equal(t, Upper, flip(Lower))
	require.Equal(t, Exact, flip(Exact))
}
