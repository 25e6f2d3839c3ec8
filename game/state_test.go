package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	b := newBoard(t, trackConfig())

	t.Run("obstacle order does not matter", func(t *testing.T) {
		a := restore(t, b, Snapshot{Positions: [2]int{2, 3}, Anchors: []AnchorDef{{Player1, 8}, {Player2, 5}}})
		c := restore(t, b, Snapshot{Positions: [2]int{2, 3}, Anchors: []AnchorDef{{Player2, 5}, {Player1, 8}}})

		require.Equal(t, a.Hash(), c.Hash())
	})

	t.Run("ply count does not matter", func(t *testing.T) {
		a := restore(t, b, Snapshot{Positions: [2]int{2, 3}})
		c := restore(t, b, Snapshot{Positions: [2]int{2, 3}, Ply: 12})

		require.Equal(t, a.Hash(), c.Hash())
	})

	t.Run("spent ropes do not matter", func(t *testing.T) {
		a := restore(t, b, Snapshot{Positions: [2]int{2, 3}})
		c := a.Copy()
		c.Obstacles = []RopeObstacle{{Owner: Player1, Anchor: 9, PushOffset: 3}}

		require.Equal(t, a.Hash(), c.Hash())
	})

	t.Run("side to move matters", func(t *testing.T) {
		a := restore(t, b, Snapshot{Positions: [2]int{2, 3}})
		c := restore(t, b, Snapshot{Positions: [2]int{2, 3}, Current: Player2})

		require.NotEqual(t, a.Hash(), c.Hash())
	})

	t.Run("positions, inventories and anchors matter", func(t *testing.T) {
		base := restore(t, b, Snapshot{Positions: [2]int{2, 3}, Ropes: [2]int{1, 1}})
		others := []Snapshot{
			{Positions: [2]int{3, 2}, Ropes: [2]int{1, 1}},
			{Positions: [2]int{2, 3}, Ropes: [2]int{0, 1}},
			{Positions: [2]int{2, 3}, Ropes: [2]int{1, 1}, Anchors: []AnchorDef{{Player1, 8}}},
			{Positions: [2]int{2, 3}, Ropes: [2]int{1, 1}, Anchors: []AnchorDef{{Player2, 8}}},
		}
		for _, snap := range others {
			require.NotEqual(t, base.Hash(), restore(t, b, snap).Hash(), "%+v", snap)
		}
	})
}

func TestRestore(t *testing.T) {
	cfg := trackConfig()
	cfg.RopeZone = []CellRange{{From: 5, To: 15}}
	cfg.MaxStep = 2
	cfg.Walls = []int{4}
	b := newBoard(t, cfg)

	t.Run("snapshot round trip", func(t *testing.T) {
		snap := Snapshot{
			Positions: [2]int{6, 3},
			Ropes:     [2]int{2, 1},
			Anchors:   []AnchorDef{{Owner: Player2, Cell: 9}},
			Current:   Player2,
			Ply:       5,
		}

		gs := restore(t, b, snap)

		require.Equal(t, snap, gs.Snapshot())
		require.Equal(t, Player2, gs.Player().ID)
		require.Equal(t, Player1, gs.Opponent().ID)
	})

	invalid := map[string]Snapshot{
		"player on a wall":     {Positions: [2]int{4, 0}},
		"player off the board": {Positions: [2]int{0, 25}},
		"negative ropes":       {Ropes: [2]int{-1, 0}},
		"anchor outside zone":  {Anchors: []AnchorDef{{Owner: Player1, Cell: 2}}},
		"duplicate anchor":     {Anchors: []AnchorDef{{Owner: Player1, Cell: 7}, {Owner: Player1, Cell: 7}}},
		"unknown owner":        {Anchors: []AnchorDef{{Owner: PlayerID(5), Cell: 7}}},
		"unknown player":       {Current: PlayerID(3)},
		"negative ply":         {Ply: -1},
	}
	for name, snap := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := Restore(b, snap)

			require.ErrorIs(t, err, ErrInvalidState)
		})
	}
}
