package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBoard(t *testing.T) {
	t.Run("fields override the defaults", func(t *testing.T) {
		b, err := ParseBoard([]byte(`
size: 12
prize: 11
walls: []
ladders:
  2: 7
rope_zone:
  - {from: 3, to: 11}
max_step: 1
ropes: 2
`))

		require.NoError(t, err)
		require.Equal(t, 12, b.Size())
		require.Equal(t, map[int]int{2: 7}, b.Ladders(), "File ladders should replace the defaults")
		require.Equal(t, 2, b.Ropes())
		require.Equal(t, 3, b.PushOffset(), "Unset fields should keep their defaults")
		require.False(t, b.InZone(2))
	})

	t.Run("layout describes the cells", func(t *testing.T) {
		b, err := ParseBoard([]byte(`
layout: "S..#. ..r*"
max_step: 2
ladders: {1: 5}
`))

		require.NoError(t, err)
		require.Equal(t, 9, b.Size())
		require.Equal(t, 0, b.Start())
		require.Equal(t, 8, b.Prize())
		require.True(t, b.IsWall(3))
		require.True(t, b.InZone(7))
		require.False(t, b.InZone(6))
	})

	t.Run("duplicate prize cells are fatal", func(t *testing.T) {
		_, err := ParseBoard([]byte(`layout: "S..*..*"`))

		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("duplicate ladder bases are fatal", func(t *testing.T) {
		_, err := ParseBoard([]byte("ladders:\n  4: 10\n  4: 12\n"))

		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("unknown layout characters are fatal", func(t *testing.T) {
		_, err := ParseBoard([]byte(`layout: "S..x..*"`))

		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("layout size must agree with size", func(t *testing.T) {
		_, err := ParseBoard([]byte("size: 10\nlayout: \"S....*\"\n"))

		require.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestLoadBoard(t *testing.T) {
	t.Run("empty path gives the default board", func(t *testing.T) {
		b, err := LoadBoard("")

		require.NoError(t, err)
		require.Equal(t, 30, b.Size())
	})

	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "board.yaml")
		require.NoError(t, os.WriteFile(path, []byte("layout: \"S.....*\"\nmax_step: 1\n"), 0o644))

		b, err := LoadBoard(path)

		require.NoError(t, err)
		require.Equal(t, 7, b.Size())
		require.Equal(t, 6, b.DistanceToPrize(0))
	})

	t.Run("shipped board matches the default", func(t *testing.T) {
		def, err := LoadBoard("")
		require.NoError(t, err)

		b, err := LoadBoard(filepath.Join("..", "configs", "board.yaml"))

		require.NoError(t, err)
		require.Equal(t, def.Size(), b.Size())
		require.Equal(t, def.Prize(), b.Prize())
		require.Equal(t, def.Ladders(), b.Ladders())
		for c := 0; c < def.Size(); c++ {
			require.Equal(t, def.IsWall(c), b.IsWall(c), c)
			require.Equal(t, def.InZone(c), b.InZone(c), c)
			require.Equal(t, def.DistanceToPrize(c), b.DistanceToPrize(c), c)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBoard(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}
