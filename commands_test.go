package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "warn"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Run("validate-board", func(t *testing.T) {
		out, err := execute(t, "validate-board", filepath.Join("configs", "board.yaml"))

		require.NoError(t, err)
		require.Contains(t, out, "30 cells, prize 29, 3 ladders")
	})

	t.Run("validate-board rejects a broken board", func(t *testing.T) {
		_, err := execute(t, "validate-board", filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})

	t.Run("analyze", func(t *testing.T) {
		t.Setenv("ROPES_MAX_DEPTH", "3")
		t.Setenv("ROPES_TIME_LIMIT", "1m")

		out, err := execute(t, "analyze",
			"--board", filepath.Join("configs", "board.yaml"),
			"--position", filepath.Join("configs", "position.yaml"),
			"--config", filepath.Join("configs", "search.yaml"),
		)

		require.NoError(t, err)
		require.Contains(t, out, "Player1 to move, phase late")
		require.Contains(t, out, "best move rope@29")
	})

	t.Run("analyze after played moves", func(t *testing.T) {
		t.Setenv("ROPES_MAX_DEPTH", "2")
		t.Setenv("ROPES_TIME_LIMIT", "1m")

		out, err := execute(t, "analyze", "--moves", "move@2")

		require.NoError(t, err)
		require.Contains(t, out, "Player2 to move, phase early")
	})

	t.Run("selfplay", func(t *testing.T) {
		t.Setenv("ROPES_MAX_DEPTH", "2")
		t.Setenv("ROPES_TIME_LIMIT", "1m")

		out, err := execute(t, "selfplay", "--games", "2", "--parallel", "2", "--out", t.TempDir())

		require.NoError(t, err)
		require.Contains(t, out, "2 games")
		require.Contains(t, out, "records written to")
	})
}
