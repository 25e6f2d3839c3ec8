package searcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := LoadConfig("")

		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
max_depth: 4
time_limit: 250ms
weights:
  threat: 60
strategy:
  early_rope_cap: 1
`)

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, 4, cfg.MaxDepth)
		require.Equal(t, 250*time.Millisecond, cfg.TimeLimit)
		require.Equal(t, 60.0, cfg.Weights.Threat)
		require.Equal(t, DefaultConfig().Weights.Progress, cfg.Weights.Progress)
		require.Equal(t, 1, cfg.Strategy.EarlyRopeCap)
		require.Equal(t, DefaultConfig().Strategy.MidRopeCap, cfg.Strategy.MidRopeCap)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "max_depth: 4\n")
		t.Setenv("ROPES_MAX_DEPTH", "9")
		t.Setenv("ROPES_TIME_LIMIT", "2s")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, 9, cfg.MaxDepth)
		require.Equal(t, 2*time.Second, cfg.TimeLimit)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "max_depth: 0\n")

		_, err := LoadConfig(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed yaml is rejected", func(t *testing.T) {
		path := writeConfig(t, "max_depth: [\n")

		_, err := LoadConfig(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
