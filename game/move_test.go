package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	t.Run("reads what String writes", func(t *testing.T) {
		for _, m := range []Move{MoveTo(0), MoveTo(17), PlaceRope(29)} {
			got, err := ParseMove(m.String())

			require.NoError(t, err)
			require.Equal(t, m, got)
		}
	})

	t.Run("rejects malformed moves", func(t *testing.T) {
		for _, s := range []string{"", "move", "move@", "jump@3", "rope:4"} {
			_, err := ParseMove(s)

			require.Error(t, err, s)
		}
	})
}
