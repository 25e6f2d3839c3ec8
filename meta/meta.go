// meta/meta.go
package meta

import "time"

// MAX_DEPTH defines the deepest iteration of the alpha-beta search.
const MAX_DEPTH = 6

// TIME_LIMIT defines the wall-clock budget of a single move search.
const TIME_LIMIT = 500 * time.Millisecond

// TABLE_CAPACITY defines how many positions a transposition table keeps.
const TABLE_CAPACITY = 1 << 16

// HISTORY_LENGTH defines how many played positions the oscillation guard remembers.
const HISTORY_LENGTH = 64

// OSCILLATION_WINDOW defines how many recent plies count as a repetition.
const OSCILLATION_WINDOW = 8

// OSCILLATION_PENALTY defines the score malus for repeating a recent position.
const OSCILLATION_PENALTY = 50.0

// MAX_TURNS defines when a self-play game is called a draw.
const MAX_TURNS = 300
