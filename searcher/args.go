package searcher

// Move ordering priorities. Larger values are searched first.

const hintPriority = 1e7

const winPriority = 1e6

// Placements that stop an opponent who is about to win.
const urgentPriority = 1e5

// Per cell of distance gained by a movement.
const progressPriority = 100.0

// Placements on the opponent's shortest path. Late in the game they outrank
// a single step of progress.
const blockPriority = 50.0
const lateBlockPriority = 150.0
