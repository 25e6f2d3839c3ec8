package game

import (
	"fmt"
	"sort"

	"ropes/utils"
)

const unreachable = -1

// PhaseThresholds decide when a game moves from EARLY to MID to LATE.
type PhaseThresholds struct {
	EarlyPlies   int `yaml:"early_plies" validate:"gte=0"`
	MidPlies     int `yaml:"mid_plies" validate:"gtefield=EarlyPlies"`
	LateDistance int `yaml:"late_distance" validate:"gte=0"`
}

// Board is the static layout of a track of cells. It never changes once built
// and is shared by every state of a game.
type Board struct {
	size       int
	start      int
	prize      int
	maxStep    int
	pushOffset int
	ropes      int
	walls      []bool
	zone       []bool
	ladders    map[int]int
	phases     PhaseThresholds

	// dist[from*size+to] counts the moves needed to land on to, honouring
	// ladders and walls but ignoring rope obstacles.
	dist []int32
}

// NewBoard validates cfg and builds the board. Any error wraps ErrInvalidBoard.
func NewBoard(cfg BoardConfig) (*Board, error) {
	if err := cfg.expandLayout(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		size:       cfg.Size,
		start:      cfg.Start,
		prize:      cfg.Prize,
		maxStep:    cfg.MaxStep,
		pushOffset: cfg.PushOffset,
		ropes:      cfg.Ropes,
		walls:      make([]bool, cfg.Size),
		zone:       make([]bool, cfg.Size),
		ladders:    make(map[int]int, len(cfg.Ladders)),
		phases:     cfg.Phases,
	}
	if b.prize < 0 {
		b.prize = b.size - 1
	}

	for _, w := range cfg.Walls {
		b.walls[w] = true
	}
	for base, dest := range cfg.Ladders {
		b.ladders[base] = dest
	}
	if len(cfg.RopeZone) == 0 {
		for c := range b.zone {
			b.zone[c] = true
		}
	}
	for _, r := range cfg.RopeZone {
		for c := r.From; c <= r.To; c++ {
			b.zone[c] = true
		}
	}

	if err := b.check(); err != nil {
		return nil, err
	}
	b.computeDistances()
	for c := 0; c < b.size; c++ {
		if !b.walls[c] && c != b.prize && b.Distance(c, b.prize) == unreachable {
			return nil, fmt.Errorf("%w: cell %d cannot reach the prize", ErrInvalidBoard, c)
		}
	}
	return b, nil
}

// check enforces the cross-field rules the struct tags cannot express.
func (b *Board) check() error {
	if b.prize >= b.size {
		return fmt.Errorf("%w: prize %d out of range", ErrInvalidBoard, b.prize)
	}
	if b.start >= b.size {
		return fmt.Errorf("%w: start %d out of range", ErrInvalidBoard, b.start)
	}
	if b.start == b.prize {
		return fmt.Errorf("%w: start and prize share cell %d", ErrInvalidBoard, b.start)
	}
	if b.walls[b.start] || b.walls[b.prize] {
		return fmt.Errorf("%w: start and prize must not be walls", ErrInvalidBoard)
	}

	for base, dest := range b.ladders {
		if !b.InBounds(base) || !b.InBounds(dest) {
			return fmt.Errorf("%w: ladder %d->%d out of range", ErrInvalidBoard, base, dest)
		}
		if base == dest {
			return fmt.Errorf("%w: ladder at %d leads to itself", ErrInvalidBoard, base)
		}
		if base == b.prize {
			return fmt.Errorf("%w: ladder base %d is the prize", ErrInvalidBoard, base)
		}
		if b.walls[base] || b.walls[dest] {
			return fmt.Errorf("%w: ladder %d->%d touches a wall", ErrInvalidBoard, base, dest)
		}
	}
	return nil
}

// computeDistances runs one breadth-first search per source cell over the
// landing graph: an edge leads from a cell to wherever a single movement
// ends up after the ladder hop.
func (b *Board) computeDistances() {
	b.dist = make([]int32, b.size*b.size)
	for i := range b.dist {
		b.dist[i] = unreachable
	}

	queue := make([]int, 0, b.size)
	for from := 0; from < b.size; from++ {
		if b.walls[from] {
			continue
		}
		row := b.dist[from*b.size : (from+1)*b.size]
		row[from] = 0
		queue = append(queue[:0], from)
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if c == b.prize {
				continue
			}
			for _, t := range b.Targets(c) {
				l := b.Land(t)
				if row[l] == unreachable {
					row[l] = row[c] + 1
					queue = append(queue, l)
				}
			}
		}
	}
}

func (b *Board) Size() int       { return b.size }
func (b *Board) Start() int      { return b.start }
func (b *Board) Prize() int      { return b.prize }
func (b *Board) MaxStep() int    { return b.maxStep }
func (b *Board) PushOffset() int { return b.pushOffset }

// Ropes is the initial rope inventory of each player.
func (b *Board) Ropes() int { return b.ropes }

func (b *Board) Phases() PhaseThresholds { return b.phases }

func (b *Board) InBounds(c int) bool { return c >= 0 && c < b.size }

func (b *Board) IsWall(c int) bool { return b.InBounds(c) && b.walls[c] }

func (b *Board) InZone(c int) bool { return b.InBounds(c) && b.zone[c] }

// Ladder returns the destination of the ladder based at c.
func (b *Board) Ladder(c int) (int, bool) {
	dest, ok := b.ladders[c]
	return dest, ok
}

// Ladders returns a copy of the ladder mapping.
func (b *Board) Ladders() map[int]int {
	out := make(map[int]int, len(b.ladders))
	for k, v := range b.ladders {
		out[k] = v
	}
	return out
}

// Land resolves a single ladder hop from the landing cell c.
func (b *Board) Land(c int) int {
	if dest, ok := b.ladders[c]; ok {
		return dest
	}
	return c
}

// Targets lists the cells a token on c may move to, in ascending order.
// Walls cannot be landed on but may be jumped over.
func (b *Board) Targets(c int) []int {
	out := make([]int, 0, 2*b.maxStep)
	for k := b.maxStep; k >= 1; k-- {
		if t := c - k; b.InBounds(t) && !b.walls[t] {
			out = append(out, t)
		}
	}
	for k := 1; k <= b.maxStep; k++ {
		if t := c + k; b.InBounds(t) && !b.walls[t] {
			out = append(out, t)
		}
	}
	return out
}

// IsTarget reports whether a movement from c to t is allowed.
func (b *Board) IsTarget(c, t int) bool {
	d := t - c
	if d < 0 {
		d = -d
	}
	return d >= 1 && d <= b.maxStep && b.InBounds(t) && !b.walls[t]
}

// Distance counts the moves needed to get from one cell to another, or -1.
func (b *Board) Distance(from, to int) int {
	if !b.InBounds(from) || !b.InBounds(to) {
		return unreachable
	}
	return int(b.dist[from*b.size+to])
}

// DistanceToPrize is the admissible distance heuristic used by evaluation.
// Unreachable cells report the board size.
func (b *Board) DistanceToPrize(c int) int {
	d := b.Distance(c, b.prize)
	if d == unreachable {
		return b.size
	}
	return d
}

// OnShortestPath reports whether a token on from lands on cell along some
// shortest route to the prize.
func (b *Board) OnShortestPath(from, cell int) bool {
	if from == cell {
		return false
	}
	total := b.Distance(from, b.prize)
	head := b.Distance(from, cell)
	tail := b.Distance(cell, b.prize)
	if total == unreachable || head == unreachable || tail == unreachable {
		return false
	}
	return head+tail == total
}

// NextOnPath returns the landing cells one move ahead of from on a shortest
// route to the prize.
func (b *Board) NextOnPath(from int) []int {
	total := b.Distance(from, b.prize)
	if total <= 0 {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, t := range b.Targets(from) {
		l := b.Land(t)
		if seen[l] || b.Distance(l, b.prize) != total-1 {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// PushBack moves a token on c offset cells away from the prize, clamped to
// the board edge. Walls and the prize are skipped.
func (b *Board) PushBack(c, offset int) int {
	dir := utils.Sign(b.start - b.prize)
	dest := utils.Clamp(c+dir*offset, 0, b.size-1)
	for t := dest; b.InBounds(t); t += dir {
		if !b.walls[t] && t != b.prize {
			return t
		}
	}
	for t := dest - dir; t != c && b.InBounds(t); t -= dir {
		if !b.walls[t] && t != b.prize {
			return t
		}
	}
	return c
}

// Phase classifies a position by ply count and by how close either token is
// to the prize.
func (b *Board) Phase(ply int, positions ...int) Phase {
	for _, p := range positions {
		if b.DistanceToPrize(p) <= b.phases.LateDistance {
			return Late
		}
	}
	switch {
	case ply >= b.phases.MidPlies:
		return Late
	case ply >= b.phases.EarlyPlies:
		return Mid
	default:
		return Early
	}
}
