package game

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// CellRange is an inclusive range of cells.
type CellRange struct {
	From int `yaml:"from" validate:"gte=0"`
	To   int `yaml:"to" validate:"gtefield=From"`
}

// BoardConfig is the file form of a Board.
//
// Layout, when set, describes the board one character per cell: '.' plain,
// '#' wall, '*' prize, 'S' start, 'r' rope zone. Whitespace is ignored. Walls
// and zone cells from the layout are added to the explicit lists.
type BoardConfig struct {
	Size   int    `yaml:"size" validate:"gte=2,lte=1024"`
	Layout string `yaml:"layout"`
	Start  int    `yaml:"start" validate:"gte=0"`
	// Prize < 0 selects the last cell.
	Prize      int             `yaml:"prize"`
	Walls      []int           `yaml:"walls" validate:"dive,gte=0"`
	Ladders    map[int]int     `yaml:"ladders"`
	RopeZone   []CellRange     `yaml:"rope_zone" validate:"dive"`
	MaxStep    int             `yaml:"max_step" validate:"gte=1"`
	PushOffset int             `yaml:"push_offset" validate:"gte=1"`
	Ropes      int             `yaml:"ropes" validate:"gte=0"`
	Phases     PhaseThresholds `yaml:"phases"`
}

// DefaultBoardConfig is a 30-cell track with three ladders, two walls and
// three ropes per player.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Size:       30,
		Start:      0,
		Prize:      -1,
		Walls:      []int{13, 20},
		Ladders:    map[int]int{4: 11, 9: 16, 17: 23},
		RopeZone:   []CellRange{{From: 5, To: 29}},
		MaxStep:    2,
		PushOffset: 3,
		Ropes:      3,
		Phases: PhaseThresholds{
			EarlyPlies:   8,
			MidPlies:     16,
			LateDistance: 3,
		},
	}
}

// Validate checks field ranges. Cross-field rules are checked by NewBoard.
func (c BoardConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	for _, w := range c.Walls {
		if w >= c.Size {
			return fmt.Errorf("%w: wall %d out of range", ErrInvalidBoard, w)
		}
	}
	for _, r := range c.RopeZone {
		if r.To >= c.Size {
			return fmt.Errorf("%w: rope zone %d..%d out of range", ErrInvalidBoard, r.From, r.To)
		}
	}
	return nil
}

func (c *BoardConfig) expandLayout() error {
	if c.Layout == "" {
		return nil
	}
	cells := strings.Join(strings.Fields(c.Layout), "")
	if c.Size != 0 && c.Size != len(cells) {
		return fmt.Errorf("%w: layout has %d cells but size is %d", ErrInvalidBoard, len(cells), c.Size)
	}
	c.Size = len(cells)

	prize, start := -1, -1
	for i, ch := range cells {
		switch ch {
		case '.':
		case '#':
			c.Walls = append(c.Walls, i)
		case '*':
			if prize >= 0 {
				return fmt.Errorf("%w: duplicate prize cells %d and %d", ErrInvalidBoard, prize, i)
			}
			prize = i
		case 'S':
			if start >= 0 {
				return fmt.Errorf("%w: duplicate start cells %d and %d", ErrInvalidBoard, start, i)
			}
			start = i
		case 'r':
			c.RopeZone = append(c.RopeZone, CellRange{From: i, To: i})
		default:
			return fmt.Errorf("%w: unknown layout character %q at %d", ErrInvalidBoard, ch, i)
		}
	}
	if prize >= 0 {
		c.Prize = prize
	}
	if start >= 0 {
		c.Start = start
	}
	return nil
}

// ParseBoard reads a YAML board on top of DefaultBoardConfig. A file that
// gives a layout starts from an empty wall, ladder and zone set instead, and
// a file that lists ladders replaces the default ones.
func ParseBoard(data []byte) (*Board, error) {
	var probe struct {
		Layout  string      `yaml:"layout"`
		Ladders map[int]int `yaml:"ladders"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}

	cfg := DefaultBoardConfig()
	if probe.Layout != "" {
		cfg.Size = 0
		cfg.Walls = nil
		cfg.Ladders = nil
		cfg.RopeZone = nil
	}
	if probe.Ladders != nil {
		cfg.Ladders = nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	return NewBoard(cfg)
}

// LoadBoard reads a board file. An empty path yields the default board.
func LoadBoard(path string) (*Board, error) {
	if path == "" {
		return NewBoard(DefaultBoardConfig())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board %s: %w", path, err)
	}
	b, err := ParseBoard(data)
	if err != nil {
		return nil, fmt.Errorf("load board %s: %w", path, err)
	}
	return b, nil
}
