package searcher

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ropes/game"
	"ropes/meta"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// StrategyConfig tunes which rope placements the search considers.
type StrategyConfig struct {
	// Placements kept per node in each phase after ordering, 0 keeps all.
	EarlyRopeCap int `yaml:"early_rope_cap" validate:"gte=0"`
	MidRopeCap   int `yaml:"mid_rope_cap" validate:"gte=0"`
	LateRopeCap  int `yaml:"late_rope_cap" validate:"gte=0"`
	// An opponent this many moves from the prize triggers urgent defense.
	UrgentDistance int `yaml:"urgent_distance" validate:"gte=0"`
}

type OscillationConfig struct {
	Window  int     `yaml:"window" validate:"gte=0"`
	Penalty float64 `yaml:"penalty" validate:"gte=0"`
}

type Config struct {
	MaxDepth      int               `yaml:"max_depth" validate:"gt=0"`
	TimeLimit     time.Duration     `yaml:"time_limit" validate:"gte=0"`
	TableCapacity int               `yaml:"table_capacity" validate:"gte=0"`
	Weights       game.Weights      `yaml:"weights"`
	Strategy      StrategyConfig    `yaml:"strategy"`
	Oscillation   OscillationConfig `yaml:"oscillation"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:      meta.MAX_DEPTH,
		TimeLimit:     meta.TIME_LIMIT,
		TableCapacity: meta.TABLE_CAPACITY,
		Weights:       game.DefaultWeights(),
		Strategy: StrategyConfig{
			EarlyRopeCap:   2,
			MidRopeCap:     6,
			LateRopeCap:    0,
			UrgentDistance: 1,
		},
		Oscillation: OscillationConfig{
			Window:  meta.OSCILLATION_WINDOW,
			Penalty: meta.OSCILLATION_PENALTY,
		},
	}
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig applies, in order, the defaults, the YAML file at path (if any)
// and the ROPES_* environment variables, then validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read search config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	loadConfigFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFromEnv(cfg *Config) {
	if v := os.Getenv("ROPES_MAX_DEPTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.MaxDepth = i
		}
	}
	if v := os.Getenv("ROPES_TIME_LIMIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TimeLimit = d
		}
	}
	if v := os.Getenv("ROPES_TABLE_CAPACITY"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TableCapacity = i
		}
	}
}
