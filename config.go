package wardshift

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/goccy/go-yaml"
)

// Config is the runtime configuration of §6: the ward-wide presence floor,
// the solver deadline, and a parallelism hint passed through to the backend.
// Every field can be set from a YAML file and overridden from the
// environment, the same env-then-file precedence guitarbeat-gantt's config
// loader uses.
type Config struct {
	MinAlwaysPresent int     `yaml:"minAlwaysPresent" env:"WARDSHIFT_MIN_ALWAYS_PRESENT"`
	MaxSolveSeconds  float64 `yaml:"maxSolveSeconds" env:"WARDSHIFT_MAX_SOLVE_SECONDS"`
	Workers          int     `yaml:"workers" env:"WARDSHIFT_WORKERS"`
}

// Deadline converts MaxSolveSeconds into a time.Duration for the backend.
func (c Config) Deadline() time.Duration {
	return time.Duration(c.MaxSolveSeconds * float64(time.Second))
}

// DefaultConfig matches spec.md §6's minimal runtime defaults: no floor, a
// generous deadline, and single-worker search.
func DefaultConfig() Config {
	return Config{MinAlwaysPresent: 0, MaxSolveSeconds: 30, Workers: 1}
}

// LoadConfig starts from DefaultConfig, layers in every YAML file in
// pathConfigs (missing files are skipped, matching guitarbeat-gantt's
// loader), then applies environment overrides, which always win.
func LoadConfig(pathConfigs ...string) (Config, error) {
	cfg := DefaultConfig()

	for _, path := range pathConfigs {
		bts, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if strings.TrimSpace(string(bts)) == "" {
			continue
		}
		if err := yaml.Unmarshal(bts, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("env parse: %w", err)
	}

	if cfg.MinAlwaysPresent < 0 {
		return cfg, fmt.Errorf("minAlwaysPresent must be >= 0, got %d", cfg.MinAlwaysPresent)
	}
	if cfg.MaxSolveSeconds <= 0 {
		return cfg, fmt.Errorf("maxSolveSeconds must be > 0, got %f", cfg.MaxSolveSeconds)
	}
	if cfg.Workers < 1 {
		return cfg, fmt.Errorf("workers must be >= 1, got %d", cfg.Workers)
	}

	return cfg, nil
}
