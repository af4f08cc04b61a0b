package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override file values
const EnvPrefix = "ALLOCATOR_"

// ScorerConfig selects and tunes the match scorer
type ScorerConfig struct {
	Mode         string  `koanf:"mode" validate:"oneof=learned heuristic"`
	ModelPath    string  `koanf:"modelPath"`
	SeedDataPath string  `koanf:"seedDataPath"`
	Epochs       int     `koanf:"epochs" validate:"min=1"`
	BatchSize    int     `koanf:"batchSize" validate:"min=1"`
	LearningRate float64 `koanf:"learningRate" validate:"gt=0"`
	Seed         int64   `koanf:"seed"`
}

// MatcherConfig tunes the batch matcher
type MatcherConfig struct {
	// Workers bounds concurrent scoring; 0 uses GOMAXPROCS
	Workers int `koanf:"workers" validate:"min=0"`
}

// PlanningConfig describes the planning window
type PlanningConfig struct {
	// Date is the day availability rules are expanded over (YYYY-MM-DD); empty means today
	Date string `koanf:"date" validate:"omitempty,datetime=2006-01-02"`
}

// MetricsConfig controls the metrics dump
type MetricsConfig struct {
	TextfilePath string `koanf:"textfilePath"`
}

// Config represents the application configuration
type Config struct {
	// DatabaseURL is a postgres connection string; empty disables persistence
	DatabaseURL string         `koanf:"databaseURL"`
	Scorer      ScorerConfig   `koanf:"scorer"`
	Matcher     MatcherConfig  `koanf:"matcher"`
	Planning    PlanningConfig `koanf:"planning"`
	Metrics     MetricsConfig  `koanf:"metrics"`
}

// PlanningDate returns the configured planning day, or today when unset
func (c *Config) PlanningDate() (time.Time, error) {
	if c.Planning.Date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	date, err := time.ParseInLocation("2006-01-02", c.Planning.Date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid planning date %q: %w", c.Planning.Date, err)
	}
	return date, nil
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Scorer: ScorerConfig{
			Mode:         "learned",
			Epochs:       50,
			BatchSize:    32,
			LearningRate: 0.001,
			Seed:         42,
		},
	}
}

// envKeys maps environment variable names (without prefix) to config keys
var envKeys = map[string]string{
	"DATABASE_URL":         "databaseURL",
	"SCORER_MODE":          "scorer.mode",
	"SCORER_MODEL_PATH":    "scorer.modelPath",
	"SCORER_SEED_DATA":     "scorer.seedDataPath",
	"SCORER_EPOCHS":        "scorer.epochs",
	"SCORER_BATCH_SIZE":    "scorer.batchSize",
	"SCORER_LEARNING_RATE": "scorer.learningRate",
	"SCORER_SEED":          "scorer.seed",
	"MATCHER_WORKERS":      "matcher.workers",
	"PLANNING_DATE":        "planning.date",
	"METRICS_TEXTFILE":     "metrics.textfilePath",
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads configuration for an environment. Values are layered
// defaults, then allocator_config.<env>.yaml (current directory, then home
// directory) if present, then ALLOCATOR_* environment variables.
func LoadWithEnv(environment string) (*Config, error) {
	path, err := findConfigFile(environment)
	if err != nil {
		return nil, err
	}
	return load(path)
}

// LoadFromPath loads and validates the configuration from a specific path,
// with environment overrides applied on top
func LoadFromPath(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[strings.TrimPrefix(s, EnvPrefix)]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for allocator_config.<env>.yaml in the current
// directory and then the home directory. An empty path means no file exists.
func findConfigFile(environment string) (string, error) {
	if environment == "" {
		return "", fmt.Errorf("environment must not be empty")
	}

	configFileName := fmt.Sprintf("allocator_config.%s.yaml", environment)

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", nil
}
