package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Source struct {
		JSONPath   string `yaml:"json_path"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"source"`
	RulesFile string  `yaml:"rules_file"`
	Capital   float64 `yaml:"capital"`
}

// Load reads config from a YAML file, then applies .env and environment variable
// overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "read config")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ALERTS_JSON"); v != "" {
		cfg.Source.JSONPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Source.SQLitePath = v
	}
	if v := os.Getenv("RULES_FILE"); v != "" {
		cfg.RulesFile = v
	}
	if v := os.Getenv("CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Capital = capital
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Capital == 0 {
		cfg.Capital = 1000
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Capital <= 0 {
		return errors.New("capital must be positive")
	}
	if c.Source.JSONPath != "" && c.Source.SQLitePath != "" {
		return errors.New("source.json_path and source.sqlite_path are mutually exclusive")
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return errors.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	return nil
}
