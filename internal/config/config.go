package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TasksDir       string `yaml:"tasks_dir"`
	ResultsPath    string `yaml:"results_path"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		TasksDir:       "docs/_data/tasks",
		ResultsPath:    "docs/_data/results.json",
		TimeoutMinutes: 30,
	}
}

// Load reads and validates a config file. A missing file is not an error:
// the defaults cover a checkout with the conventional layout and no
// perfbench.yaml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.TasksDir == "" {
		return fmt.Errorf("tasks_dir is required")
	}
	if cfg.ResultsPath == "" {
		return fmt.Errorf("results_path is required")
	}
	if cfg.TimeoutMinutes < 1 {
		return fmt.Errorf("timeout_minutes must be at least 1")
	}
	return nil
}
