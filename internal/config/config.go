package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Config carries the tunables of the payroll core. Values come from an
// optional YAML file, with environment variables taking precedence.
type Config struct {
	Server struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	Payroll struct {
		// GraceWindowDays bounds how far past its effective_from a pending
		// deduction may still be approved.
		GraceWindowDays int `yaml:"grace_window_days"`
		WorkerPoolSize  int `yaml:"worker_pool_size"`
		LockRetry       struct {
			Attempts    int           `yaml:"attempts"`
			BaseBackoff time.Duration `yaml:"base_backoff"`
		} `yaml:"lock_retry"`
	} `yaml:"payroll"`
}

func defaults() Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second
	cfg.Payroll.GraceWindowDays = 7
	cfg.Payroll.WorkerPoolSize = 8
	cfg.Payroll.LockRetry.Attempts = 3
	cfg.Payroll.LockRetry.BaseBackoff = 100 * time.Millisecond
	return cfg
}

// Load reads path (skipped when empty or missing) and applies env overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("PAYROLL_GRACE_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Payroll.GraceWindowDays = n
		}
	}
	if v := os.Getenv("PAYROLL_WORKER_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Payroll.WorkerPoolSize = n
		}
	}
	if v := os.Getenv("PAYROLL_LOCK_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Payroll.LockRetry.Attempts = n
		}
	}

	return cfg, nil
}
