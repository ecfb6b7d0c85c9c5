package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Calendar CalendarConfig `yaml:"calendar"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path is an optional size-capped log file written alongside stderr.
	Path string `yaml:"path"`
}

// CalendarConfig decides which day "today" is. An empty Timezone means the
// process's local zone.
type CalendarConfig struct {
	Timezone string `yaml:"timezone"`
}

// Location resolves the configured timezone.
func (c CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from an optional YAML file, an optional .env file
// in the working directory and environment variables, in that order.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "rhythm.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("RHYTHM_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env file: %w", err)
	}

	if dbPath := os.Getenv("RHYTHM_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("RHYTHM_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("RHYTHM_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if tz := os.Getenv("RHYTHM_TIMEZONE"); tz != "" {
		cfg.Calendar.Timezone = tz
	}

	if _, err := cfg.Calendar.Location(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
