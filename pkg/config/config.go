// Package config provides configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/lyrexport/pkg/exporter"
	"github.com/user/lyrexport/pkg/ports"
)

// Config represents the full configuration for lyrexport.
type Config struct {
	// Storage
	TempRoot             string `yaml:"temp_root"`
	RetentionHours       int    `yaml:"retention_hours"`
	SweepIntervalMinutes int    `yaml:"sweep_interval_minutes"`

	// Encoding
	FFmpegPath string  `yaml:"ffmpeg_path"`
	Quality    string  `yaml:"quality"`
	FPS        float64 `yaml:"fps"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`

	// Batching
	BatchSize           int    `yaml:"batch_size"`
	DiscontinuityPolicy string `yaml:"discontinuity_policy"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		TempRoot:             filepath.Join(os.TempDir(), "lyrexport"),
		RetentionHours:       24,
		SweepIntervalMinutes: 30,

		Quality: string(ports.TierStandard),
		FPS:     30.0,

		BatchSize:           exporter.DefaultBatchSize,
		DiscontinuityPolicy: string(exporter.PolicyWarn),

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Retention returns the orphan-session retention window.
func (c Config) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

// SweepInterval returns the periodic sweep interval.
func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

// Tier returns the configured quality tier.
func (c Config) Tier() ports.QualityTier {
	return ports.ParseQualityTier(c.Quality)
}

// Policy returns the configured batch continuity policy.
func (c Config) Policy() exporter.ContinuityPolicy {
	return exporter.ParseContinuityPolicy(c.DiscontinuityPolicy)
}

// Level returns the configured log level.
func (c Config) Level() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}
