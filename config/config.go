package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Region        string        `yaml:"region"`
	LookbackHours int           `yaml:"lookback_hours"`
	Workers       int           `yaml:"workers"`
	TagTimeout    time.Duration `yaml:"tag_timeout"`
	HistoryPath   string        `yaml:"history_path"`
	Tagging       Tagging       `yaml:"tagging"`
}

// Tagging controls how tag sets are assembled per resource.
type Tagging struct {
	OwnerTagName        string            `yaml:"owner_tag_name"`
	CreationTimeTagName string            `yaml:"creation_time_tag_name"`
	CreationTimeFormat  string            `yaml:"creation_time_format"`
	IncludeCreationTime bool              `yaml:"include_creation_time"`
	AdditionalTags      map[string]string `yaml:"additional_tags,omitempty"`
}

// Default returns the configuration used when no file is given.
// Load unmarshals on top of it, so absent fields keep their defaults.
func Default() Config {
	return Config{
		Region:        "us-east-1",
		LookbackHours: 24,
		Workers:       1,
		TagTimeout:    30 * time.Second,
		HistoryPath:   "./merkki.db",
		Tagging: Tagging{
			OwnerTagName:        "owner",
			CreationTimeTagName: "created_at",
			CreationTimeFormat:  "2006-01-02 15:04:05 UTC",
			IncludeCreationTime: true,
		},
	}
}

// Load reads configuration from a YAML file, layered over defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures config has usable values.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.LookbackHours <= 0 {
		return fmt.Errorf("lookback_hours must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Tagging.OwnerTagName == "" {
		return fmt.Errorf("tagging.owner_tag_name is required")
	}
	if c.Tagging.IncludeCreationTime && c.Tagging.CreationTimeTagName == "" {
		return fmt.Errorf("tagging.creation_time_tag_name is required when include_creation_time is set")
	}
	return nil
}
