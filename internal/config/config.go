package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the oidl CLI.
type Config struct {
	Annotations     string        `yaml:"annotations"`
	Labelmap        string        `yaml:"labelmap"`
	Images          string        `yaml:"images"`
	OutputDir       string        `yaml:"output_dir"`
	Objects         []string      `yaml:"objects"`
	MaxImages       int           `yaml:"max_images"`
	Workers         int           `yaml:"workers"`
	Permissive      bool          `yaml:"permissive"`
	ExcludeOccluded bool          `yaml:"exclude_occluded"`
	Progress        bool          `yaml:"progress"`
	Seed            int64         `yaml:"seed"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Workers:     4,
		HTTPTimeout: 30 * time.Second,
	}
}

// yamlConfig is used for YAML unmarshaling with a string timeout.
type yamlConfig struct {
	Annotations     string   `yaml:"annotations"`
	Labelmap        string   `yaml:"labelmap"`
	Images          string   `yaml:"images"`
	OutputDir       string   `yaml:"output_dir"`
	Objects         []string `yaml:"objects"`
	MaxImages       int      `yaml:"max_images"`
	Workers         int      `yaml:"workers"`
	Permissive      bool     `yaml:"permissive"`
	ExcludeOccluded bool     `yaml:"exclude_occluded"`
	Progress        bool     `yaml:"progress"`
	Seed            int64    `yaml:"seed"`
	HTTPTimeout     string   `yaml:"http_timeout"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Annotations != "" {
		cfg.Annotations = yc.Annotations
	}
	if yc.Labelmap != "" {
		cfg.Labelmap = yc.Labelmap
	}
	if yc.Images != "" {
		cfg.Images = yc.Images
	}
	if yc.OutputDir != "" {
		cfg.OutputDir = yc.OutputDir
	}
	if len(yc.Objects) > 0 {
		cfg.Objects = yc.Objects
	}
	if yc.MaxImages != 0 {
		cfg.MaxImages = yc.MaxImages
	}
	if yc.Workers != 0 {
		cfg.Workers = yc.Workers
	}
	cfg.Permissive = yc.Permissive
	cfg.ExcludeOccluded = yc.ExcludeOccluded
	cfg.Progress = yc.Progress
	if yc.Seed != 0 {
		cfg.Seed = yc.Seed
	}
	if yc.HTTPTimeout != "" {
		d, err := time.ParseDuration(yc.HTTPTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse http_timeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the OIDL_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("OIDL_ANNOTATIONS"); v != "" {
		c.Annotations = v
	}
	if v := os.Getenv("OIDL_LABELMAP"); v != "" {
		c.Labelmap = v
	}
	if v := os.Getenv("OIDL_IMAGES"); v != "" {
		c.Images = v
	}
	if v := os.Getenv("OIDL_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("OIDL_OBJECTS"); v != "" {
		c.Objects = SplitObjects(v)
	}
	if v := os.Getenv("OIDL_MAX_IMAGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse OIDL_MAX_IMAGES: %w", err)
		}
		c.MaxImages = n
	}
	if v := os.Getenv("OIDL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse OIDL_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("OIDL_PERMISSIVE"); v != "" {
		c.Permissive = v == "true" || v == "1"
	}
	if v := os.Getenv("OIDL_EXCLUDE_OCCLUDED"); v != "" {
		c.ExcludeOccluded = v == "true" || v == "1"
	}
	if v := os.Getenv("OIDL_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("OIDL_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse OIDL_SEED: %w", err)
		}
		c.Seed = n
	}
	if v := os.Getenv("OIDL_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse OIDL_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Annotations == "" {
		return errors.New("config: annotations file is required")
	}
	if c.Labelmap == "" {
		return errors.New("config: labelmap file is required")
	}
	if c.Images == "" {
		return errors.New("config: images file is required")
	}
	if c.OutputDir == "" {
		return errors.New("config: output directory is required")
	}
	if len(c.Objects) == 0 {
		return errors.New("config: at least one object name is required")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.MaxImages < 0 {
		return errors.New("config: max_images must not be negative")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Annotations != "" {
		c.Annotations = override.Annotations
	}
	if override.Labelmap != "" {
		c.Labelmap = override.Labelmap
	}
	if override.Images != "" {
		c.Images = override.Images
	}
	if override.OutputDir != "" {
		c.OutputDir = override.OutputDir
	}
	if len(override.Objects) > 0 {
		c.Objects = override.Objects
	}
	if override.MaxImages != 0 {
		c.MaxImages = override.MaxImages
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.Permissive {
		c.Permissive = override.Permissive
	}
	if override.ExcludeOccluded {
		c.ExcludeOccluded = override.ExcludeOccluded
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.Seed != 0 {
		c.Seed = override.Seed
	}
	if override.HTTPTimeout != 0 {
		c.HTTPTimeout = override.HTTPTimeout
	}
	return c
}

// SplitObjects splits a comma-separated object list, trimming blanks.
func SplitObjects(s string) []string {
	parts := strings.Split(s, ",")
	objects := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			objects = append(objects, p)
		}
	}
	return objects
}
