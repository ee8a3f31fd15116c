package config

import (
	"os"

	"github.com/junkd0g/dataexplorer/internal/dataset"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppInfo holds basic application metadata.
type AppInfo struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"` // "development" or "production"
}

// ServerConfig configures the HTTP dashboard.
type ServerConfig struct {
	Address         string `yaml:"address"`
	ShutdownTimeout string `yaml:"shutdownTimeout"` // e.g. "10s"
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// DatasetConfig configures the generated dataset.
type DatasetConfig struct {
	Seed *int64 `yaml:"seed"` // nil means dataset.DefaultSeed
}

// SeedValue returns the configured seed or the default seed.
func (d DatasetConfig) SeedValue() int64 {
	if d.Seed == nil {
		return dataset.DefaultSeed
	}
	return *d.Seed
}

// DashboardConfig configures the rendered page.
type DashboardConfig struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Theme       string   `yaml:"theme"`       // "dark" or "light"
	DefaultKind string   `yaml:"defaultKind"` // "bar", "pie" or "scatter"
	Footer      string   `yaml:"footer"`
	Widgets     []string `yaml:"widgets"`
}

// UploadConfig configures CSV uploads.
type UploadConfig struct {
	MaxBytes int64 `yaml:"maxBytes"`
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Upload    UploadConfig    `yaml:"upload"`
}

// Default returns the configuration used when no file is given.
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and parses the YAML file at path. Missing values are
// filled with defaults.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read YAML file '%s'", path)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML file")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Load returns the configuration at path, or the defaults when path is empty.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

func (c *AppConfig) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "dataexplorer"
	}
	if c.App.Version == "" {
		c.App.Version = "1.0.0"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Dashboard.Title == "" {
		c.Dashboard.Title = "Interactive Data Explorer"
	}
	if c.Dashboard.Description == "" {
		c.Dashboard.Description = "Generate a sample dataset, pick a visualization and upload your own CSV"
	}
	if c.Dashboard.Theme == "" {
		c.Dashboard.Theme = "dark"
	}
	if c.Dashboard.DefaultKind == "" {
		c.Dashboard.DefaultKind = "bar"
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = 10 << 20
	}
}
