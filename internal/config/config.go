// Package config loads and validates the application configuration from
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces every environment variable, e.g. HOUSE_PIPELINE_TREES.
const envPrefix = "HOUSE"

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// ServerConfig configures the HTTP API used by the web command.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig configures the slog setup.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/housecli.log"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	DatasetFile string `yaml:"dataset_file" envconfig:"DATASET_FILE" default:"data/melb_data.csv"`
}

// PipelineConfig holds the evaluation parameters.
type PipelineConfig struct {
	TargetColumn   string  `yaml:"target_column" envconfig:"TARGET_COLUMN" default:"Price" validate:"required"`
	TrainFraction  float64 `yaml:"train_fraction" envconfig:"TRAIN_FRACTION" default:"0.8" validate:"gt=0,lt=1"`
	MaxCardinality int     `yaml:"max_cardinality" envconfig:"MAX_CARDINALITY" default:"10" validate:"gt=1"`
	// SplitSeed below 0 leaves the split unseeded.
	SplitSeed  int64   `yaml:"split_seed" envconfig:"SPLIT_SEED" default:"-1"`
	Trees      int     `yaml:"trees" envconfig:"TREES" default:"10" validate:"gt=0"`
	ForestSeed int64   `yaml:"forest_seed" envconfig:"FOREST_SEED" default:"0"`
	FillValue  float64 `yaml:"fill_value" envconfig:"FILL_VALUE" default:"0"`
}

// Load builds the configuration: env vars first, then an optional
// housecli.yaml in the working directory, then validation.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, splitSeed, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
		if splitSeed != nil {
			cfg.Pipeline.SplitSeed = *splitSeed
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the struct-level validation tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func configFilePath() string {
	if p := os.Getenv(envPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}
	return "housecli.yaml"
}

// seedOverlay re-reads split_seed through a pointer: 0 is a meaningful seed
// (a reproducible split), so the zero value cannot double as "not set".
type seedOverlay struct {
	Pipeline struct {
		SplitSeed *int64 `yaml:"split_seed"`
	} `yaml:"pipeline"`
}

func loadFromFile(path string) (*Config, *int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	var ov seedOverlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, ov.Pipeline.SplitSeed, nil
}

// merge overlays the env-derived config with the file: the file overrides
// the fields it names, everything else keeps the envconfig value.
func merge(file, env Config) Config {
	out := env
	if file.Server.Port != 0 {
		out.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 {
		out.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 {
		out.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 {
		out.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.ShutdownTimeout != 0 {
		out.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Logging.Level != "" {
		out.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		out.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		out.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		out.Logging.FilePath = file.Logging.FilePath
	}
	if file.Paths.DataDir != "" {
		out.Paths.DataDir = file.Paths.DataDir
	}
	if file.Paths.ReportsDir != "" {
		out.Paths.ReportsDir = file.Paths.ReportsDir
	}
	if file.Paths.DatasetFile != "" {
		out.Paths.DatasetFile = file.Paths.DatasetFile
	}
	if file.Pipeline.TargetColumn != "" {
		out.Pipeline.TargetColumn = file.Pipeline.TargetColumn
	}
	if file.Pipeline.TrainFraction != 0 {
		out.Pipeline.TrainFraction = file.Pipeline.TrainFraction
	}
	if file.Pipeline.MaxCardinality != 0 {
		out.Pipeline.MaxCardinality = file.Pipeline.MaxCardinality
	}
	// SplitSeed is merged via seedOverlay in Load, not here
	if file.Pipeline.Trees != 0 {
		out.Pipeline.Trees = file.Pipeline.Trees
	}
	if file.Pipeline.ForestSeed != 0 {
		out.Pipeline.ForestSeed = file.Pipeline.ForestSeed
	}
	if file.Pipeline.FillValue != 0 {
		out.Pipeline.FillValue = file.Pipeline.FillValue
	}
	return out
}
