package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete symgraph configuration (v1 schema)
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Extraction ExtractionConfig `json:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `json:"output" mapstructure:"output"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// ExtractionConfig controls how files are scanned and extracted
type ExtractionConfig struct {
	ContextLines     int      `json:"contextLines" mapstructure:"contextLines"`
	Ignore           []string `json:"ignore" mapstructure:"ignore"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`

	// Priorities overrides containment ranking per language, mapping
	// symbol kind names to ranks where lower wins.
	Priorities map[string]map[string]int `json:"priorities" mapstructure:"priorities"`
}

// OutputConfig controls the export surface
type OutputConfig struct {
	Format   string `json:"format" mapstructure:"format"`
	Path     string `json:"path" mapstructure:"path"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Extraction: ExtractionConfig{
			ContextLines:     3,
			Ignore:           []string{"node_modules", "vendor", "dist", "target", "__pycache__"},
			MaxFileSizeBytes: 1000000,
			Priorities:       map[string]map[string]int{},
		},
		Output: OutputConfig{
			Format:   "json",
			Path:     "-",
			Compress: false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .symgraph/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")
	v.SetDefault("extraction.contextLines", 3)
	v.SetDefault("output.format", "json")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".symgraph"))

	v.SetEnvPrefix("SYMGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Extraction.Ignore == nil {
		cfg.Extraction.Ignore = DefaultConfig().Extraction.Ignore
	}
	if cfg.Extraction.Priorities == nil {
		cfg.Extraction.Priorities = map[string]map[string]int{}
	}

	return &cfg, nil
}

// Save writes the configuration to .symgraph/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".symgraph")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Extraction.ContextLines < 0 {
		return &ConfigError{Field: "extraction.contextLines", Message: "must not be negative"}
	}
	switch c.Output.Format {
	case "json", "ndjson", "yaml", "scip":
	default:
		return &ConfigError{Field: "output.format", Message: "unknown format '" + c.Output.Format + "'"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
