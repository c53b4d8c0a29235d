package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "txt"
	FormatCSV  = "csv"
)

// File matching modes for the export locator
const (
	MatchPermissive = "permissive"
	MatchStrict     = "strict"
)

// Config holds all configuration options for a follow check run
type Config struct {
	// Export input settings
	Input InputConfig `yaml:"input" json:"input"`

	// Result output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Terminal report settings
	Report ReportConfig `yaml:"report" json:"report"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InputConfig describes where the unzipped export lives and how files are matched
type InputConfig struct {
	DataDirectory string `yaml:"data_directory" json:"data_directory"`
	MatchMode     string `yaml:"match_mode" json:"match_mode"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
	Format    string `yaml:"format" json:"format"`
}

// ReportConfig controls what gets printed to the terminal
type ReportConfig struct {
	Verbose      bool `yaml:"verbose" json:"verbose"`
	PreviewLimit int  `yaml:"preview_limit" json:"preview_limit"`
	NoColor      bool `yaml:"no_color" json:"no_color"`
	Quiet        bool `yaml:"quiet" json:"quiet"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`

	// NoColor mirrors Report.NoColor for the console writer
	NoColor bool `yaml:"-" json:"-"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			MatchMode: MatchPermissive,
		},
		Output: OutputConfig{
			Directory: ".",
			Format:    FormatText,
		},
		Report: ReportConfig{
			PreviewLimit: 10,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadFromEnv loads configuration from environment variables.
// Only the settings the CLI exposes have an environment counterpart.
func (c *Config) LoadFromEnv() error {
	if dataDir := os.Getenv("IGFOLLOWCHECK_DATA"); dataDir != "" {
		c.Input.DataDirectory = dataDir
	}
	if outDir := os.Getenv("IGFOLLOWCHECK_OUT"); outDir != "" {
		c.Output.Directory = outDir
	}
	if format := os.Getenv("IGFOLLOWCHECK_FORMAT"); format != "" {
		c.Output.Format = strings.ToLower(format)
	}
	if verbose := os.Getenv("IGFOLLOWCHECK_VERBOSE"); verbose != "" {
		c.Report.Verbose = strings.ToLower(verbose) == "true"
	}
	if logLevel := os.Getenv("IGFOLLOWCHECK_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".igfollowcheck.yaml",
		".igfollowcheck.yml",
		filepath.Join(home, ".config", "igfollowcheck", "config.yaml"),
		filepath.Join(home, ".config", "igfollowcheck", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Input.DataDirectory == "" {
		errs = append(errs, errors.New("data directory is required (--data)"))
	}
	switch c.Input.MatchMode {
	case MatchPermissive, MatchStrict:
	default:
		errs = append(errs, fmt.Errorf("invalid match mode %q", c.Input.MatchMode))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	switch c.Output.Format {
	case FormatText, FormatCSV:
	default:
		errs = append(errs, fmt.Errorf("invalid output format %q (want txt or csv)", c.Output.Format))
	}

	if c.Report.PreviewLimit < 0 {
		errs = append(errs, errors.New("preview limit cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only flags the user actually set should be present in the map.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if dataDir, ok := flags["data"].(string); ok && dataDir != "" {
		c.Input.DataDirectory = dataDir
	}
	if strict, ok := flags["strict"].(bool); ok {
		if strict {
			c.Input.MatchMode = MatchStrict
		} else {
			c.Input.MatchMode = MatchPermissive
		}
	}
	if outDir, ok := flags["out"].(string); ok && outDir != "" {
		c.Output.Directory = outDir
	}
	if format, ok := flags["format"].(string); ok && format != "" {
		c.Output.Format = strings.ToLower(format)
	}
	if verbose, ok := flags["verbose"].(bool); ok {
		c.Report.Verbose = verbose
	}
	if noColor, ok := flags["no-color"].(bool); ok {
		c.Report.NoColor = noColor
	}
	if quiet, ok := flags["quiet"].(bool); ok {
		c.Report.Quiet = quiet
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Resolve reads every configuration source without validating the result.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Resolve(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igfollowcheck.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)
	config.Logging.NoColor = config.Report.NoColor

	// Verbose implies info logs unless a level was requested explicitly
	if config.Report.Verbose {
		if _, explicit := flags["log-level"]; !explicit && config.Logging.Level == "warn" {
			config.Logging.Level = "info"
		}
	}

	return config, nil
}

// Load loads configuration from all sources with proper precedence and validates it
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	config, err := Resolve(configPath, flags)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
