// Package config provides configuration management for bbm.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// Output formats for rendered documents.
const (
	OutputHTML     = "html"
	OutputMarkdown = "markdown"
	OutputText     = "text"
)

// Environment variables read by LoadFromEnv.
const (
	EnvMaxInputLength = "BBM_MAX_INPUT_LENGTH"
	EnvMaxTags        = "BBM_MAX_TAGS"
	EnvMaxDepth       = "BBM_MAX_DEPTH"
	EnvQuoteMode      = "BBM_QUOTE_MODE"
	EnvSanitize       = "BBM_SANITIZE"
	EnvOutputFormat   = "BBM_OUTPUT_FORMAT"
)

// EnvVars lists every environment variable that overrides the config file.
var EnvVars = []string{EnvMaxInputLength, EnvMaxTags, EnvMaxDepth, EnvQuoteMode, EnvSanitize, EnvOutputFormat}

// Config holds the bbm configuration. Zero values mean "use the default".
type Config struct {
	MaxInputLength int    `yaml:"max_input_length,omitempty"`
	MaxTags        int    `yaml:"max_tags,omitempty"`
	MaxDepth       int    `yaml:"max_depth,omitempty"`
	QuoteMode      string `yaml:"quote_mode,omitempty"`
	Sanitize       bool   `yaml:"sanitize,omitempty"`
	OutputFormat   string `yaml:"output_format,omitempty"`

	// Mentions maps usernames to user ids; resolved mentions carry data-user-id.
	Mentions map[string]string `yaml:"mentions,omitempty"`
}

// ValidOutputFormats returns the accepted output_format values.
func ValidOutputFormats() []string {
	return []string{OutputHTML, OutputMarkdown, OutputText}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.MaxInputLength < 0 {
		return errors.New("max_input_length must not be negative")
	}
	if c.MaxTags < 0 {
		return errors.New("max_tags must not be negative")
	}
	if c.MaxDepth < 0 {
		return errors.New("max_depth must not be negative")
	}
	if _, ok := bbcode.ParseQuoteMode(c.QuoteMode); !ok {
		return fmt.Errorf("quote_mode must be recursive or literal, got %q", c.QuoteMode)
	}
	if err := ValidateOutputFormat(c.OutputFormat); err != nil {
		return err
	}
	return nil
}

// ValidateOutputFormat checks an output format name. Empty means html.
func ValidateOutputFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidOutputFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidOutputFormats(), ", "))
}

// Format returns the configured output format, defaulting to html.
func (c *Config) Format() string {
	if c.OutputFormat == "" {
		return OutputHTML
	}
	return c.OutputFormat
}

// RenderOptions converts the config into renderer options. The logger may be nil.
func (c *Config) RenderOptions(logger *zerolog.Logger) bbcode.Options {
	mode, _ := bbcode.ParseQuoteMode(c.QuoteMode)
	opts := bbcode.Options{
		MaxInputLength: c.MaxInputLength,
		MaxTags:        c.MaxTags,
		MaxDepth:       c.MaxDepth,
		QuoteMode:      mode,
		Sanitize:       c.Sanitize,
		Logger:         logger,
	}
	if len(c.Mentions) > 0 {
		opts.Resolver = mentionTable(c.Mentions)
	}
	return opts
}

// mentionTable resolves mentions from the config's username table.
type mentionTable map[string]string

func (m mentionTable) ResolveMention(name string) (bbcode.UserRef, bool) {
	id, ok := m[name]
	if !ok {
		id, ok = m[strings.ToLower(name)]
	}
	if !ok || id == "" {
		return bbcode.UserRef{}, false
	}
	return bbcode.UserRef{ID: id}, true
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and parseable.
func (c *Config) LoadFromEnv() {
	if n, ok := getEnvInt(EnvMaxInputLength); ok {
		c.MaxInputLength = n
	}
	if n, ok := getEnvInt(EnvMaxTags); ok {
		c.MaxTags = n
	}
	if n, ok := getEnvInt(EnvMaxDepth); ok {
		c.MaxDepth = n
	}
	if mode := os.Getenv(EnvQuoteMode); mode != "" {
		c.QuoteMode = mode
	}
	if v := os.Getenv(EnvSanitize); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sanitize = b
		}
	}
	if format := os.Getenv(EnvOutputFormat); format != "" {
		c.OutputFormat = format
	}
}

// getEnvInt returns the integer value of an env var and whether it was set and valid.
func getEnvInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "bbm", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bbm", "config.yml")
	}

	return filepath.Join(home, ".config", "bbm", "config.yml")
}

// ResolvePath returns path, or the default configuration path when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The mention table may hold internal user ids.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error; a file that exists but cannot be parsed is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
