package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings
const (
	EnvBaseURL   = "WSNODE_BASE_URL"
	EnvLanguages = "WSNODE_LANGUAGES"
	EnvSchema    = "WSNODE_SCHEMA"
	EnvDisplay   = "WSNODE_DISPLAY"
)

// Display values
const (
	DisplayFull    = "full"
	DisplayMinimal = "minimal"
)

// Config represents the complete configuration for wsnode
type Config struct {
	BaseURL   string       `yaml:"base_url"`
	Languages []string     `yaml:"languages"`
	Schema    string       `yaml:"schema"`
	Display   string       `yaml:"display"`
	Output    OutputConfig `yaml:"output"`
	Naming    NamingConfig `yaml:"naming"`
	Dev       DevConfig    `yaml:"dev"`
}

// OutputConfig controls how rendered JSON is written
type OutputConfig struct {
	EscapeSlashes bool   `yaml:"escape_slashes"`
	Pretty        bool   `yaml:"pretty"`
	Indent        string `yaml:"indent"`
}

// NamingConfig controls node naming
type NamingConfig struct {
	SnakeCase     bool              `yaml:"snake_case"`
	FieldMappings map[string]string `yaml:"field_mappings"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		BaseURL:   "http://localhost/api/",
		Languages: []string{"en"},
		Schema:    "",
		Display:   DisplayFull,
		Output: OutputConfig{
			EscapeSlashes: true,
			Pretty:        false,
			Indent:        "  ",
		},
		Naming: NamingConfig{
			SnakeCase:     false,
			FieldMappings: make(map[string]string),
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".wsnode.yml", ".wsnode.yaml", "wsnode.yml", "wsnode.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// ApplyEnv loads envFile when it exists and applies WSNODE_* overrides.
// An empty envFile only reads the process environment.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load env file '%s': %w", envFile, err)
			}
		}
	}

	if v, ok := os.LookupEnv(EnvBaseURL); ok {
		c.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvLanguages); ok {
		c.Languages = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvSchema); ok {
		c.Schema = v
	}
	if v, ok := os.LookupEnv(EnvDisplay); ok {
		c.Display = v
	}

	return c.Validate()
}

// Validate checks enumerated settings and normalizes the base URL
func (c *Config) Validate() error {
	switch strings.ToLower(c.Schema) {
	case "", "full", "synopsis", "blank":
	default:
		return fmt.Errorf("unknown schema '%s' (want synopsis or blank)", c.Schema)
	}

	switch c.Display {
	case "":
		c.Display = DisplayFull
	case DisplayFull, DisplayMinimal:
	default:
		return fmt.Errorf("unknown display '%s' (want full or minimal)", c.Display)
	}

	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	return nil
}

// NodeName returns the node name for a field, applying naming rules
func (c *Config) NodeName(field string) string {
	// Check custom mappings first
	if mapped, exists := c.Naming.FieldMappings[field]; exists {
		return mapped
	}

	if c.Naming.SnakeCase {
		return strcase.ToSnake(field)
	}

	return field
}

// Overrides holds values given on the command line. Empty values keep the
// configured setting.
type Overrides struct {
	BaseURL   string
	Languages string
	Schema    string
	Display   string
	Pretty    bool
	Debug     bool
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// defaults, then the config file, then the environment, then flags
func LoadConfigWithCLI(configPath, envFile string, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}

	if cli.BaseURL != "" {
		cfg.BaseURL = cli.BaseURL
	}
	if cli.Languages != "" {
		cfg.Languages = splitList(cli.Languages)
	}
	if cli.Schema != "" {
		cfg.Schema = cli.Schema
	}
	if cli.Display != "" {
		cfg.Display = cli.Display
	}
	// Boolean flags can only switch a setting on
	if cli.Pretty {
		cfg.Output.Pretty = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
