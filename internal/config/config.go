// Package config loads and validates CLI configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-playbook-export/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidWorkers  = errors.New("invalid worker count")
	ErrInvalidTimeout  = errors.New("invalid timeout")
)

// Field length and value limits.
const (
	MaxModelLength     = 100  // Model identifier
	MaxBaseURLLength   = 2048 // Browser limit
	MaxEnvNameLength   = 100  // Environment variable name
	MaxDirLength       = 4096 // Filesystem path
	MaxWorkers         = 16   // Browser instances are heavy
	MaxTimeoutSeconds  = 600  // Per-document render ceiling
	DefaultModel       = "gpt-4o-mini"
	DefaultAPIKeyEnv   = "OPENAI_API_KEY"
	DefaultTimeoutSecs = 60
)

// Config holds all configuration for playbook export.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
	Export    ExportConfig    `yaml:"export"`
}

// GeneratorConfig defines asset generation options.
type GeneratorConfig struct {
	Model     string `yaml:"model"`     // Chat model identifier (default: gpt-4o-mini)
	BaseURL   string `yaml:"baseURL"`   // Optional API endpoint override
	APIKeyEnv string `yaml:"apiKeyEnv"` // Env var holding the API key (default: OPENAI_API_KEY)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = current directory)
}

// ExportConfig defines export tuning options.
type ExportConfig struct {
	Workers        int `yaml:"workers"`        // Browser pool size (0 = auto from CPU count)
	TimeoutSeconds int `yaml:"timeoutSeconds"` // Per-document render timeout (0 = default)
}

// Validate checks field lengths and value ranges.
// Called automatically by Load, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("generator.model", c.Generator.Model, MaxModelLength); err != nil {
		return err
	}
	if err := validateFieldLength("generator.baseURL", c.Generator.BaseURL, MaxBaseURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("generator.apiKeyEnv", c.Generator.APIKeyEnv, MaxEnvNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}

	if c.Export.Workers < 0 || c.Export.Workers > MaxWorkers {
		return fmt.Errorf("%w: export.workers must be between 0 and %d, got %d",
			ErrInvalidWorkers, MaxWorkers, c.Export.Workers)
	}
	if c.Export.TimeoutSeconds < 0 || c.Export.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("%w: export.timeoutSeconds must be between 0 and %d, got %d",
			ErrInvalidTimeout, MaxTimeoutSeconds, c.Export.TimeoutSeconds)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Model:     DefaultModel,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Output: OutputConfig{DefaultDir: ""},
		Export: ExportConfig{
			Workers:        0,
			TimeoutSeconds: DefaultTimeoutSecs,
		},
	}
}

// Load loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/playbook-export/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "playbook-export", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
