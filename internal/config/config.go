// Package config loads and validates the YAML configuration for document
// conversion runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkoster/mdpress/internal/fileutil"
	"github.com/mkoster/mdpress/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for document conversion.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	CSS    CSSConfig    `yaml:"css"`
	Page   PageConfig   `yaml:"page"`
	Extras ExtrasConfig `yaml:"extras"`
	Render RenderConfig `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style  string `yaml:"style"`  // Embedded style name (empty = "default")
	Extend string `yaml:"extend"` // Path to a CSS file appended after the style
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// ExtrasConfig defines markdown extras options.
type ExtrasConfig struct {
	Disable  []string `yaml:"disable"`  // Extras to skip, by name
	TOCDepth int      `yaml:"tocDepth"` // Default depth for [TOC] markers (0 = unlimited)
}

// RenderConfig defines rendering behavior.
type RenderConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"` // Per-document timeout (0 = library default)
	Workers        int `yaml:"workers"`        // Parallel browser instances for batch runs (0 = 1)
}

// Validate checks value ranges. Name-level validation of extras and page
// settings happens in the conversion library; here only structural limits
// are enforced.
func (c *Config) Validate() error {
	if c.Extras.TOCDepth < 0 || c.Extras.TOCDepth > 6 {
		return fmt.Errorf("extras.tocDepth: must be between 0 and 6, got %d", c.Extras.TOCDepth)
	}
	if c.Render.TimeoutSeconds < 0 {
		return fmt.Errorf("render.timeoutSeconds: must not be negative, got %d", c.Render.TimeoutSeconds)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render.workers: must not be negative, got %d", c.Render.Workers)
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("page.margin: must not be negative, got %.2f", c.Page.Margin)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: every extra enabled, letter
// portrait pages, single worker.
func DefaultConfig() *Config {
	return &Config{
		CSS: CSSConfig{Style: "default"},
		Page: PageConfig{
			Size:        "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
		Render: RenderConfig{Workers: 1},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
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

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/mdpress/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "mdpress", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
