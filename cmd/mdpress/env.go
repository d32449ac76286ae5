package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mkoster/mdpress/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDPRESS_CONFIG: config file name or path
	Style      string        // MDPRESS_STYLE: CSS style name or path
	Timeout    time.Duration // MDPRESS_TIMEOUT: per-document timeout
	InputDir   string        // MDPRESS_INPUT_DIR: default input directory
	OutputDir  string        // MDPRESS_OUTPUT_DIR: default output directory
	PageSize   string        // MDPRESS_PAGE_SIZE: letter, a4, legal
	TOCDepth   int           // MDPRESS_TOC_DEPTH: default [TOC] depth
	Disable    []string      // MDPRESS_DISABLE: comma-separated extras to skip
	Workers    int           // MDPRESS_WORKERS: parallel workers
}

// knownEnvVars lists valid MDPRESS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPRESS_CONFIG":     true,
	"MDPRESS_STYLE":      true,
	"MDPRESS_TIMEOUT":    true,
	"MDPRESS_INPUT_DIR":  true,
	"MDPRESS_OUTPUT_DIR": true,
	"MDPRESS_PAGE_SIZE":  true,
	"MDPRESS_TOC_DEPTH":  true,
	"MDPRESS_DISABLE":    true,
	"MDPRESS_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPRESS_CONFIG"),
		Style:      os.Getenv("MDPRESS_STYLE"),
		InputDir:   os.Getenv("MDPRESS_INPUT_DIR"),
		OutputDir:  os.Getenv("MDPRESS_OUTPUT_DIR"),
		PageSize:   os.Getenv("MDPRESS_PAGE_SIZE"),
	}

	if timeout := os.Getenv("MDPRESS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if depth := os.Getenv("MDPRESS_TOC_DEPTH"); depth != "" {
		if n, err := strconv.Atoi(depth); err == nil && n > 0 {
			cfg.TOCDepth = n
		}
	}
	if disable := os.Getenv("MDPRESS_DISABLE"); disable != "" {
		for _, name := range strings.Split(disable, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Disable = append(cfg.Disable, name)
			}
		}
	}
	if workers := os.Getenv("MDPRESS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPRESS_* variables.
// Helps catch typos like MDPRESS_STLYE instead of MDPRESS_STYLE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPRESS_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero,
// so the precedence stays: CLI flags > env vars > config file > defaults.
// (CLI flags are applied later via mergeFlags.)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.CSS.Style == "default" {
		cfg.CSS.Style = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" && cfg.Page.Size == "letter" {
		cfg.Page.Size = env.PageSize
	}
	if env.TOCDepth > 0 && cfg.Extras.TOCDepth == 0 {
		cfg.Extras.TOCDepth = env.TOCDepth
	}
	if len(env.Disable) > 0 && len(cfg.Extras.Disable) == 0 {
		cfg.Extras.Disable = env.Disable
	}
	if env.Timeout > 0 && cfg.Render.TimeoutSeconds == 0 {
		cfg.Render.TimeoutSeconds = int(env.Timeout.Seconds())
	}
	if env.Workers > 0 && cfg.Render.Workers == 1 {
		cfg.Render.Workers = env.Workers
	}
}
