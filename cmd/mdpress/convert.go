package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	mdpress "github.com/mkoster/mdpress"
	"github.com/mkoster/mdpress/internal/assets"
	"github.com/mkoster/mdpress/internal/config"
	"github.com/mkoster/mdpress/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePDF     = errors.New("failed to write PDF file")
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input mdpress.Input) (*mdpress.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*mdpress.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
}

// conversionParams groups parameters shared across the batch.
type conversionParams struct {
	css      string
	page     *mdpress.PageSettings
	disable  []string
	tocDepth int
	timeout  time.Duration
	htmlOnly bool
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, pool Pool, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	// Load configuration: explicit flag wins, then MDPRESS_CONFIG
	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Environment fills gaps, CLI flags win
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	cssContent, err := resolveCSSContent(cfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		css: cssContent,
		page: &mdpress.PageSettings{
			Size:        cfg.Page.Size,
			Orientation: cfg.Page.Orientation,
			Margin:      cfg.Page.Margin,
		},
		disable:  cfg.Extras.Disable,
		tocDepth: cfg.Extras.TOCDepth,
		timeout:  timeout,
		htmlOnly: flags.htmlOnly,
	}

	if flags.watch {
		return runWatch(ctx, pool, files, params, flags, env)
	}

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// runWatch converts once, then re-converts whenever a source file changes,
// until the context is canceled.
func runWatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, flags *convertFlags, env *Environment) error {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.InputPath
	}

	watcher := &mdpress.Watcher{
		OnError: func(err error) {
			fmt.Fprintf(env.Stderr, "watch: %v\n", err)
		},
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %d file(s), press Ctrl+C to stop\n", len(files))
	}

	err := watcher.Watch(ctx, paths, func(ctx context.Context) error {
		results := convertBatch(ctx, pool, files, params)
		failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
		if failed > 0 {
			return fmt.Errorf("%d conversion(s) failed", failed)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.extend != "" {
		cfg.CSS.Extend = flags.style.extend
	}
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}
	if len(flags.extras.disable) > 0 {
		cfg.Extras.Disable = flags.extras.disable
	}
	if flags.extras.tocDepth != 0 {
		cfg.Extras.TOCDepth = flags.extras.tocDepth
	}
	if flags.workers != 0 {
		cfg.Render.Workers = flags.workers
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: pass a markdown file or set input.defaultDir", ErrNoInput)
}

// resolveCSSContent loads the configured style and appends the extend file.
// The style is an embedded name unless it looks like a file path.
func resolveCSSContent(cfg *config.Config) (string, error) {
	var css string

	style := cfg.CSS.Style
	if style == "" {
		style = "default"
	}
	if fileutil.IsFilePath(style) {
		data, err := os.ReadFile(style) // #nosec G304 -- user-provided style path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		css = string(data)
	} else if style != "default" {
		// The default style ships inside the conversion service; only
		// non-default names need loading here.
		loaded, err := assets.LoadStyle(style)
		if err != nil {
			return "", err
		}
		css = loaded
	}

	if cfg.CSS.Extend != "" {
		data, err := os.ReadFile(cfg.CSS.Extend) // #nosec G304 -- user-provided CSS path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		if css != "" {
			css += "\n"
		}
		css += string(data)
	}

	return css, nil
}

// resolveTimeout determines the per-document timeout.
// Priority: CLI flag > config file > zero (library default).
func resolveTimeout(flagTimeout string, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("invalid timeout %q: use a positive duration like 30s", flagTimeout)
		}
		return d, nil
	}
	if cfg.Render.TimeoutSeconds > 0 {
		return time.Duration(cfg.Render.TimeoutSeconds) * time.Second, nil
	}
	return 0, nil
}
