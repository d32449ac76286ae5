package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mkoster/mdpress/internal/assets"
	"github.com/mkoster/mdpress/internal/config"
)

func TestMergeFlags(t *testing.T) {
	flags := &convertFlags{
		workers: 4,
		page:    pageFlags{size: "a4", orientation: "landscape", margin: 1.0},
		extras:  extrasFlags{disable: []string{"math"}, tocDepth: 3},
		style:   styleFlags{style: "dark", extend: "extra.css"},
	}
	cfg := config.DefaultConfig()

	mergeFlags(flags, cfg)

	if cfg.Page.Size != "a4" || cfg.Page.Orientation != "landscape" || cfg.Page.Margin != 1.0 {
		t.Errorf("page = %+v", cfg.Page)
	}
	if cfg.CSS.Style != "dark" || cfg.CSS.Extend != "extra.css" {
		t.Errorf("css = %+v", cfg.CSS)
	}
	if len(cfg.Extras.Disable) != 1 || cfg.Extras.TOCDepth != 3 {
		t.Errorf("extras = %+v", cfg.Extras)
	}
	if cfg.Render.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Render.Workers)
	}
}

func TestMergeFlagsEmptyKeepsConfig(t *testing.T) {
	flags := &convertFlags{}
	cfg := config.DefaultConfig()
	cfg.Page.Size = "legal"
	cfg.Extras.Disable = []string{"toc"}

	mergeFlags(flags, cfg)

	if cfg.Page.Size != "legal" {
		t.Errorf("Page.Size = %q, want legal", cfg.Page.Size)
	}
	if len(cfg.Extras.Disable) != 1 || cfg.Extras.Disable[0] != "toc" {
		t.Errorf("Disable = %v", cfg.Extras.Disable)
	}
}

func TestResolveInputPath(t *testing.T) {
	cfg := config.DefaultConfig()

	if got, err := resolveInputPath([]string{"doc.md"}, cfg); err != nil || got != "doc.md" {
		t.Errorf("positional: got %q, %v", got, err)
	}

	cfg.Input.DefaultDir = "docs"
	if got, err := resolveInputPath(nil, cfg); err != nil || got != "docs" {
		t.Errorf("config dir: got %q, %v", got, err)
	}

	cfg.Input.DefaultDir = ""
	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}
}

func TestResolveCSSContentDefault(t *testing.T) {
	cfg := config.DefaultConfig()

	css, err := resolveCSSContent(cfg)
	if err != nil {
		t.Fatalf("resolveCSSContent error: %v", err)
	}
	// The default style is layered in by the conversion service itself.
	if css != "" {
		t.Errorf("css = %q, want empty", css)
	}
}

func TestResolveCSSContentFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.css")
	if err := os.WriteFile(path, []byte("body { color: red }"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.CSS.Style = path

	css, err := resolveCSSContent(cfg)
	if err != nil {
		t.Fatalf("resolveCSSContent error: %v", err)
	}
	if css != "body { color: red }" {
		t.Errorf("css = %q", css)
	}
}

func TestResolveCSSContentExtend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.css")
	if err := os.WriteFile(path, []byte("h1 { margin: 0 }"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.CSS.Extend = path

	css, err := resolveCSSContent(cfg)
	if err != nil {
		t.Fatalf("resolveCSSContent error: %v", err)
	}
	if !strings.Contains(css, "h1 { margin: 0 }") {
		t.Errorf("css = %q, want extend content", css)
	}
}

func TestResolveCSSContentErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CSS.Style = "no-such-style"
	if _, err := resolveCSSContent(cfg); !errors.Is(err, assets.ErrStyleNotFound) {
		t.Errorf("unknown style: error = %v, want ErrStyleNotFound", err)
	}

	cfg = config.DefaultConfig()
	cfg.CSS.Extend = filepath.Join(t.TempDir(), "absent.css")
	if _, err := resolveCSSContent(cfg); !errors.Is(err, ErrReadCSS) {
		t.Errorf("missing extend: error = %v, want ErrReadCSS", err)
	}
}

func TestResolveTimeout(t *testing.T) {
	cfg := config.DefaultConfig()

	if d, err := resolveTimeout("", cfg); err != nil || d != 0 {
		t.Errorf("default: got %v, %v", d, err)
	}

	cfg.Render.TimeoutSeconds = 60
	if d, err := resolveTimeout("", cfg); err != nil || d != time.Minute {
		t.Errorf("config: got %v, %v", d, err)
	}

	if d, err := resolveTimeout("45s", cfg); err != nil || d != 45*time.Second {
		t.Errorf("flag wins: got %v, %v", d, err)
	}

	if _, err := resolveTimeout("soon", cfg); err == nil {
		t.Error("expected error for malformed timeout")
	}
	if _, err := resolveTimeout("-5s", cfg); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestRunConvertEndToEnd(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "report.md")
	if err := os.WriteFile(md, []byte("# Report"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := &fakeConverter{}
	pool := &fakePool{svc: svc, size: 1}
	env, out, _ := newTestEnv()

	flags := &convertFlags{output: filepath.Join(dir, "out")}
	if err := runConvert(context.Background(), []string{md}, flags, pool, env); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}

	pdf := filepath.Join(dir, "out", "report.pdf")
	if _, err := os.Stat(pdf); err != nil {
		t.Errorf("expected PDF at %s: %v", pdf, err)
	}
	if !strings.Contains(out.String(), "Created") {
		t.Errorf("stdout = %q", out.String())
	}
	if svc.calls != 1 {
		t.Errorf("Convert called %d times, want 1", svc.calls)
	}
}

func TestRunConvertNoInput(t *testing.T) {
	env, _, _ := newTestEnv()
	pool := &fakePool{svc: &fakeConverter{}, size: 1}

	err := runConvert(context.Background(), nil, &convertFlags{}, pool, env)
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}
}

func TestRunConvertInvalidWorkers(t *testing.T) {
	env, _, _ := newTestEnv()
	pool := &fakePool{svc: &fakeConverter{}, size: 1}

	err := runConvert(context.Background(), nil, &convertFlags{workers: -1}, pool, env)
	if !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
	}
}
