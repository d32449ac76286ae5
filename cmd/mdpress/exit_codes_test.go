package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	mdpress "github.com/mkoster/mdpress"
	"github.com/mkoster/mdpress/internal/assets"
	"github.com/mkoster/mdpress/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser connect", mdpress.ErrBrowserConnect, ExitBrowser},
		{"page load", mdpress.ErrPageLoad, ExitBrowser},
		{"pdf generation", mdpress.ErrPDFGeneration, ExitBrowser},
		{"file not found", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"watch setup", mdpress.ErrWatchSetup, ExitIO},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"empty markdown", mdpress.ErrEmptyMarkdown, ExitUsage},
		{"invalid page size", mdpress.ErrInvalidPageSize, ExitUsage},
		{"invalid margin", mdpress.ErrInvalidMargin, ExitUsage},
		{"invalid toc depth", mdpress.ErrInvalidTOCDepth, ExitUsage},
		{"unknown extra", mdpress.ErrUnknownExtra, ExitUsage},
		{"style not found", assets.ErrStyleNotFound, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"unexpected", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForWrappedError(t *testing.T) {
	err := fmt.Errorf("loading config: %w", config.ErrConfigNotFound)
	if got := exitCodeFor(err); got != ExitUsage {
		t.Errorf("exitCodeFor(wrapped) = %d, want %d", got, ExitUsage)
	}
}
