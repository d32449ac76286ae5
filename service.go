package mdpress

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkoster/mdpress/internal/assets"
	"github.com/mkoster/mdpress/internal/extras"
)

// Service orchestrates the markdown-to-PDF pipeline: extras rewriting,
// HTML conversion, document assembly, and PDF rendering.
type Service struct {
	cfg           serviceConfig
	htmlConverter htmlConverter
	assembler     documentAssembler
	pdfConverter  pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:           serviceConfig{timeout: defaultTimeout},
		htmlConverter: newGoldmarkConverter(),
		assembler:     &htmlAssembler{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s
}

// Convert runs the full pipeline and returns the rendered result.
// The context is used for cancellation and timeout. Malformed extras
// (bad queries, duplicate table names) do not fail the conversion; they
// render as inline markers and surface in Result.Warnings.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	extraOpts, err := buildExtraOptions(input)
	if err != nil {
		return nil, err
	}
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	// Rewrite markdown: stash, tables, queries, extras, TOC.
	pre := extras.Process(input.Markdown, extraOpts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Convert to an HTML fragment
	fragment, err := s.htmlConverter.ToHTML(ctx, pre.Markup)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	result := &Result{
		Headings: toHeadings(pre.Headings),
		Warnings: toWarnings(pre.Errors),
	}

	// Assemble the standalone document
	result.HTML = s.assembler.Assemble(ctx, assembly{
		Title:   documentTitle(input, pre),
		Body:    fragment,
		CSS:     combineCSS(input.CSS),
		Mermaid: hasMermaid(pre),
		Math:    strings.Contains(pre.Markup, `class="math`),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if input.HTMLOnly {
		return result, nil
	}

	// Convert to PDF
	result.PDF, err = s.pdfConverter.ToPDF(ctx, result.HTML, input.Page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}

// buildExtraOptions resolves the Input extras fields into pipeline options.
func buildExtraOptions(input Input) (extras.Options, error) {
	opts := extras.DefaultOptions()
	for _, name := range input.DisableExtras {
		kind, ok := extras.KindFromName(name)
		if !ok {
			return opts, fmt.Errorf("%w: %q (known: %s)", ErrUnknownExtra, name, strings.Join(extras.KindNames(), ", "))
		}
		opts.Enabled = opts.Enabled.Without(kind)
	}

	if input.TOCDepth < 0 || input.TOCDepth > 6 {
		return opts, fmt.Errorf("%w: %d (must be 0 to 6)", ErrInvalidTOCDepth, input.TOCDepth)
	}
	opts.TOCDepth = input.TOCDepth

	return opts, nil
}

// documentTitle picks the <title>: explicit input first, then the first
// heading, then a fixed fallback.
func documentTitle(input Input, pre *extras.Result) string {
	if input.Title != "" {
		return input.Title
	}
	if len(pre.Headings) > 0 {
		return pre.Headings[0].Text
	}
	return "Document"
}

// combineCSS layers the base stylesheet, the code palette, and the caller's
// CSS, in that order so user rules win.
func combineCSS(userCSS string) string {
	parts := []string{assets.DefaultCSS(), assets.CodeCSS()}
	if userCSS != "" {
		parts = append(parts, userCSS)
	}
	return strings.Join(parts, "\n")
}

// hasMermaid reports whether any extracted diagram needs the mermaid
// hydration script.
func hasMermaid(pre *extras.Result) bool {
	for _, d := range pre.Diagrams {
		if d.Lang == "mermaid" {
			return true
		}
	}
	return false
}

// toHeadings converts pipeline headings to the public type.
func toHeadings(hs []extras.Heading) []Heading {
	if len(hs) == 0 {
		return nil
	}
	out := make([]Heading, len(hs))
	for i, h := range hs {
		out[i] = Heading{Text: h.Text, Level: h.Level, Anchor: h.Anchor}
	}
	return out
}

// toWarnings stringifies the pipeline's non-fatal errors.
func toWarnings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
