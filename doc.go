// Package mdpress converts extended Markdown documents to PDF using
// headless Chrome.
//
// # Quick Start
//
// Create a service, convert markdown, and close when done:
//
//	svc := mdpress.New()
//	defer svc.Close()
//
//	result, err := svc.Convert(ctx, mdpress.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes (result.PDF), the assembled HTML
// (result.HTML) for debugging, the collected document headings, and any
// non-fatal warnings. Use Input.HTMLOnly to skip PDF generation.
//
// # Markdown Extras
//
// Beyond GFM, the converter understands a set of independently toggleable
// syntax extensions ("extras"), applied before HTML conversion:
//
//   - Named tables and queries: annotate a pipe table with "> [name]" and
//     substitute computed values inline with [query: SELECT ...].
//   - Math: $inline$ and $$display$$ TeX, rendered by KaTeX.
//   - Diagrams: mermaid/dot/graphviz/plantuml fences become diagram
//     containers.
//   - Admonitions: ".. warning:: title" directive blocks.
//   - Custom spans: red{{text}}, hl{{text}}, center{{text}}.
//   - Image attributes and captions: ::small:: markers in alt text, an
//     _italic caption_ after the image.
//   - Table of contents: [TOC] or [TOC depth=N] markers.
//   - Page breaks: two consecutive horizontal rules force a page break.
//
// Content inside code fences, inline code, and raw HTML blocks is never
// touched. Malformed constructs (bad queries, unknown tables) degrade into
// visible inline markers and are reported via Result.Warnings; they never
// fail the conversion.
//
// Disable individual extras per conversion:
//
//	result, err := svc.Convert(ctx, mdpress.Input{
//	    Markdown:      content,
//	    DisableExtras: []string{"math", "spans"},
//	})
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := mdpress.New(mdpress.WithTimeout(2 * time.Minute))
//
// Per-conversion options are passed via Input:
//
//	result, err := svc.Convert(ctx, mdpress.Input{
//	    Markdown: content,
//	    Title:    "Quarterly Report",
//	    CSS:      "body { font-size: 14px; }",
//	    Page:     &mdpress.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5},
//	    TOCDepth: 3,
//	})
//
// # Watch Mode
//
// Watcher re-runs a conversion whenever source files change, for live
// preview workflows:
//
//	w := &mdpress.Watcher{}
//	err := w.Watch(ctx, []string{"doc.md", "style.css"}, func(ctx context.Context) error {
//	    return convertOnce(ctx)
//	})
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package mdpress
