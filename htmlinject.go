package mdpress

import (
	"context"
	"html"
	"strings"
)

// Script URLs for the hydration libraries loaded into the rendered page.
// Chrome fetches them while loading the page; offline renders degrade to the
// unhydrated containers (raw diagram text, TeX source).
const (
	mermaidScriptURL   = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
	katexBaseURL       = "https://cdn.jsdelivr.net/npm/katex@0.16.9/dist"
	katexStylesheetURL = katexBaseURL + "/katex.min.css"
	katexScriptURL     = katexBaseURL + "/katex.min.js"
	katexAutoRenderURL = katexBaseURL + "/contrib/auto-render.min.js"
)

// assembly carries everything needed to build a complete HTML document from
// a converted body fragment.
type assembly struct {
	Title   string
	Body    string
	CSS     string // combined stylesheet, already ordered
	Mermaid bool   // body contains mermaid containers
	Math    bool   // body contains math spans
}

// documentAssembler builds a standalone HTML document from a fragment.
type documentAssembler interface {
	Assemble(ctx context.Context, a assembly) string
}

// htmlAssembler implements documentAssembler with string building; the
// output feeds a headless browser, never a template engine.
type htmlAssembler struct{}

// Assemble wraps the body fragment in a complete HTML5 document with the
// stylesheet inlined and hydration scripts appended when the body needs
// them.
func (h *htmlAssembler) Assemble(ctx context.Context, a assembly) string {
	if ctx.Err() != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(a.Title))
	b.WriteString("</title>\n")

	if a.Math {
		b.WriteString(`<link rel="stylesheet" href="` + katexStylesheetURL + "\">\n")
	}
	if a.CSS != "" {
		b.WriteString("<style>\n")
		b.WriteString(sanitizeCSS(a.CSS))
		b.WriteString("\n</style>\n")
	}

	b.WriteString("</head>\n<body>\n")
	b.WriteString(a.Body)

	if a.Mermaid {
		b.WriteString(`<script src="` + mermaidScriptURL + "\"></script>\n")
		b.WriteString("<script>mermaid.initialize({startOnLoad: true});</script>\n")
	}
	if a.Math {
		b.WriteString(`<script src="` + katexScriptURL + "\"></script>\n")
		b.WriteString(`<script src="` + katexAutoRenderURL + "\"></script>\n")
		b.WriteString(`<script>renderMathInElement(document.body, {delimiters: [` +
			`{left: "\\(", right: "\\)", display: false}, ` +
			`{left: "\\[", right: "\\]", display: true}]});</script>` + "\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// InjectCSS inserts a <style> block into an existing HTML document.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
// Prevents CSS injection by escaping </style> and similar closing sequences.
func sanitizeCSS(css string) string {
	// Escape </ sequences to prevent closing the style tag prematurely
	return strings.ReplaceAll(css, "</", `<\/`)
}
