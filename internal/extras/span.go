package extras

import "regexp"

// spanClasses maps built-in span names (and their abbreviations) to the
// style classes the default stylesheet defines. Any identifier not listed
// here passes through as a literal class name so external stylesheets can
// target it.
var spanClasses = map[string]string{
	// Colors
	"red":    "red",
	"orange": "orange",
	"yellow": "yellow",
	"green":  "green",
	"blue":   "blue",
	"purple": "purple",
	"gray":   "gray",
	"grey":   "gray",

	// Decoration
	"u":         "underline",
	"underline": "underline",
	"hl":        "highlight",
	"highlight": "highlight",
	"key":       "key",
	"kbd":       "key",

	// Alignment
	"left":   "align-left",
	"center": "align-center",
	"right":  "align-right",

	// Size
	"tiny":  "tiny",
	"xs":    "tiny",
	"small": "small",
	"sm":    "small",
	"large": "large",
	"lg":    "large",
	"huge":  "huge",
	"xl":    "huge",
}

// customSpan matches name{{content}}. The content class excludes braces, so
// repeated application resolves nested spans innermost-first.
var customSpan = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_-]*)\{\{([^{}]*)\}\}`)

// convertSpans rewrites name{{content}} into classed span elements. The
// content stays markdown, so spans compose with later passes and with each
// other.
func convertSpans(text string) string {
	for {
		replaced := customSpan.ReplaceAllStringFunc(text, func(match string) string {
			m := customSpan.FindStringSubmatch(match)
			name, content := m[1], m[2]

			class, ok := spanClasses[name]
			if !ok {
				class = name
			}
			return `<span class="` + class + `">` + content + `</span>`
		})
		if replaced == text {
			return replaced
		}
		text = replaced
	}
}
