package extras

import (
	"regexp"
	"strings"
)

// imageClasses maps recognized ::token:: markers in image alt text to style
// classes: size, position, shape, and filter groups. Unrecognized tokens
// pass through as literal class names, mirroring custom spans.
var imageClasses = map[string]string{
	// Size
	"small":  "img-small",
	"medium": "img-medium",
	"large":  "img-large",
	"full":   "img-full",

	// Position
	"left":   "img-left",
	"center": "img-center",
	"right":  "img-right",

	// Shape
	"rounded": "img-rounded",
	"circle":  "img-circle",
	"border":  "img-border",
	"shadow":  "img-shadow",

	// Filter
	"grayscale": "img-grayscale",
	"sepia":     "img-sepia",
	"invert":    "img-invert",
	"blur":      "img-blur",
}

// imageRef matches a markdown image, optionally followed on the same line
// by an _italic_ caption.
var imageRef = regexp.MustCompile(`!\[([^\]]*)\]\(([^()\s]+)(?:\s+"([^"]*)")?\)(?:[ \t]*_([^_\n]+)_)?`)

// altToken matches one ::token:: attribute marker inside alt text.
var altToken = regexp.MustCompile(`::([A-Za-z0-9-]+)::`)

// convertImages rewrites images whose alt text carries ::token:: attribute
// markers, and images followed by an _caption_ on the same line. Markers
// are stripped from the visible alt text; plain images are left for the
// markdown converter.
func convertImages(text string) string {
	return imageRef.ReplaceAllStringFunc(text, func(match string) string {
		m := imageRef.FindStringSubmatch(match)
		alt, src, title, caption := m[1], m[2], m[3], m[4]

		tokens := altToken.FindAllStringSubmatch(alt, -1)
		if len(tokens) == 0 && caption == "" {
			return match
		}

		var classes []string
		for _, tok := range tokens {
			class, ok := imageClasses[tok[1]]
			if !ok {
				class = tok[1]
			}
			classes = append(classes, class)
		}
		cleanAlt := strings.Join(strings.Fields(altToken.ReplaceAllString(alt, "")), " ")

		var img strings.Builder
		img.WriteString(`<img src="` + escapeHTML(src) + `" alt="` + escapeHTML(cleanAlt) + `"`)
		if title != "" {
			img.WriteString(` title="` + escapeHTML(title) + `"`)
		}
		if len(classes) > 0 {
			img.WriteString(` class="` + strings.Join(classes, " ") + `"`)
		}
		img.WriteString(` />`)

		if caption == "" {
			return img.String()
		}
		return `<figure class="figure">` + img.String() +
			`<figcaption class="caption">` + escapeInline(caption) + `</figcaption></figure>`
	})
}
