package extras

import (
	"regexp"
	"strings"
)

// admonitionKinds is the closed set of recognized callout kinds. Unknown
// kinds fail soft: they render as a generic callout, not an error.
var admonitionKinds = map[string]bool{
	"note":      true,
	"tip":       true,
	"hint":      true,
	"important": true,
	"warning":   true,
	"caution":   true,
	"attention": true,
	"danger":    true,
	"error":     true,
}

// admonitionMarker matches the directive line: ".. kind::" with an optional
// inline title.
var admonitionMarker = regexp.MustCompile(`^(\s*)\.\.\s+([A-Za-z]+)::[ \t]*(.*)$`)

// convertAdmonitions rewrites directive-style callouts into titled block
// containers. Body lines are the following lines indented past the marker;
// they stay markdown and remain eligible for later passes.
func convertAdmonitions(text string) string {
	lines := strings.Split(text, "\n")
	var out []string

	i := 0
	for i < len(lines) {
		m := admonitionMarker.FindStringSubmatch(lines[i])
		if m == nil {
			out = append(out, lines[i])
			i++
			continue
		}

		indent, kind, title := len(m[1]), strings.ToLower(m[2]), m[3]

		// Body: subsequent lines indented deeper than the marker; blank
		// lines are kept while indented content follows.
		j := i + 1
		for j < len(lines) {
			if lineIndent(lines[j]) > indent {
				j++
				continue
			}
			if strings.TrimSpace(lines[j]) == "" && j+1 < len(lines) && lineIndent(lines[j+1]) > indent {
				j += 2
				continue
			}
			break
		}

		out = append(out, renderAdmonition(kind, title, dedent(lines[i+1:j]))...)
		i = j
	}

	return strings.Join(out, "\n")
}

// renderAdmonition emits the callout container. The opening tag and body
// are separated by blank lines so the body is still parsed as markdown
// inside the HTML block.
func renderAdmonition(kind, title string, body []string) []string {
	class := "admonition"
	if admonitionKinds[kind] {
		class += " " + kind
	}

	out := []string{`<div class="` + class + `">`}
	if title != "" {
		out = append(out, `<p class="admonition-title">`+escapeInline(title)+`</p>`)
	}
	out = append(out, "")
	out = append(out, body...)
	out = append(out, "", "</div>")
	return out
}

// lineIndent counts leading spaces, tabs expanding to four.
func lineIndent(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	// A blank line has no meaningful indentation.
	return 0
}

// dedent strips the smallest common indentation of the non-blank lines.
func dedent(lines []string) []string {
	min := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if min < 0 || n < min {
			min = n
		}
	}
	if min <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= min {
			out[i] = line[min:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return out
}
