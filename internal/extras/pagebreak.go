package extras

import (
	"regexp"
	"strings"
)

// thematicBreakLine matches a markdown thematic break (---, ***, ___).
var thematicBreakLine = regexp.MustCompile(`^ {0,3}(?:(?:\* *){3,}|(?:- *){3,}|(?:_ *){3,})$`)

// collapsePageBreaks turns two consecutive thematic breaks, with only blank
// lines between, into a single page-break marker instead of two visual
// rules.
func collapsePageBreaks(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		if !thematicBreakLine.MatchString(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j < len(lines) && thematicBreakLine.MatchString(lines[j]) {
			out = append(out, `<div class="page-break"></div>`)
			i = j + 1
			continue
		}

		out = append(out, lines[i])
		i++
	}

	return strings.Join(out, "\n")
}
