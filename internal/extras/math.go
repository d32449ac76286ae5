package extras

import (
	"regexp"
	"strings"
)

// Math content is emitted with KaTeX-style \( \) and \[ \] delimiters; the
// auto-render script injected into the final document picks them up.

// bareNumber matches content that is a plain number, which marks a dollar
// sign as currency rather than a math delimiter.
var bareNumber = regexp.MustCompile(`^[0-9][0-9.,]*$`)

// convertMath rewrites $$...$$ display blocks and $...$ inline spans into
// math markup. It runs after stashing, so delimiters inside code are never
// considered.
func convertMath(text string) string {
	text = convertDisplayMath(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.IndexByte(line, '$') >= 0 {
			lines[i] = convertInlineMath(line)
		}
	}
	return strings.Join(lines, "\n")
}

// convertDisplayMath rewrites $$...$$ blocks, which may span lines.
func convertDisplayMath(text string) string {
	var b strings.Builder
	i := 0
	for {
		open := indexUnescaped(text, i, "$$")
		if open < 0 {
			b.WriteString(text[i:])
			break
		}
		end := indexUnescaped(text, open+2, "$$")
		if end < 0 || strings.TrimSpace(text[open+2:end]) == "" {
			b.WriteString(text[i : open+2])
			i = open + 2
			continue
		}

		b.WriteString(text[i:open])
		content := strings.TrimSpace(text[open+2 : end])
		b.WriteString(`<div class="math math-display">\[`)
		b.WriteString(escapeInline(content))
		b.WriteString(`\]</div>`)
		i = end + 2
	}
	return b.String()
}

// indexUnescaped returns the index of the next occurrence of sub at or
// after from that is not preceded by a backslash, or -1.
func indexUnescaped(text string, from int, sub string) int {
	for {
		idx := strings.Index(text[from:], sub)
		if idx < 0 {
			return -1
		}
		abs := from + idx
		if abs == 0 || text[abs-1] != '\\' {
			return abs
		}
		from = abs + 1
	}
}

// convertInlineMath rewrites $...$ spans within one line.
func convertInlineMath(line string) string {
	var b strings.Builder
	i := 0
	for i < len(line) {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			b.WriteString(line[i : i+2])
			i += 2
			continue
		}
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}

		if end, ok := inlineMathEnd(line, i); ok {
			b.WriteString(`<span class="math math-inline">\(`)
			b.WriteString(escapeInline(line[i+1 : end]))
			b.WriteString(`\)</span>`)
			i = end + 1
			continue
		}

		b.WriteByte(c)
		i++
	}
	return b.String()
}

// inlineMathEnd validates a $ at position open as a math opener and locates
// its closing delimiter on the same line. A $ only opens math when followed
// by a non-space; the close must not be preceded by a space; content that
// is a bare number is currency, not math.
func inlineMathEnd(line string, open int) (end int, ok bool) {
	if open+1 >= len(line) {
		return 0, false
	}
	if next := line[open+1]; next == ' ' || next == '\t' || next == '$' {
		return 0, false
	}

	k := open + 1
	for k < len(line) {
		if line[k] == '\\' {
			k += 2
			continue
		}
		if line[k] == '$' {
			break
		}
		k++
	}
	if k >= len(line) {
		return 0, false
	}

	content := line[open+1 : k]
	if strings.HasSuffix(content, " ") || strings.HasSuffix(content, "\t") {
		return 0, false
	}
	if bareNumber.MatchString(content) {
		return 0, false
	}
	return k, true
}
