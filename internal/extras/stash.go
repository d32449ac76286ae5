package extras

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder tokens wrap a decimal region index in Unicode Private Use
// Area characters. PUA characters cannot appear in ordinary markdown prose,
// so tokens are collision-free, and they pass through every rewriting pass
// untouched. The same technique protects deferred TOC markers.
const (
	phOpen  = '\ue000'
	phClose = '\ue001'
	tocOpen = '\ue002'
	tocEnd  = '\ue003'
)

// phToken matches a stash placeholder and captures its region index.
var phToken = regexp.MustCompile(string(phOpen) + `([0-9]+)` + string(phClose))

// stash holds protected regions by index. The mapping is append-only during
// one pipeline run; regions are substituted back once at the very end.
type stash struct {
	regions []string
}

// add stores content and returns the opaque placeholder token for it.
func (s *stash) add(content string) string {
	s.regions = append(s.regions, content)
	return string(phOpen) + strconv.Itoa(len(s.regions)-1) + string(phClose)
}

// Protect replaces regions that must be immune to rewriting with placeholder
// tokens, in precedence order: fenced code blocks, raw HTML blocks, indented
// code blocks, then inline code spans. A region contained in an already
// protected region is never stashed twice.
func (s *stash) Protect(text string) string {
	text = s.protectBlocks(text)
	return s.protectInlineCode(text)
}

// Restore substitutes every placeholder back by index lookup, returning the
// protected regions verbatim. Restore(Protect(text)) == text for all input.
func (s *stash) Restore(text string) string {
	// Restored regions never contain further tokens except where an extra
	// deliberately nested one, so a bounded number of passes suffices.
	for pass := 0; pass < len(s.regions)+1; pass++ {
		if !strings.ContainsRune(text, phOpen) {
			break
		}
		text = phToken.ReplaceAllStringFunc(text, func(tok string) string {
			m := phToken.FindStringSubmatch(tok)
			idx, err := strconv.Atoi(m[1])
			if err != nil || idx >= len(s.regions) {
				return tok
			}
			return s.regions[idx]
		})
	}
	return text
}

// htmlBlockStart matches the opening line of a raw block-level HTML region:
// an optional indent of up to three spaces, then a tag, closing tag,
// comment, or processing instruction.
var htmlBlockStart = regexp.MustCompile(`^ {0,3}<(?:[A-Za-z][A-Za-z0-9-]*(?:[\s/>]|$)|/[A-Za-z]|!|\?)`)

// protectBlocks stashes fenced code, raw HTML blocks, and indented code.
// The scan is line-based; block placeholders occupy whole lines so the
// line structure of the document is preserved.
func (s *stash) protectBlocks(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		line := lines[i]

		if ch, n, ok := fenceOpen(line); ok {
			j := i + 1
			for j < len(lines) && !fenceClose(lines[j], ch, n) {
				j++
			}
			// An unterminated fence extends to end of document.
			end := len(lines)
			if j < len(lines) {
				end = j + 1
			}
			out = append(out, s.add(strings.Join(lines[i:end], "\n")))
			i = end
			continue
		}

		if htmlBlockStart.MatchString(line) {
			j := i
			for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
				j++
			}
			out = append(out, s.add(strings.Join(lines[i:j], "\n")))
			i = j
			continue
		}

		if isIndentedCode(line) && (i == 0 || strings.TrimSpace(lines[i-1]) == "") {
			j := i + 1
			for j < len(lines) {
				if isIndentedCode(lines[j]) {
					j++
					continue
				}
				// Interior blank lines belong to the block when more
				// indented code follows.
				if strings.TrimSpace(lines[j]) == "" && j+1 < len(lines) && isIndentedCode(lines[j+1]) {
					j += 2
					continue
				}
				break
			}
			out = append(out, s.add(strings.Join(lines[i:j], "\n")))
			i = j
			continue
		}

		out = append(out, line)
		i++
	}

	return strings.Join(out, "\n")
}

// fenceOpen reports whether the line opens a fenced code block, returning
// the delimiter character and run length. Up to three spaces of indentation
// are allowed; a backtick fence may not carry backticks in its info string.
func fenceOpen(line string) (ch byte, n int, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || trimmed == "" {
		return 0, 0, false
	}
	ch = trimmed[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	if ch == '`' && strings.ContainsRune(trimmed[n:], '`') {
		return 0, 0, false
	}
	return ch, n, true
}

// fenceClose reports whether the line closes a fence opened with a run of n
// ch characters. A longer run of the same character also closes it; shorter
// runs nested inside do not.
func fenceClose(line string, ch byte, n int) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	run := 0
	for run < len(trimmed) && trimmed[run] == ch {
		run++
	}
	return run >= n && strings.TrimSpace(trimmed[run:]) == ""
}

// isIndentedCode reports whether the line starts an indented code line
// (four spaces or a tab) and is not blank.
func isIndentedCode(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

// protectInlineCode stashes inline code spans. A span opens with a run of
// backticks and closes at the next run of exactly the same length; spans do
// not cross blank lines. Backtick runs inside fenced blocks are already
// stashed by the time this runs.
func (s *stash) protectInlineCode(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		c := text[i]
		if c != '`' {
			b.WriteByte(c)
			i++
			continue
		}

		j := i
		for j < len(text) && text[j] == '`' {
			j++
		}
		n := j - i

		if end, ok := findCodeSpanEnd(text, j, n); ok {
			b.WriteString(s.add(text[i:end]))
			i = end
			continue
		}

		// No matching close: the run is literal backticks.
		b.WriteString(text[i:j])
		i = j
	}

	return b.String()
}

// findCodeSpanEnd locates the end of a code span opened by a run of n
// backticks ending at position start. Returns the index just past the
// closing run, or ok=false when no close exists before a blank line.
func findCodeSpanEnd(text string, start, n int) (end int, ok bool) {
	k := start
	for k < len(text) {
		switch {
		case text[k] == '`':
			m := k
			for m < len(text) && text[m] == '`' {
				m++
			}
			if m-k == n {
				return m, true
			}
			k = m
		case text[k] == '\n' && k+1 < len(text) && text[k+1] == '\n':
			return 0, false
		default:
			k++
		}
	}
	return 0, false
}
