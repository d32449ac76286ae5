package extras

import (
	"regexp"
	"strconv"
	"strings"
)

// TOC resolution is two-phase: the dispatch pass replaces each [TOC] marker
// with an opaque placeholder, headings are collected once every other pass
// has run, and the placeholders are substituted last. Headings appearing
// after a marker in the source are therefore always included.

// tocSlot is one deferred TOC marker.
type tocSlot struct {
	token string
	depth int // 0 = use the configured default
}

// tocMarkerLine matches a [TOC] or [TOC depth=N] marker on its own line.
var tocMarkerLine = regexp.MustCompile(`(?m)^\[TOC(?:[ \t]+depth=([0-9]+))?\][ \t]*$`)

// markTOC replaces TOC markers with placeholders and records the requested
// depth for each.
func (p *pipeline) markTOC(text string) string {
	return tocMarkerLine.ReplaceAllStringFunc(text, func(match string) string {
		m := tocMarkerLine.FindStringSubmatch(match)
		depth := 0
		if m[1] != "" {
			depth, _ = strconv.Atoi(m[1])
		}

		token := string(tocOpen) + strconv.Itoa(len(p.tocSlots)) + string(tocEnd)
		p.tocSlots = append(p.tocSlots, tocSlot{token: token, depth: depth})
		return token
	})
}

// headingLine matches an ATX heading, tolerating an existing attribute
// block which is replaced by the generated one.
var headingLine = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+?)[ \t]*(?:\{#[^}\n]*\})?[ \t]*$`)

// collectHeadings records every heading with a deterministic anchor id
// and, when inject is set, adds the id as a {#id} attribute so the
// downstream converter emits a matching anchor. The slug is computed from
// the restored title; stashed code spans would otherwise contribute their
// placeholder index to the anchor. Duplicate anchors are disambiguated
// with -2, -3, ... in encounter order.
func (p *pipeline) collectHeadings(text string, inject bool) string {
	seen := make(map[string]int)
	return headingLine.ReplaceAllStringFunc(text, func(match string) string {
		m := headingLine.FindStringSubmatch(match)
		marks, title := m[1], m[2]

		// Drop optional closing hashes.
		title = strings.TrimRight(strings.TrimRight(title, "#"), " \t")
		if title == "" {
			return match
		}

		anchor := slugify(p.stash.Restore(title))
		seen[anchor]++
		if n := seen[anchor]; n > 1 {
			anchor += "-" + strconv.Itoa(n)
		}

		p.headings = append(p.headings, Heading{
			Text:   p.stash.Restore(title),
			Level:  len(marks),
			Anchor: anchor,
		})
		if !inject {
			return match
		}
		return marks + " " + title + " {#" + anchor + "}"
	})
}

// resolveTOC substitutes the collected headings into every deferred marker.
func (p *pipeline) resolveTOC(text string) string {
	for _, slot := range p.tocSlots {
		depth := slot.depth
		if depth == 0 {
			depth = p.opts.TOCDepth
		}
		text = strings.Replace(text, slot.token, buildTOC(p.headings, depth), 1)
	}
	return text
}

// slugify derives an anchor id from heading text: lower-case, whitespace
// runs become a single hyphen, everything outside [a-z0-9-] is stripped.
func slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == ' ', r == '\t':
			pendingHyphen = true
		}
	}
	return b.String()
}

// buildTOC emits a nested link list for the headings up to maxDepth
// (0 = unlimited). Headings deeper than the limit are omitted entirely.
func buildTOC(headings []Heading, maxDepth int) string {
	var items []Heading
	for _, h := range headings {
		if maxDepth > 0 && h.Level > maxDepth {
			continue
		}
		items = append(items, h)
	}
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<ul class=\"toc\">\n")
	levels := []int{items[0].Level}
	writeTOCItem(&b, items[0])

	for _, h := range items[1:] {
		top := levels[len(levels)-1]
		if h.Level > top {
			levels = append(levels, h.Level)
			b.WriteString("\n<ul>\n")
			writeTOCItem(&b, h)
			continue
		}

		b.WriteString("</li>\n")
		for len(levels) > 1 && levels[len(levels)-1] > h.Level {
			levels = levels[:len(levels)-1]
			b.WriteString("</ul>\n</li>\n")
		}
		writeTOCItem(&b, h)
	}

	b.WriteString("</li>\n")
	for len(levels) > 1 {
		levels = levels[:len(levels)-1]
		b.WriteString("</ul>\n</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

// writeTOCItem opens a list item with its anchor link; the item is closed
// by the caller once any nested list has been emitted.
func writeTOCItem(b *strings.Builder, h Heading) {
	b.WriteString(`<li><a href="#` + h.Anchor + `">` + escapeInline(h.Text) + `</a>`)
}
