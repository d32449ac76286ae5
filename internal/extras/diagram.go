package extras

import "strings"

// diagramLangs is the closed set of fence info strings recognized as
// diagram languages.
var diagramLangs = map[string]bool{
	"mermaid":  true,
	"dot":      true,
	"graphviz": true,
	"plantuml": true,
}

// extractDiagrams walks the stashed fence regions and converts those tagged
// with a diagram language into container markup, recording each diagram for
// the external renderer. The rewritten entries stay stashed, so the
// containers are never re-processed and the body is never markdown-parsed.
//
// Mermaid uses the bare container its hydration script expects; other
// languages get a generic container carrying the language as metadata.
func (p *pipeline) extractDiagrams() {
	for i, region := range p.stash.regions {
		lang, body, ok := parseFenceRegion(region)
		if !ok || !diagramLangs[lang] {
			continue
		}

		p.diagrams = append(p.diagrams, Diagram{Lang: lang, Body: body})

		if lang == "mermaid" {
			p.stash.regions[i] = "<div class=\"mermaid\">\n" + body + "</div>"
			continue
		}
		p.stash.regions[i] = "<div class=\"diagram\" data-diagram-lang=\"" + lang + "\">\n<pre>" +
			escapeHTML(body) + "</pre>\n</div>"
	}
}

// parseFenceRegion splits a stashed fenced code block into its info-string
// language and body. Returns ok=false for regions that are not fences.
func parseFenceRegion(region string) (lang, body string, ok bool) {
	nl := strings.IndexByte(region, '\n')
	if nl < 0 {
		return "", "", false
	}
	ch, n, isFence := fenceOpen(region[:nl])
	if !isFence {
		return "", "", false
	}

	info := strings.TrimSpace(strings.TrimLeft(strings.TrimLeft(region[:nl], " "), string(ch)))
	lang = strings.ToLower(info)
	if i := strings.IndexAny(lang, " \t"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return "", "", false
	}

	lines := strings.Split(region[nl+1:], "\n")
	end := len(lines)
	if end > 0 && fenceClose(lines[end-1], ch, n) {
		end--
	}
	body = strings.Join(lines[:end], "\n")
	if body != "" {
		body += "\n"
	}
	return lang, body, true
}
