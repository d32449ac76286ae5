package extras

import "strings"

// inlineEscaper escapes HTML-significant characters plus the markdown
// characters that the downstream converter would otherwise re-interpret
// inside generated inline markup (emphasis, code, links, math delimiters).
// Numeric entities survive the markdown-to-HTML conversion unchanged.
var inlineEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"*", "&#42;",
	"_", "&#95;",
	"`", "&#96;",
	"~", "&#126;",
	"[", "&#91;",
	"]", "&#93;",
	"\\", "&#92;",
	"$", "&#36;",
)

// escapeInline renders text safe for embedding in generated inline markup.
func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}

// htmlEscaper escapes only HTML-significant characters, for content placed
// inside generated block elements where markdown is not re-interpreted.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeHTML renders text safe for block-level HTML content.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// renderQueryResult renders an evaluated query to markup: a scalar becomes
// inline text, a row set becomes a table element.
func renderQueryResult(res *queryResult) string {
	if res.scalar {
		return escapeInline(res.value)
	}

	var b strings.Builder
	b.WriteString("<table class=\"query-result\">\n<thead>\n<tr>")
	for _, col := range res.columns {
		b.WriteString("<th>")
		b.WriteString(escapeHTML(col))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range res.rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(escapeHTML(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

// renderErrorMarker renders a non-fatal extra-handling error as a visible
// inline annotation. The conversion continues around it.
func renderErrorMarker(err error) string {
	return `<span class="extra-error">` + escapeInline(err.Error()) + `</span>`
}
