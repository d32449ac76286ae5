// Package extras implements the extended-markdown rewriting pipeline.
//
// The pipeline recognizes a family of non-standard markdown constructs
// (math, diagram fences, admonitions, custom spans, image attributes,
// named tables queried with a small SQL-like language, table-of-contents
// markers, page breaks) and rewrites them into intermediate markup that a
// standards-conformant markdown converter can carry through to HTML.
//
// Processing is staged: protected regions (code fences, indented code,
// inline code spans, raw HTML blocks) are stashed behind opaque placeholder
// tokens first, the rewriting passes run over the stashed text in a fixed
// priority order, and the protected regions are restored verbatim at the
// very end. Generated markup that must not be re-interpreted by later
// passes (query results, diagram containers) is itself stashed on emission.
//
// All state is local to a single Process call, so concurrent conversions
// of independent documents are safe.
package extras
