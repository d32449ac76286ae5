package extras

import "regexp"

// inlineQuery matches the query substitution syntax. The query string runs
// to the closing bracket; queries themselves never contain brackets.
var inlineQuery = regexp.MustCompile(`\[query:\s*([^\]]+?)\s*\]`)

// applyQueries substitutes every [query: ...] occurrence with its evaluated
// result. Output is stashed on emission so it cannot be re-interpreted as
// further query syntax (or by any later pass); evaluation failures render
// as inline error markers and are collected, never aborting the run.
func (p *pipeline) applyQueries(text string) string {
	return inlineQuery.ReplaceAllStringFunc(text, func(match string) string {
		query := inlineQuery.FindStringSubmatch(match)[1]

		res, err := evaluate(query, p.tables)
		if err != nil {
			p.errors = append(p.errors, err)
			return p.stash.add(renderErrorMarker(err))
		}
		return p.stash.add(renderQueryResult(res))
	})
}
