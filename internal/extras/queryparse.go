package extras

import (
	"strconv"
	"strings"
)

// tokKind classifies query tokens.
type tokKind int

const (
	tkIdent tokKind = iota
	tkNumber
	tkString
	tkStar
	tkComma
	tkLParen
	tkRParen
	tkOp
	tkEOF
)

// token is one lexed query token with its byte offset.
type token struct {
	kind tokKind
	text string
	pos  int
}

// selectItem is one entry of the select list.
type selectItem struct {
	agg    aggFunc
	column string
	pos    int
}

// literal is the right-hand side of a WHERE comparison: numeric when it
// lexes as a number, text otherwise.
type literal struct {
	raw   string
	num   float64
	isNum bool
}

// whereClause is a single-column comparison filter.
type whereClause struct {
	column string
	op     string
	lit    literal
}

// orderClause is a single-column stable sort directive.
type orderClause struct {
	column string
	desc   bool
}

// querySpec is the parsed form of a query.
type querySpec struct {
	star  bool
	items []selectItem
	table string
	where *whereClause
	order *orderClause
	limit int // -1 when absent
}

// lexQuery tokenizes a query string. Returns a syntax error positioned at
// the first unlexable byte.
func lexQuery(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{tkIdent, src[i:j], i})
			i = j

		case c >= '0' && c <= '9', c == '-' && i+1 < len(src) && src[i+1] >= '0' && src[i+1] <= '9':
			j := i + 1
			for j < len(src) && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			if _, err := strconv.ParseFloat(src[i:j], 64); err != nil {
				return nil, syntaxErr(i)
			}
			toks = append(toks, token{tkNumber, src[i:j], i})
			i = j

		case c == '\'' || c == '"':
			j := i + 1
			for j < len(src) && src[j] != c {
				j++
			}
			if j >= len(src) {
				return nil, syntaxErr(i)
			}
			toks = append(toks, token{tkString, src[i+1 : j], i})
			i = j + 1

		case c == '*':
			toks = append(toks, token{tkStar, "*", i})
			i++
		case c == ',':
			toks = append(toks, token{tkComma, ",", i})
			i++
		case c == '(':
			toks = append(toks, token{tkLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tkRParen, ")", i})
			i++

		case c == '=':
			toks = append(toks, token{tkOp, "=", i})
			i++
		case c == '!':
			if i+1 >= len(src) || src[i+1] != '=' {
				return nil, syntaxErr(i)
			}
			toks = append(toks, token{tkOp, "!=", i})
			i += 2
		case c == '<' || c == '>':
			op := string(c)
			j := i + 1
			if j < len(src) && src[j] == '=' {
				op += "="
				j++
			}
			toks = append(toks, token{tkOp, op, i})
			i = j

		default:
			return nil, syntaxErr(i)
		}
	}
	toks = append(toks, token{tkEOF, "", len(src)})
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// queryParser is a small recursive-descent parser over the token stream.
type queryParser struct {
	toks []token
	i    int
}

func (p *queryParser) peek() token { return p.toks[p.i] }

func (p *queryParser) next() token {
	t := p.toks[p.i]
	if t.kind != tkEOF {
		p.i++
	}
	return t
}

// keyword consumes an identifier matching the given keyword
// case-insensitively.
func (p *queryParser) keyword(kw string) bool {
	t := p.peek()
	if t.kind == tkIdent && strings.EqualFold(t.text, kw) {
		p.next()
		return true
	}
	return false
}

// parseQuery parses a full query string into a querySpec.
func parseQuery(src string) (*querySpec, error) {
	toks, err := lexQuery(src)
	if err != nil {
		return nil, err
	}
	p := &queryParser{toks: toks}

	if !p.keyword("select") {
		return nil, syntaxErr(p.peek().pos)
	}

	spec := &querySpec{limit: -1}
	if err := p.parseSelectList(spec); err != nil {
		return nil, err
	}

	if !p.keyword("from") {
		return nil, syntaxErr(p.peek().pos)
	}
	tbl := p.next()
	if tbl.kind != tkIdent {
		return nil, syntaxErr(tbl.pos)
	}
	spec.table = tbl.text

	if p.keyword("where") {
		where, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		spec.where = where
	}

	if p.keyword("order") {
		if !p.keyword("by") {
			return nil, syntaxErr(p.peek().pos)
		}
		col := p.next()
		if col.kind != tkIdent {
			return nil, syntaxErr(col.pos)
		}
		order := &orderClause{column: col.text}
		if p.keyword("desc") {
			order.desc = true
		} else {
			p.keyword("asc")
		}
		spec.order = order
	}

	if p.keyword("limit") {
		num := p.next()
		if num.kind != tkNumber {
			return nil, syntaxErr(num.pos)
		}
		n, err := strconv.Atoi(num.text)
		if err != nil || n < 0 {
			return nil, syntaxErr(num.pos)
		}
		spec.limit = n
	}

	if end := p.peek(); end.kind != tkEOF {
		return nil, syntaxErr(end.pos)
	}
	return spec, nil
}

// parseSelectList parses `*`, a column list, or a single aggregate call.
// Aggregates cannot be mixed with plain columns (there is no GROUP BY).
func (p *queryParser) parseSelectList(spec *querySpec) error {
	if p.peek().kind == tkStar {
		p.next()
		spec.star = true
		return nil
	}

	for {
		t := p.next()
		if t.kind != tkIdent {
			return syntaxErr(t.pos)
		}

		item := selectItem{column: t.text, pos: t.pos}
		if agg, isAgg := aggNames[strings.ToLower(t.text)]; isAgg && p.peek().kind == tkLParen {
			p.next()
			col := p.next()
			if col.kind != tkIdent {
				return syntaxErr(col.pos)
			}
			if close := p.next(); close.kind != tkRParen {
				return syntaxErr(close.pos)
			}
			item = selectItem{agg: agg, column: col.text, pos: t.pos}
		}
		spec.items = append(spec.items, item)

		if p.peek().kind != tkComma {
			break
		}
		p.next()
	}

	// A single aggregate stands alone; mixing it with plain columns is a
	// syntax error.
	if len(spec.items) > 1 {
		for _, item := range spec.items {
			if item.agg != aggNone {
				return syntaxErr(item.pos)
			}
		}
	}
	return nil
}

// parseWhere parses `<col> <op> <literal>`.
func (p *queryParser) parseWhere() (*whereClause, error) {
	col := p.next()
	if col.kind != tkIdent {
		return nil, syntaxErr(col.pos)
	}
	op := p.next()
	if op.kind != tkOp {
		return nil, syntaxErr(op.pos)
	}

	lit := p.next()
	where := &whereClause{column: col.text, op: op.text}
	switch lit.kind {
	case tkNumber:
		num, err := strconv.ParseFloat(lit.text, 64)
		if err != nil {
			return nil, syntaxErr(lit.pos)
		}
		where.lit = literal{raw: lit.text, num: num, isNum: true}
	case tkString:
		where.lit = literal{raw: lit.text}
	case tkIdent:
		// Bare word literal, e.g. WHERE item = Apple.
		where.lit = literal{raw: lit.text}
	default:
		return nil, syntaxErr(lit.pos)
	}
	return where, nil
}
