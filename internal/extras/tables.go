package extras

import (
	"regexp"
	"strconv"
	"strings"
)

// ColumnType is the inferred type of a table column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeReal
)

// String returns the type name.
func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	default:
		return "text"
	}
}

// Numeric reports whether the type supports numeric aggregation.
func (t ColumnType) Numeric() bool {
	return t == TypeInteger || t == TypeReal
}

// Column is one typed column of a named table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is an in-memory typed table harvested from an annotated pipe table.
// Cells are stored as their source text; an empty cell is a null that does
// not affect type inference and is excluded from numeric aggregation.
type Table struct {
	Name    string
	Caption string
	Columns []Column
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// tableAnnotation matches the naming annotation that follows a pipe table:
// a block-quote-style line of the form "> [identifier] optional caption".
var tableAnnotation = regexp.MustCompile(`^>\s*\[([A-Za-z_][A-Za-z0-9_]*)\]\s*(.*?)\s*$`)

// alignmentRow matches the delimiter row under a pipe table header.
var alignmentRow = regexp.MustCompile(`^\s*\|?[\s:|-]*-[\s:|-]*\|?\s*$`)

// registerTables scans the text for pipe tables followed by a naming
// annotation, parses each into a typed Table, and removes the annotation
// lines. Tables without an annotation are left alone for ordinary
// rendering. A name declared twice is overwritten (last writer wins) and
// reported as a DuplicateTableError warning.
func registerTables(text string) (string, map[string]*Table, []error) {
	tables := make(map[string]*Table)
	var warnings []error

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		if !isTableHeader(lines, i) {
			out = append(out, lines[i])
			i++
			continue
		}

		// Consume header, alignment row, and body rows.
		start := i
		i += 2
		for i < len(lines) && isTableRow(lines[i]) {
			i++
		}
		out = append(out, lines[start:i]...)

		// Only blank lines are permitted between the table and its
		// annotation.
		j := i
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		var sub []string
		if j < len(lines) {
			sub = tableAnnotation.FindStringSubmatch(lines[j])
		}
		if sub == nil {
			continue
		}

		name, caption := sub[1], sub[2]
		tbl := parseTable(lines[start:i])
		tbl.Name = name
		tbl.Caption = caption
		if _, dup := tables[name]; dup {
			warnings = append(warnings, &DuplicateTableError{Name: name})
		}
		tables[name] = tbl

		// Keep the blank gap, drop the annotation line itself.
		out = append(out, lines[i:j]...)
		i = j + 1
	}

	return strings.Join(out, "\n"), tables, warnings
}

// isTableHeader reports whether line i starts a pipe table: a row containing
// a pipe followed by an alignment row with at least one dash.
func isTableHeader(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	return isTableRow(lines[i]) && alignmentRow.MatchString(lines[i+1]) && strings.Contains(lines[i+1], "|")
}

// isTableRow reports whether the line belongs to a pipe table body.
func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.Contains(trimmed, "|")
}

// parseTable builds a typed Table from the lines of a pipe table
// (header, alignment row, body rows).
func parseTable(lines []string) *Table {
	header := splitRow(lines[0])
	tbl := &Table{Columns: make([]Column, len(header))}
	for i, name := range header {
		tbl.Columns[i] = Column{Name: name}
	}

	for _, line := range lines[2:] {
		row := splitRow(line)
		// Normalize ragged rows to the header width.
		cells := make([]string, len(header))
		copy(cells, row)
		tbl.Rows = append(tbl.Rows, cells)
	}

	for i := range tbl.Columns {
		tbl.Columns[i].Type = inferColumnType(tbl.Rows, i)
	}
	return tbl
}

// splitRow splits one pipe table row into trimmed cells, honoring escaped
// pipes and stripping the optional leading and trailing delimiters.
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range trimmed {
		switch {
		case escaped:
			if r != '|' {
				cur.WriteByte('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteByte('\\')
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// inferColumnType types a column: integer when every non-empty cell parses
// as a base-10 integer, real when every non-empty cell parses as a decimal
// number and at least one is non-integral, text otherwise. Empty cells are
// nulls and do not participate.
func inferColumnType(rows [][]string, col int) ColumnType {
	sawValue := false
	allInt := true
	allNum := true

	for _, row := range rows {
		cell := row[col]
		if cell == "" {
			continue
		}
		sawValue = true
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			allInt = false
			if _, ferr := strconv.ParseFloat(cell, 64); ferr != nil {
				allNum = false
				break
			}
		}
	}

	switch {
	case !sawValue || !allNum:
		return TypeText
	case allInt:
		return TypeInteger
	default:
		return TypeReal
	}
}
