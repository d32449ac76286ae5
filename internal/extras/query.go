package extras

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The query engine evaluates a restricted, read-only SELECT dialect against
// one named table:
//
//	SELECT <col-list|*|aggregate(col)> FROM <table>
//	       [WHERE <col> <op> <literal>]
//	       [ORDER BY <col> [ASC|DESC]] [LIMIT <n>]
//
// Keywords are case-insensitive. A single aggregate with no other columns
// yields a scalar; every other valid SELECT yields a row set in source
// order (or a stable sort under ORDER BY).

// aggFunc identifies an aggregate function.
type aggFunc int

const (
	aggNone aggFunc = iota
	aggCount
	aggSum
	aggAvg
	aggMin
	aggMax
)

var aggNames = map[string]aggFunc{
	"count": aggCount,
	"sum":   aggSum,
	"avg":   aggAvg,
	"min":   aggMin,
	"max":   aggMax,
}

// queryResult is the outcome of one evaluation: either a rendered scalar or
// a row set. It does not outlive the substitution that consumed it.
type queryResult struct {
	scalar  bool
	value   string
	columns []string
	rows    [][]string
}

// evaluate parses and evaluates a query against the registered tables.
// All failures are *QueryError values; none are fatal to the conversion.
func evaluate(query string, tables map[string]*Table) (*queryResult, error) {
	spec, err := parseQuery(query)
	if err != nil {
		return nil, err
	}

	tbl, ok := tables[spec.table]
	if !ok {
		return nil, &QueryError{Kind: ErrUnknownTable, Name: spec.table}
	}

	rows, err := filterRows(tbl, spec.where)
	if err != nil {
		return nil, err
	}

	if len(spec.items) == 1 && spec.items[0].agg != aggNone {
		value, err := computeAggregate(tbl, rows, spec.items[0])
		if err != nil {
			return nil, err
		}
		return &queryResult{scalar: true, value: value}, nil
	}

	if spec.order != nil {
		idx := tbl.ColumnIndex(spec.order.column)
		if idx < 0 {
			return nil, &QueryError{Kind: ErrUnknownColumn, Name: spec.order.column}
		}
		sortRows(rows, idx, tbl.Columns[idx].Type, spec.order.desc)
	}

	if spec.limit >= 0 && len(rows) > spec.limit {
		rows = rows[:spec.limit]
	}

	return projectRows(tbl, rows, spec)
}

// filterRows applies the WHERE clause, keeping source order. Null cells
// never satisfy a comparison.
func filterRows(tbl *Table, where *whereClause) ([][]string, error) {
	if where == nil {
		return tbl.Rows, nil
	}

	idx := tbl.ColumnIndex(where.column)
	if idx < 0 {
		return nil, &QueryError{Kind: ErrUnknownColumn, Name: where.column}
	}

	colType := tbl.Columns[idx].Type
	if colType.Numeric() != where.lit.isNum {
		return nil, &QueryError{
			Kind:   ErrTypeMismatch,
			Detail: fmt.Sprintf("cannot compare %s column %q with %s literal %s", colType, where.column, literalType(where.lit), where.lit.raw),
		}
	}

	var kept [][]string
	for _, row := range tbl.Rows {
		cell := row[idx]
		if cell == "" {
			continue
		}
		if matchesWhere(cell, colType, where) {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

// matchesWhere evaluates one comparison. The column/literal types were
// already checked by filterRows.
func matchesWhere(cell string, colType ColumnType, where *whereClause) bool {
	var cmp int
	if colType.Numeric() {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return false
		}
		switch {
		case v < where.lit.num:
			cmp = -1
		case v > where.lit.num:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(cell, where.lit.raw)
	}

	switch where.op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	default: // ">="
		return cmp >= 0
	}
}

// sortRows stable-sorts rows on one column using the column type's natural
// ordering. Null cells sort before every value.
func sortRows(rows [][]string, idx int, colType ColumnType, desc bool) {
	less := func(a, b string) bool {
		if a == "" || b == "" {
			return a == "" && b != ""
		}
		if colType.Numeric() {
			av, aerr := strconv.ParseFloat(a, 64)
			bv, berr := strconv.ParseFloat(b, 64)
			if aerr == nil && berr == nil {
				return av < bv
			}
		}
		return a < b
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j][idx], rows[i][idx])
		}
		return less(rows[i][idx], rows[j][idx])
	})
}

// projectRows builds the row set for the selected columns.
func projectRows(tbl *Table, rows [][]string, spec *querySpec) (*queryResult, error) {
	var indices []int
	var columns []string

	if spec.star {
		for i, c := range tbl.Columns {
			indices = append(indices, i)
			columns = append(columns, c.Name)
		}
	} else {
		for _, item := range spec.items {
			idx := tbl.ColumnIndex(item.column)
			if idx < 0 {
				return nil, &QueryError{Kind: ErrUnknownColumn, Name: item.column}
			}
			indices = append(indices, idx)
			columns = append(columns, item.column)
		}
	}

	projected := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(indices))
		for j, idx := range indices {
			cells[j] = row[idx]
		}
		projected[i] = cells
	}

	return &queryResult{columns: columns, rows: projected}, nil
}

// computeAggregate evaluates a single-aggregate select over the filtered
// rows. sum, min, and max preserve the column's inferred type and full
// precision; avg renders with two decimal places; count accepts any column
// and counts non-null cells.
func computeAggregate(tbl *Table, rows [][]string, item selectItem) (string, error) {
	idx := tbl.ColumnIndex(item.column)
	if idx < 0 {
		return "", &QueryError{Kind: ErrUnknownColumn, Name: item.column}
	}
	colType := tbl.Columns[idx].Type

	if (item.agg == aggSum || item.agg == aggAvg) && !colType.Numeric() {
		return "", &QueryError{
			Kind:   ErrTypeMismatch,
			Detail: fmt.Sprintf("aggregate over non-numeric column %q", item.column),
		}
	}

	var cells []string
	for _, row := range rows {
		if row[idx] != "" {
			cells = append(cells, row[idx])
		}
	}

	switch item.agg {
	case aggCount:
		return strconv.Itoa(len(cells)), nil

	case aggSum:
		if colType == TypeInteger {
			var sum int64
			for _, c := range cells {
				v, _ := strconv.ParseInt(c, 10, 64)
				sum += v
			}
			return strconv.FormatInt(sum, 10), nil
		}
		var sum float64
		for _, c := range cells {
			v, _ := strconv.ParseFloat(c, 64)
			sum += v
		}
		return strconv.FormatFloat(sum, 'f', -1, 64), nil

	case aggAvg:
		if len(cells) == 0 {
			return "0.00", nil
		}
		var sum float64
		for _, c := range cells {
			v, _ := strconv.ParseFloat(c, 64)
			sum += v
		}
		return fmt.Sprintf("%.2f", sum/float64(len(cells))), nil

	default: // aggMin, aggMax
		if len(cells) == 0 {
			return "", nil
		}
		best := cells[0]
		for _, c := range cells[1:] {
			if aggLess(c, best, colType) == (item.agg == aggMin) {
				best = c
			}
		}
		return best, nil
	}
}

// aggLess compares two cells using the column's natural ordering.
func aggLess(a, b string, colType ColumnType) bool {
	if colType.Numeric() {
		av, aerr := strconv.ParseFloat(a, 64)
		bv, berr := strconv.ParseFloat(b, 64)
		if aerr == nil && berr == nil {
			return av < bv
		}
	}
	return a < b
}

// literalType names the type of a parsed literal for error messages.
func literalType(lit literal) string {
	if lit.isNum {
		return "numeric"
	}
	return "text"
}
