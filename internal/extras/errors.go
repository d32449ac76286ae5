package extras

import "fmt"

// QueryErrorKind classifies query evaluation failures.
type QueryErrorKind int

const (
	// ErrSyntax indicates a malformed query; Pos is the byte offset of the
	// offending token within the query string.
	ErrSyntax QueryErrorKind = iota

	// ErrUnknownTable indicates the query references a table that was never
	// registered; Name holds the table name.
	ErrUnknownTable

	// ErrUnknownColumn indicates the query references a column the table
	// does not have; Name holds the column name.
	ErrUnknownColumn

	// ErrTypeMismatch indicates a comparison or aggregate over incompatible
	// types; Detail describes the mismatch.
	ErrTypeMismatch
)

// QueryError is a non-fatal query evaluation failure. It is rendered as an
// inline error marker in the output and collected in Result.Errors; it never
// aborts the document conversion.
type QueryError struct {
	Kind   QueryErrorKind
	Name   string // table or column name, for reference errors
	Pos    int    // byte offset in the query string, for syntax errors
	Detail string // human-readable detail, for type mismatches
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	switch e.Kind {
	case ErrUnknownTable:
		return fmt.Sprintf("unknown table %q", e.Name)
	case ErrUnknownColumn:
		return fmt.Sprintf("unknown column %q", e.Name)
	case ErrTypeMismatch:
		return "type mismatch: " + e.Detail
	default:
		return fmt.Sprintf("syntax error at position %d", e.Pos)
	}
}

// syntaxErr builds a syntax QueryError at the given position.
func syntaxErr(pos int) *QueryError {
	return &QueryError{Kind: ErrSyntax, Pos: pos}
}

// DuplicateTableError reports that two tables were registered under the same
// name. The second registration wins; the error is collected as a warning.
type DuplicateTableError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table %q registered twice, last definition wins", e.Name)
}
