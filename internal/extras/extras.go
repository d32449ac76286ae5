package extras

import "strings"

// Kind identifies one independently toggleable rewriting rule.
type Kind int

// The catalog of built-in extras, in dispatch priority order.
// Query substitution runs first among content-generating extras so its
// output can be stashed before any other pass sees it.
const (
	KindQuery Kind = iota
	KindMath
	KindDiagram
	KindAdmonition
	KindSpan
	KindImage
	KindTOC
	KindPageBreak

	numKinds
)

// kindNames maps kinds to the names used in configuration and CLI flags.
var kindNames = [numKinds]string{
	KindQuery:      "query",
	KindMath:       "math",
	KindDiagram:    "diagrams",
	KindAdmonition: "admonitions",
	KindSpan:       "spans",
	KindImage:      "images",
	KindTOC:        "toc",
	KindPageBreak:  "pagebreaks",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// KindFromName resolves a configuration name to a Kind.
func KindFromName(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// KindNames lists the configuration names of all built-in extras.
func KindNames() []string {
	names := make([]string, numKinds)
	copy(names, kindNames[:])
	return names
}

// Set is a bitmask of enabled extras.
type Set uint

// AllExtras returns a Set with every built-in extra enabled.
func AllExtras() Set {
	return Set(1<<numKinds) - 1
}

// Has reports whether k is enabled in the set.
func (s Set) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// With returns a copy of the set with k enabled.
func (s Set) With(k Kind) Set {
	return s | (1 << uint(k))
}

// Without returns a copy of the set with k disabled.
func (s Set) Without(k Kind) Set {
	return s &^ (1 << uint(k))
}

// Options configures one Process invocation. Use DefaultOptions as the
// starting point; the zero value runs no extras at all (the pipeline still
// stashes, harvests tables, and anchors headings).
type Options struct {
	// Enabled is the set of extras to run. Disabling an extra makes its
	// syntax pass through unmodified as literal text.
	Enabled Set

	// TOCDepth is the default maximum heading level included by [TOC]
	// markers that do not carry their own depth. Zero means unlimited.
	TOCDepth int
}

// DefaultOptions enables every built-in extra with no TOC depth limit.
func DefaultOptions() Options {
	return Options{Enabled: AllExtras()}
}

// Heading is one document heading discovered while rewriting.
type Heading struct {
	Text   string // heading text as written, marker stripped
	Level  int    // 1..6
	Anchor string // deterministic anchor id, collision-disambiguated
}

// Diagram is one extracted diagram fence, handed to the caller for
// rasterization. The body is the raw fence content, untouched.
type Diagram struct {
	Lang string
	Body string
}

// Result is the outcome of one pipeline run. The conversion never fails as
// a whole: malformed constructs degrade into visible inline markers and are
// reported through Errors.
type Result struct {
	Markup   string
	Headings []Heading
	Diagrams []Diagram
	Errors   []error
}
