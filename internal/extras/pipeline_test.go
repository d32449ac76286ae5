package extras

import (
	"errors"
	"strings"
	"testing"
)

const reportDoc = "# Report\n\n" +
	"[TOC depth=2]\n\n" +
	"| item   | price | qty |\n" +
	"|--------|-------|-----|\n" +
	"| Apple  | 1     | 10  |\n" +
	"| Banana | 2     | 20  |\n" +
	"| Orange | 3     | 30  |\n\n" +
	"> [sales] Q3\n\n" +
	"Average price: [query: SELECT avg(price) FROM sales].\n\n" +
	"```mermaid\ngraph TD\n```\n\n" +
	"```\n$E=mc^2$ and [query: SELECT * FROM sales]\n```\n\n" +
	"---\n\n---\n\n" +
	".. warning::\n   Be careful.\n"

func TestProcessFullDocument(t *testing.T) {
	res := Process(reportDoc, DefaultOptions())

	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	if !strings.Contains(res.Markup, "Average price: 2.00.") {
		t.Errorf("scalar query not substituted:\n%s", res.Markup)
	}
	if strings.Contains(res.Markup, "[sales]") {
		t.Errorf("table annotation survived:\n%s", res.Markup)
	}
	if !strings.Contains(res.Markup, "| Apple  | 1     | 10  |") {
		t.Errorf("source table must remain for rendering:\n%s", res.Markup)
	}

	if len(res.Diagrams) != 1 || res.Diagrams[0].Lang != "mermaid" {
		t.Errorf("Diagrams = %v, want one mermaid entry", res.Diagrams)
	}
	if !strings.Contains(res.Markup, "<div class=\"mermaid\">\ngraph TD\n</div>") {
		t.Errorf("mermaid container missing:\n%s", res.Markup)
	}

	// Fenced content stays verbatim, never processed.
	if !strings.Contains(res.Markup, "$E=mc^2$ and [query: SELECT * FROM sales]") {
		t.Errorf("fenced content was rewritten:\n%s", res.Markup)
	}

	if !strings.Contains(res.Markup, `<div class="page-break"></div>`) {
		t.Errorf("double rule not collapsed into a page break:\n%s", res.Markup)
	}
	if !strings.Contains(res.Markup, `<div class="admonition warning">`) {
		t.Errorf("admonition missing:\n%s", res.Markup)
	}

	if len(res.Headings) == 0 || res.Headings[0] != (Heading{Text: "Report", Level: 1, Anchor: "report"}) {
		t.Errorf("Headings = %v, want Report first", res.Headings)
	}
	if !strings.Contains(res.Markup, `href="#report"`) {
		t.Errorf("TOC entry missing:\n%s", res.Markup)
	}
}

func TestProcessRowSetQuery(t *testing.T) {
	src := "| item   | price | qty |\n" +
		"|--------|-------|-----|\n" +
		"| Apple  | 1     | 10  |\n" +
		"| Banana | 2     | 20  |\n" +
		"| Orange | 3     | 30  |\n\n" +
		"> [sales]\n\n" +
		"[query: SELECT * FROM sales WHERE price > 1 ORDER BY price DESC]\n"

	res := Process(src, DefaultOptions())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	if !strings.Contains(res.Markup, `<table class="query-result">`) {
		t.Errorf("row set did not expand into a table:\n%s", res.Markup)
	}
	orange := strings.Index(res.Markup, "<td>Orange</td>")
	banana := strings.Index(res.Markup, "<td>Banana</td>")
	if orange < 0 || banana < 0 || orange > banana {
		t.Errorf("rows out of order (want Orange before Banana):\n%s", res.Markup)
	}
	if strings.Contains(res.Markup, "<td>Apple</td>") {
		t.Errorf("filtered row leaked into output:\n%s", res.Markup)
	}
}

func TestProcessQueryErrorIsLocal(t *testing.T) {
	src := "before\n\n[query: SELECT avg(price) FROM unknown_table]\n\nafter\n"

	res := Process(src, DefaultOptions())

	if len(res.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(res.Errors))
	}
	var qerr *QueryError
	if !errors.As(res.Errors[0], &qerr) || qerr.Kind != ErrUnknownTable {
		t.Fatalf("error = %v, want unknown-table QueryError", res.Errors[0])
	}

	if !strings.Contains(res.Markup, `<span class="extra-error">`) {
		t.Errorf("error marker missing:\n%s", res.Markup)
	}
	if !strings.Contains(res.Markup, "before") || !strings.Contains(res.Markup, "after") {
		t.Errorf("surrounding document affected:\n%s", res.Markup)
	}
}

func TestProcessSecondPassStable(t *testing.T) {
	// Re-running over generated markup with every extra disabled must not
	// change it: generated content is immune to re-interpretation.
	first := Process(reportDoc, DefaultOptions())
	second := Process(first.Markup, Options{})

	if second.Markup != first.Markup {
		t.Errorf("second pass altered generated markup:\nfirst  %q\nsecond %q", first.Markup, second.Markup)
	}
}

func TestProcessZeroOptionsPassThrough(t *testing.T) {
	src := "plain text with $math$ and red{{spans}} and [query: SELECT 1]\n"

	res := Process(src, Options{})
	if res.Markup != src {
		t.Errorf("disabled extras must pass syntax through:\ngot  %q\nwant %q", res.Markup, src)
	}
}

func TestProcessZeroOptionsKeepsHeadingLines(t *testing.T) {
	src := "# Intro\n\nbody\n\n## Setup\n"

	res := Process(src, Options{})

	if res.Markup != src {
		t.Errorf("heading lines modified with extras disabled:\ngot  %q\nwant %q", res.Markup, src)
	}
	// Headings are still harvested for the result listing.
	if len(res.Headings) != 2 || res.Headings[0].Anchor != "intro" {
		t.Errorf("Headings = %+v, want intro and setup", res.Headings)
	}
}

func TestProcessDuplicateTableWarning(t *testing.T) {
	src := "| a |\n|---|\n| 1 |\n\n> [t]\n\n| a |\n|---|\n| 2 |\n\n> [t]\n\n[query: SELECT a FROM t]\n"

	res := Process(src, DefaultOptions())

	var dup *DuplicateTableError
	found := false
	for _, err := range res.Errors {
		if errors.As(err, &dup) {
			found = true
		}
	}
	if !found {
		t.Fatalf("Errors = %v, want a DuplicateTableError warning", res.Errors)
	}
	// Last definition wins.
	if !strings.Contains(res.Markup, "<td>2</td>") {
		t.Errorf("query did not see the last definition:\n%s", res.Markup)
	}
}

func TestProcessNegativeTOCDepthClamped(t *testing.T) {
	src := "[TOC]\n\n# A\n\n## B\n"
	res := Process(src, Options{Enabled: Set(0).With(KindTOC), TOCDepth: -5})

	if !strings.Contains(res.Markup, `href="#b"`) {
		t.Errorf("negative depth must behave as unlimited:\n%s", res.Markup)
	}
}
