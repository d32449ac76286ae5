package extras

import (
	"strings"
	"testing"
)

func TestConvertInlineMath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple expression",
			in:   "Einstein: $E=mc^2$ done",
			want: `Einstein: <span class="math math-inline">\(E=mc^2\)</span> done`,
		},
		{
			name: "currency amount left alone",
			in:   "it costs $5$ here",
			want: "it costs $5$ here",
		},
		{
			name: "two prices left alone",
			in:   "between $5 and $10 total",
			want: "between $5 and $10 total",
		},
		{
			name: "space after opener rejects",
			in:   "a $ b$ c",
			want: "a $ b$ c",
		},
		{
			name: "space before closer rejects",
			in:   "a $b $ c",
			want: "a $b $ c",
		},
		{
			name: "escaped dollar stays literal",
			in:   `costs \$20 today`,
			want: `costs \$20 today`,
		},
		{
			name: "unterminated stays literal",
			in:   "half $open only",
			want: "half $open only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertMath(tt.in); got != tt.want {
				t.Errorf("convertMath(%q):\ngot  %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertDisplayMath(t *testing.T) {
	in := "before\n$$\nx = y + 1\n$$\nafter"
	got := convertMath(in)

	if !strings.Contains(got, `<div class="math math-display">\[x = y + 1\]</div>`) {
		t.Errorf("display block not converted:\n%s", got)
	}
	if strings.Contains(got, "$$") {
		t.Errorf("delimiters survived:\n%s", got)
	}
}

func TestConvertMathEscapesMarkdownCharacters(t *testing.T) {
	got := convertMath("$x_i * y$")

	if strings.Contains(got, "x_i") || strings.Contains(got, "* y") {
		t.Errorf("markdown-significant characters must be entity-escaped:\n%s", got)
	}
	if !strings.Contains(got, "x&#95;i") {
		t.Errorf("underscore not escaped:\n%s", got)
	}
}

func TestConvertMathEmptyDisplayBlock(t *testing.T) {
	in := "a $$$$ b"
	if got := convertMath(in); got != in {
		t.Errorf("empty display block must stay literal: got %q", got)
	}
}
