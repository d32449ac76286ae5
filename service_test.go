package mdpress

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockPDFConverter records the HTML handed to it without launching a browser.
type mockPDFConverter struct {
	called bool
	html   string
	page   *PageSettings
	err    error
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	m.called = true
	m.html = htmlContent
	m.page = page
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-fake"), nil
}

func (m *mockPDFConverter) Close() error { return nil }

func newTestService(mock *mockPDFConverter) *Service {
	s := New()
	s.pdfConverter = mock
	return s
}

func TestConvertValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:    "empty markdown",
			input:   Input{},
			wantErr: ErrEmptyMarkdown,
		},
		{
			name:    "invalid page size",
			input:   Input{Markdown: "# x", Page: &PageSettings{Size: "nope", Orientation: "portrait", Margin: 0.5}},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "unknown extra",
			input:   Input{Markdown: "# x", DisableExtras: []string{"sparkles"}},
			wantErr: ErrUnknownExtra,
		},
		{
			name:    "toc depth out of range",
			input:   Input{Markdown: "# x", TOCDepth: 7},
			wantErr: ErrInvalidTOCDepth,
		},
	}

	svc := newTestService(&mockPDFConverter{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvertHTMLOnly(t *testing.T) {
	mock := &mockPDFConverter{}
	svc := newTestService(mock)

	res, err := svc.Convert(context.Background(), Input{
		Markdown: "# Report\n\nAverage: [query: SELECT avg(price) FROM sales]\n\n" +
			"| item | price |\n|------|-------|\n| a    | 1     |\n| b    | 3     |\n\n> [sales]\n",
		HTMLOnly: true,
	})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}

	if res.PDF != nil {
		t.Error("HTMLOnly result must not carry PDF bytes")
	}
	if mock.called {
		t.Error("PDF converter must not run for HTMLOnly")
	}
	if !strings.Contains(res.HTML, "<title>Report</title>") {
		t.Errorf("title not derived from first heading:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, "Average: 2.00") {
		t.Errorf("query not substituted:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, `id="report"`) {
		t.Errorf("heading anchor missing:\n%s", res.HTML)
	}
	if len(res.Headings) != 1 || res.Headings[0].Anchor != "report" {
		t.Errorf("Headings = %v, want one report entry", res.Headings)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestConvertProducesPDF(t *testing.T) {
	mock := &mockPDFConverter{}
	svc := newTestService(mock)

	page := &PageSettings{Size: "a4", Orientation: "landscape", Margin: 1.0}
	res, err := svc.Convert(context.Background(), Input{Markdown: "# Hi", Page: page})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}

	if !mock.called {
		t.Fatal("PDF converter was not invoked")
	}
	if mock.page != page {
		t.Errorf("page settings not forwarded: %+v", mock.page)
	}
	if len(res.PDF) == 0 {
		t.Error("result missing PDF bytes")
	}
	if res.HTML == "" || mock.html != res.HTML {
		t.Error("PDF input must be the assembled HTML")
	}
}

func TestConvertCollectsWarnings(t *testing.T) {
	svc := newTestService(&mockPDFConverter{})

	res, err := svc.Convert(context.Background(), Input{
		Markdown: "[query: SELECT x FROM missing]",
		HTMLOnly: true,
	})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}

	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], `unknown table "missing"`) {
		t.Errorf("Warnings = %v, want unknown table warning", res.Warnings)
	}
	if !strings.Contains(res.HTML, "extra-error") {
		t.Errorf("error marker missing from output:\n%s", res.HTML)
	}
}

func TestConvertDisableExtras(t *testing.T) {
	svc := newTestService(&mockPDFConverter{})

	res, err := svc.Convert(context.Background(), Input{
		Markdown:      "value: $x+y$",
		DisableExtras: []string{"math"},
		HTMLOnly:      true,
	})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if strings.Contains(res.HTML, "math-inline") {
		t.Errorf("disabled math extra still ran:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, "$x+y$") {
		t.Errorf("disabled syntax must pass through:\n%s", res.HTML)
	}
}

func TestConvertMermaidScriptInjection(t *testing.T) {
	svc := newTestService(&mockPDFConverter{})

	res, err := svc.Convert(context.Background(), Input{
		Markdown: "```mermaid\ngraph TD\n```\n",
		HTMLOnly: true,
	})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(res.HTML, "mermaid.initialize") {
		t.Errorf("mermaid script not injected:\n%s", res.HTML)
	}
}

func TestConvertPDFFailure(t *testing.T) {
	mock := &mockPDFConverter{err: ErrPDFGeneration}
	svc := newTestService(mock)

	_, err := svc.Convert(context.Background(), Input{Markdown: "# x"})
	if !errors.Is(err, ErrPDFGeneration) {
		t.Errorf("Convert() error = %v, want ErrPDFGeneration", err)
	}
}

func TestConvertCanceledContext(t *testing.T) {
	svc := newTestService(&mockPDFConverter{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Convert(ctx, Input{Markdown: "# x"}); err == nil {
		t.Error("expected error for canceled context")
	}
}
