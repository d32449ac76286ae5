package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"default", "code"} {
		css, err := LoadStyle(name)
		if err != nil {
			t.Fatalf("LoadStyle(%q) error: %v", name, err)
		}
		if css == "" {
			t.Errorf("LoadStyle(%q) returned empty stylesheet", name)
		}
	}
}

func TestLoadStyleNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadStyle("nonexistent")
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("error = %v, want ErrStyleNotFound", err)
	}
}

func TestLoadStyleRejectsInvalidNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "../default", `..\default`, "default.css", ".hidden", "sub/dir"} {
		if _, err := LoadStyle(name); !errors.Is(err, ErrInvalidStyleName) {
			t.Errorf("LoadStyle(%q) error = %v, want ErrInvalidStyleName", name, err)
		}
	}
}

func TestDefaultCSSDefinesPipelineClasses(t *testing.T) {
	t.Parallel()

	css := DefaultCSS()
	for _, class := range []string{
		".admonition",
		".extra-error",
		".query-result",
		".toc",
		".page-break",
		".figure",
		".caption",
		".mermaid",
	} {
		if !strings.Contains(css, class) {
			t.Errorf("default stylesheet missing %s rule", class)
		}
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["default"] || !found["code"] {
		t.Errorf("StyleNames() = %v, want default and code present", names)
	}
}
