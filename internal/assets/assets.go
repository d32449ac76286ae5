// Package assets provides the embedded CSS stylesheets for document
// rendering: the base document style and the chroma code highlighting
// palette, plus named alternative styles selectable from configuration.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// LoadStyle loads a CSS stylesheet by name (without the .css extension).
// Returns ErrStyleNotFound if the style does not exist and
// ErrInvalidStyleName if the name contains path separators or dots.
func LoadStyle(name string) (string, error) {
	if err := validateStyleName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// DefaultCSS returns the base document stylesheet. It defines the layout
// classes the conversion pipeline emits (admonitions, spans, query result
// tables, TOC lists, figures, page breaks).
func DefaultCSS() string {
	return mustLoad("default")
}

// CodeCSS returns the syntax highlighting palette matching the chroma
// classes emitted for fenced code blocks.
func CodeCSS() string {
	return mustLoad("code")
}

// StyleNames lists the embedded style names, sorted.
func StyleNames() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

// validateStyleName rejects names that could escape the styles directory
// or smuggle in a different extension. Dots are disallowed entirely, so
// both traversal (..) and "style.css.bak" tricks fail the same check.
func validateStyleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStyleName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidStyleName, name)
	}
	return nil
}

// mustLoad reads an embedded stylesheet that is known to exist.
// Panics on failure (programmer error: the file is compiled in).
func mustLoad(name string) string {
	content, err := LoadStyle(name)
	if err != nil {
		panic("assets: missing embedded style: " + err.Error())
	}
	return content
}
