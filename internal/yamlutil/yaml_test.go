package yamlutil_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mkoster/mdpress/internal/yamlutil"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshal(t *testing.T) {
	var s sample
	if err := yamlutil.Unmarshal([]byte("name: doc\ncount: 3\n"), &s); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if s.Name != "doc" || s.Count != 3 {
		t.Errorf("decoded = %+v", s)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	var s sample
	if err := yamlutil.Unmarshal([]byte("name: doc\nextra: true\n"), &s); err != nil {
		t.Errorf("Unmarshal should ignore unknown fields, got %v", err)
	}
}

func TestUnmarshalStrictRejectsUnknownFields(t *testing.T) {
	var s sample
	if err := yamlutil.UnmarshalStrict([]byte("name: doc\nextra: true\n"), &s); err == nil {
		t.Error("UnmarshalStrict should reject unknown fields")
	}
}

func TestUnmarshalValidation(t *testing.T) {
	var s sample

	if err := yamlutil.Unmarshal(nil, &s); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("nil data: error = %v, want ErrNilData", err)
	}
	if err := yamlutil.Unmarshal([]byte("name: x"), nil); !errors.Is(err, yamlutil.ErrNilDestination) {
		t.Errorf("nil dest: error = %v, want ErrNilDestination", err)
	}

	big := bytes.Repeat([]byte("a"), yamlutil.MaxInputSize+1)
	if err := yamlutil.Unmarshal(big, &s); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("oversized: error = %v, want ErrInputTooLarge", err)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	var s sample
	if err := yamlutil.Unmarshal([]byte(":\n:::"), &s); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
