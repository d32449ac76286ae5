package main

import "testing"

func TestParseConvertFlags(t *testing.T) {
	args := []string{
		"doc.md",
		"-o", "out",
		"--page-size", "a4",
		"--orientation", "landscape",
		"--margin", "1.0",
		"--disable", "math,diagrams",
		"--toc-depth", "3",
		"--style", "dark",
		"--css", "extra.css",
		"--timeout", "45s",
		"-w", "4",
		"--html",
		"--watch",
		"-v",
	}

	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		t.Fatalf("parseConvertFlags error: %v", err)
	}

	if len(positional) != 1 || positional[0] != "doc.md" {
		t.Errorf("positional = %v", positional)
	}
	if flags.output != "out" || flags.workers != 4 || flags.timeout != "45s" {
		t.Errorf("io flags = %q/%d/%q", flags.output, flags.workers, flags.timeout)
	}
	if flags.page.size != "a4" || flags.page.orientation != "landscape" || flags.page.margin != 1.0 {
		t.Errorf("page = %+v", flags.page)
	}
	if len(flags.extras.disable) != 2 || flags.extras.tocDepth != 3 {
		t.Errorf("extras = %+v", flags.extras)
	}
	if flags.style.style != "dark" || flags.style.extend != "extra.css" {
		t.Errorf("style = %+v", flags.style)
	}
	if !flags.htmlOnly || !flags.watch || !flags.common.verbose {
		t.Errorf("bool flags = %v/%v/%v", flags.htmlOnly, flags.watch, flags.common.verbose)
	}
}

func TestParseConvertFlagsDefaults(t *testing.T) {
	flags, positional, err := parseConvertFlags([]string{"doc.md"})
	if err != nil {
		t.Fatalf("parseConvertFlags error: %v", err)
	}

	if len(positional) != 1 {
		t.Errorf("positional = %v", positional)
	}
	if flags.workers != 0 || flags.extras.tocDepth != 0 || flags.page.margin != 0 {
		t.Errorf("defaults not zero: %+v", flags)
	}
	if flags.watch || flags.htmlOnly || flags.common.quiet {
		t.Errorf("bool defaults not false: %+v", flags)
	}
}

func TestParseConvertFlagsUnknown(t *testing.T) {
	if _, _, err := parseConvertFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
