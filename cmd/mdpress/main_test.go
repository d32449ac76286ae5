package main

import (
	"strings"
	"testing"
)

func TestRunVersion(t *testing.T) {
	env, out, _ := newTestEnv()

	if code := run([]string{"mdpress", "version"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(out.String(), "mdpress") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunStyles(t *testing.T) {
	env, out, _ := newTestEnv()

	if code := run([]string{"mdpress", "styles"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	for _, name := range []string{"default", "code"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("styles output %q missing %q", out.String(), name)
		}
	}
}

func TestRunHelp(t *testing.T) {
	env, out, _ := newTestEnv()

	if code := run([]string{"mdpress", "help"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(out.String(), "Commands:") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunHelpConvert(t *testing.T) {
	env, out, _ := newTestEnv()

	if code := run([]string{"mdpress", "help", "convert"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(out.String(), "--toc-depth") {
		t.Errorf("output = %q, want convert usage", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	env, _, errOut := newTestEnv()

	if code := run([]string{"mdpress", "explode"}, env); code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(errOut.String(), "Unknown command: explode") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestRunNoArgs(t *testing.T) {
	env, _, errOut := newTestEnv()

	if code := run([]string{"mdpress"}, env); code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(errOut.String(), "Usage: mdpress") {
		t.Errorf("stderr = %q", errOut.String())
	}
}
