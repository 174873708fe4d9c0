package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a11yscan/a11yscan/internal/model"
)

const testPage = `<body><main><img src="hero.png" width="100" height="60"><a href="#">click here</a></main></body>`

// writeTestPage writes a fixture document and returns its path.
func writeTestPage(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan [file...]" {
			t.Errorf("expected use 'scan [file...]', got %q", cmd.Use)
		}
	})

	t.Run("has report flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "markdown", "output", "show-errors", "show-warnings"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("has budget flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"max-duration", "chunk-size", "batch", "config"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestRunScanCmd tests the scan command execution.
func TestRunScanCmd(t *testing.T) {
	t.Parallel()

	t.Run("text report to stdout", func(t *testing.T) {
		t.Parallel()

		page := writeTestPage(t, "page.html", testPage)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"scan", page})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		if !strings.Contains(output, "ACCESSIBILITY AUDIT REPORT") {
			t.Error("expected text report header")
		}
		if !strings.Contains(output, "image has no alt attribute") {
			t.Error("expected the missing-alt finding")
		}
	})

	t.Run("json report is machine readable", func(t *testing.T) {
		t.Parallel()

		page := writeTestPage(t, "page.html", testPage)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"scan", "--json", page})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rep model.AuditReport
		if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if rep.Document != page {
			t.Errorf("document = %q, want %q", rep.Document, page)
		}
		if rep.ErrorCount == 0 {
			t.Error("expected at least one error finding")
		}
	})

	t.Run("json and markdown are mutually exclusive", func(t *testing.T) {
		t.Parallel()

		page := writeTestPage(t, "page.html", testPage)

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"scan", "--json", "--markdown", page})

		if err := cmd.Execute(); err == nil {
			t.Error("expected mutual-exclusion error")
		}
	})

	t.Run("missing file surfaces as an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"scan", filepath.Join(t.TempDir(), "gone.html")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing document")
		}
	})

	t.Run("output flag writes formatted report to file", func(t *testing.T) {
		t.Parallel()

		page := writeTestPage(t, "page.html", testPage)
		reportPath := filepath.Join(t.TempDir(), "out", "report.md")

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"scan", "--markdown", "-o", reportPath, page})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(reportPath) //nolint:gosec // Test-controlled path
		if err != nil {
			t.Fatalf("report file not written: %v", err)
		}
		if !strings.Contains(string(data), "# Accessibility Audit Report") {
			t.Error("expected markdown report in the output file")
		}
		// The terminal still gets a plain summary.
		if !strings.Contains(out.String(), "ACCESSIBILITY AUDIT REPORT") {
			t.Error("expected text summary on stdout")
		}
	})

	t.Run("batch mode scans all documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		for _, name := range []string{"a.html", "b.html"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(testPage), 0o600); err != nil {
				t.Fatal(err)
			}
		}

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"scan", "-b", "2", filepath.Join(dir, "a.html"), filepath.Join(dir, "b.html")})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Count(out.String(), "ACCESSIBILITY AUDIT REPORT"); got != 2 {
			t.Errorf("expected 2 reports, got %d", got)
		}
	})

	t.Run("suppressed severities are dropped from the report", func(t *testing.T) {
		t.Parallel()

		page := writeTestPage(t, "page.html",
			`<body><main><img src="x.png" width="10" height="10"><div tabindex="1" style="width:10px;height:10px">x</div></main></body>`)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"scan", "--json", "--show-warnings=false", page})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rep model.AuditReport
		if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if rep.WarningCount != 0 {
			t.Errorf("warnings should be suppressed, got %d", rep.WarningCount)
		}
		if rep.ErrorCount == 0 {
			t.Error("errors should still be reported")
		}
	})
}

// TestExpandTargets tests glob expansion of positional arguments.
func TestExpandTargets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.html", "b.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<body></body>"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("globs expand to matches", func(t *testing.T) {
		t.Parallel()

		targets, err := expandTargets([]string{filepath.Join(dir, "*.html")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(targets) != 2 {
			t.Errorf("expected 2 targets, got %d", len(targets))
		}
	})

	t.Run("plain paths pass through", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(dir, "missing.html")
		targets, err := expandTargets([]string{missing})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(targets) != 1 || targets[0] != missing {
			t.Errorf("targets = %v", targets)
		}
	})

	t.Run("empty glob match is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := expandTargets([]string{filepath.Join(dir, "*.xml")}); err == nil {
			t.Error("expected error for pattern with no matches")
		}
	})
}
