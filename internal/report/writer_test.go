package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/a11yscan/a11yscan/internal/model"
)

// createTestReport creates a report with sample findings for testing.
func createTestReport() *model.AuditReport {
	findings := []model.Finding{
		{
			ID:           1,
			Type:         "missing-alt",
			Category:     model.CategoryImages,
			Severity:     model.SeverityError,
			SeverityText: model.SeverityError.String(),
			Message:      "image has no alt attribute",
			Location:     "div[1]/img[1]",
			Snippet:      "img src=hero.png",
		},
		{
			ID:           2,
			Type:         "empty-link",
			Category:     model.CategoryLinks,
			Severity:     model.SeverityError,
			SeverityText: model.SeverityError.String(),
			Message:      "link has no accessible content",
			Location:     "nav[1]/a[3]",
		},
		{
			ID:           3,
			Type:         "positive-tabindex",
			Category:     model.CategoryARIA,
			Severity:     model.SeverityWarning,
			SeverityText: model.SeverityWarning.String(),
			Message:      "non-interactive element is in the tab order",
			Location:     "div[2]/span[1]",
		},
	}
	return model.NewAuditReport("page.html", model.StateCompleted, 42, findings)
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "ACCESSIBILITY AUDIT REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "page.html") {
			t.Error("expected output to contain the document name")
		}
		if !strings.Contains(output, "Status:           Complete") {
			t.Error("expected completed status line")
		}
	})

	t.Run("writes severity summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "ERRORS:   2") {
			t.Error("expected error count in summary")
		}
		if !strings.Contains(output, "WARNINGS: 1") {
			t.Error("expected warning count in summary")
		}
		if !strings.Contains(output, "TOTAL:    3 findings") {
			t.Error("expected total in summary")
		}
	})

	t.Run("marks timed out sessions as partial", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		report := model.NewAuditReport("slow.html", model.StateTimedOut, 10, nil)

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "TIMED OUT (partial results)") {
			t.Error("expected timed-out status line")
		}
	})

	t.Run("verbose output includes snippets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "img src=hero.png") {
			t.Error("expected verbose output to contain the snippet")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		n, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		var decoded model.AuditReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Document != "page.html" {
			t.Errorf("document = %q, want page.html", decoded.Document)
		}
		if decoded.ErrorCount != 2 || decoded.WarningCount != 1 {
			t.Errorf("counts = %d/%d, want 2/1", decoded.ErrorCount, decoded.WarningCount)
		}
	})

	t.Run("pretty print produces indented output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented JSON output")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Accessibility Audit Report",
			"## Severity Summary",
			"## Findings",
			"missing-alt",
			"`page.html`",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("empty report produces tip alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		report := model.NewAuditReport("clean.html", model.StateCompleted, 5, nil)

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No accessibility issues detected.") {
			t.Error("expected the clean-report tip")
		}
	})
}

// TestMultiWriter tests writing to multiple destinations.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

		if _, err := mw.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected both destinations to receive output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		failing := &failWriter{}
		var buf bytes.Buffer
		mw := NewMultiWriter(failing, NewSimpleWriter(&buf))

		if _, err := mw.Write(createTestReport()); err == nil {
			t.Fatal("expected error from failing writer")
		}
		if buf.Len() != 0 {
			t.Error("writers after the failure must not be invoked")
		}
	})
}

// failWriter always fails, for MultiWriter error-path tests.
type failWriter struct{}

func (f *failWriter) Write(_ *model.AuditReport) (int, error) {
	return 0, errors.New("write failed")
}
