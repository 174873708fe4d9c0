package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/a11yscan/a11yscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail (element snippets) in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeCategories(&sb, report)
	w.writeFindings(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      ACCESSIBILITY AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Document:         %s\n", report.Document))
	sb.WriteString(fmt.Sprintf("Scan Date:        %s\n", report.ScannedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elements Scanned: %d\n", report.ElementsScanned))
	sb.WriteString(fmt.Sprintf("Status:           %s\n", statusText(report)))
	sb.WriteString("\n")
}

// statusText renders the session outcome for display.
func statusText(report *model.AuditReport) string {
	switch report.SessionState {
	case model.StateCompleted.String():
		return "Complete"
	case model.StateTimedOut.String():
		return "TIMED OUT (partial results)"
	case model.StateIdle.String():
		return "CANCELLED (partial results)"
	default:
		return report.SessionState
	}
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  ERRORS:   %d\n", report.ErrorCount))
	sb.WriteString(fmt.Sprintf("  WARNINGS: %d\n", report.WarningCount))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:    %d findings\n", report.Total()))
	sb.WriteString("\n")
}

// writeCategories writes the per-category breakdown.
func (w *SimpleWriter) writeCategories(sb *strings.Builder, report *model.AuditReport) {
	if len(report.CategoryCounts) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS BY CATEGORY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.CategoryCounts) == 0 {
		sb.WriteString("  No findings\n")
	} else {
		for _, cat := range model.Categories() {
			count, ok := report.CategoryCounts[cat]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("  [+] %-12s %d\n", cat, count))
		}
	}
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.AuditReport) {
	if report.Total() == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, severity := range []model.Severity{model.SeverityError, model.SeverityWarning} {
		findings := findingsBySeverity(report, severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}
		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *SimpleWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	sb.WriteString(fmt.Sprintf("[%s] %s\n", severityIndicator(severity), severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Message))
		sb.WriteString(fmt.Sprintf("    Rule:     %s (%s)\n", finding.Type, finding.Category))
		if finding.Location != "" {
			sb.WriteString(fmt.Sprintf("    Location: %s\n", finding.Location))
		}
		if w.verbose && finding.Snippet != "" {
			sb.WriteString(fmt.Sprintf("    Snippet:  %s\n", finding.Snippet))
		}
	}
	sb.WriteString("\n")
}

// severityIndicator returns a visual indicator for the severity level.
func severityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityError:
		return "!!"
	case model.SeverityWarning:
		return "!"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by a11yscan\n")
	sb.WriteString("https://github.com/a11yscan/a11yscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// findingsBySeverity filters the report's findings to one severity,
// preserving detection order.
func findingsBySeverity(report *model.AuditReport, severity model.Severity) []model.Finding {
	var out []model.Finding
	for _, f := range report.Findings {
		if f.Severity == severity {
			out = append(out, f)
		}
	}
	return out
}
