package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/a11yscan/a11yscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeCategories(md, report)
	w.writeFindings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Accessibility Audit Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + report.Document + "`"},
			{"Scan Date", report.ScannedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elements Scanned", strconv.Itoa(report.ElementsScanned)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on the session outcome.
func (w *MarkdownWriter) getStatusText(report *model.AuditReport) string {
	switch report.SessionState {
	case model.StateTimedOut.String():
		return "⚠️ Timed Out (partial results)"
	case model.StateIdle.String():
		return "⚠️ Cancelled (partial results)"
	case model.StateCompleted.String():
		return "✅ Complete"
	default:
		return report.SessionState
	}
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Error", strconv.Itoa(report.ErrorCount)},
			{"🟡 Warning", strconv.Itoa(report.WarningCount)},
			{"**Total**", "**" + strconv.Itoa(report.Total()) + "**"},
		},
	})
	md.PlainText("")

	if report.Total() > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the category distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AuditReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Findings by Category"),
		piechart.WithShowData(true),
	)

	for _, cat := range model.Categories() {
		if count := report.CategoryCounts[cat]; count > 0 {
			chart.LabelAndIntValue(string(cat), uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	switch {
	case report.ErrorCount > 0:
		md.Cautionf(
			"Accessibility errors detected! %d error(s) block assistive-technology users.",
			report.ErrorCount,
		)
	case report.WarningCount > 0:
		md.Warningf(
			"Accessibility warnings detected. %d warning(s) should be reviewed.",
			report.WarningCount,
		)
	default:
		md.Tip("No accessibility issues detected.")
	}
	md.PlainText("")
}

// writeCategories writes the per-category breakdown.
func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Categories")
	md.PlainText("")

	if len(report.CategoryCounts) == 0 {
		md.PlainText("No findings in any category.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.CategoryCounts))
	for _, cat := range model.Categories() {
		count, ok := report.CategoryCounts[cat]
		if !ok {
			continue
		}
		rows = append(rows, []string{string(cat), strconv.Itoa(count)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Findings"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Findings")
	md.PlainText("")

	if report.Total() == 0 {
		md.PlainText("No accessibility findings detected.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityError, "### 🔴 Errors"},
		{model.SeverityWarning, "### 🟡 Warnings"},
	}

	for _, sev := range severities {
		findings := findingsBySeverity(report, sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		location := f.Location
		if location == "" {
			location = "-"
		}
		rows[i] = []string{
			f.Type,
			string(f.Category),
			truncateString(f.Message, 60),
			"`" + truncateString(location, 40) + "`",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Category", "Message", "Location"},
		Rows:   rows,
	})
	md.PlainText("")

	// Add the sanitized element snippets as collapsible details.
	for _, f := range findings {
		if f.Snippet != "" {
			md.Details(f.Type+" at "+f.Location, "`"+f.Snippet+"`")
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [a11yscan](https://github.com/a11yscan/a11yscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
