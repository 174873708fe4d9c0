package model

import "time"

// AuditReport is a point-in-time snapshot of a scan's results, consumed
// by the report writers. It is built from a FindingLog snapshot so that
// writing a report never races with, or mutates, the live log.
type AuditReport struct {
	// Document identifies the scanned document (file path or URL).
	Document string `json:"document"`

	// ScannedAt is when the snapshot was taken.
	ScannedAt time.Time `json:"scanned_at"`

	// SessionState is the terminal state of the session that produced
	// the findings (completed, timed_out, cancelled).
	SessionState string `json:"session_state"`

	// ElementsScanned is the number of elements evaluated.
	ElementsScanned int `json:"elements_scanned"`

	// Findings contains all findings in detection order.
	Findings []Finding `json:"findings"`

	// ErrorCount and WarningCount are per-severity totals.
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`

	// CategoryCounts maps each category to its finding count. Categories
	// with zero findings are omitted.
	CategoryCounts map[Category]int `json:"category_counts,omitempty"`
}

// NewAuditReport builds a report from a finding log snapshot, computing
// the per-severity and per-category totals.
func NewAuditReport(document string, state SessionState, scanned int, findings []Finding) *AuditReport {
	r := &AuditReport{
		Document:        document,
		ScannedAt:       time.Now(),
		SessionState:    state.String(),
		ElementsScanned: scanned,
		Findings:        findings,
		CategoryCounts:  make(map[Category]int),
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		}
		r.CategoryCounts[f.Category]++
	}
	return r
}

// Total returns the total number of findings.
func (r *AuditReport) Total() int {
	return len(r.Findings)
}
