package model

import "sync"

// FindingLog is the ordered, append-only collection of findings for the
// active session. Appends assign sequential IDs; the only destructive
// operation is Clear, which the annotation manager invokes atomically
// with marker destruction.
//
// The log is owned by one session at a time (the concurrency guard makes
// two owners impossible), but reads may come from another goroutine
// (report writers, progress displays), so access is synchronized.
type FindingLog struct {
	mu       sync.Mutex
	findings []Finding
}

// NewFindingLog creates an empty finding log.
func NewFindingLog() *FindingLog {
	return &FindingLog{findings: make([]Finding, 0)}
}

// Append adds a finding to the log, assigning its ID, and returns the
// stored copy.
func (l *FindingLog) Append(f Finding) Finding {
	l.mu.Lock()
	defer l.mu.Unlock()
	f.ID = len(l.findings) + 1
	l.findings = append(l.findings, f)
	return f
}

// Len returns the number of findings currently in the log.
func (l *FindingLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.findings)
}

// Snapshot returns a copy of the log in append order. Mutating the
// returned slice does not affect the log.
func (l *FindingLog) Snapshot() []Finding {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Finding, len(l.findings))
	copy(out, l.findings)
	return out
}

// Clear empties the log. IDs restart from 1 on the next append.
func (l *FindingLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.findings = l.findings[:0]
}
