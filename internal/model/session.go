package model

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a scan session.
type SessionState int

const (
	// StateIdle means no traversal is in progress. Sessions start and,
	// after a cancel is honored, end in this state.
	StateIdle SessionState = iota

	// StateRunning means the session owns the traversal and is producing
	// findings.
	StateRunning

	// StateCancelling means a cancel request has been observed and the
	// session is winding down; no further elements are processed.
	StateCancelling

	// StateCompleted means traversal exhausted the tree naturally.
	StateCompleted

	// StateTimedOut means the wall-clock budget elapsed and the session
	// was force-finalized with partial results. This is a degraded but
	// successful outcome, not an error.
	StateTimedOut
)

// String returns a human-readable representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCancelling:
		return "cancelling"
	case StateCompleted:
		return "completed"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a session state change does not
// follow the machine Idle -> Running -> {Completed, TimedOut,
// Cancelling -> Idle}.
var ErrInvalidTransition = errors.New("invalid session state transition")

// validTransitions encodes the session state machine. Terminal states
// (Completed, TimedOut) have no successors; a new trigger creates a new
// session instead of reviving an old one.
var validTransitions = map[SessionState][]SessionState{
	StateIdle:       {StateRunning},
	StateRunning:    {StateCompleted, StateTimedOut, StateCancelling},
	StateCancelling: {StateIdle},
}

// ScanSession is one traversal run. It owns the visited set, the
// progress counters, and the cooperative cancel flag. Exactly one
// session may be Running system-wide; the concurrency guard enforces
// that before a session is ever created.
type ScanSession struct {
	// ID uniquely identifies the session in logs and progress updates.
	ID string

	// StartTime is when the session was created, recorded for cooldown
	// and timeout accounting.
	StartTime time.Time

	// Processed and Total drive progress reporting. Total is fixed after
	// the traversal plan is built; Processed grows per element.
	Processed int
	Total     int

	state   SessionState
	visited map[string]struct{}

	// cancel is set by RequestCancel, possibly from another goroutine,
	// and observed by the scheduler at chunk boundaries only.
	cancel atomic.Bool
}

// NewScanSession creates a session in the Idle state with an empty
// visited set.
func NewScanSession(now time.Time) *ScanSession {
	return &ScanSession{
		ID:        uuid.NewString(),
		StartTime: now,
		state:     StateIdle,
		visited:   make(map[string]struct{}),
	}
}

// State returns the current lifecycle state.
func (s *ScanSession) State() SessionState {
	return s.state
}

// To transitions the session to the next state, returning
// ErrInvalidTransition if the state machine forbids it.
func (s *ScanSession) To(next SessionState) error {
	for _, allowed := range validTransitions[s.state] {
		if allowed == next {
			s.state = next
			return nil
		}
	}
	return ErrInvalidTransition
}

// MarkVisited records the element path in the visited set and reports
// whether it was newly added. A false return means the element was
// already evaluated this session and must be skipped, independent of
// chunk boundary placement.
func (s *ScanSession) MarkVisited(path string) bool {
	if _, ok := s.visited[path]; ok {
		return false
	}
	s.visited[path] = struct{}{}
	return true
}

// VisitedCount returns the number of distinct elements evaluated so far.
func (s *ScanSession) VisitedCount() int {
	return len(s.visited)
}

// RequestCancel flags the session for cooperative cancellation. The
// scheduler honors the flag at the next chunk boundary; findings from
// the chunk already in flight are retained.
func (s *ScanSession) RequestCancel() {
	s.cancel.Store(true)
}

// CancelRequested reports whether a cancel has been requested.
func (s *ScanSession) CancelRequested() bool {
	return s.cancel.Load()
}
