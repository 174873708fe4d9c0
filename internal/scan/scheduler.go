package scan

import (
	"context"
	"log/slog"
	"time"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/overlay"
	"github.com/a11yscan/a11yscan/internal/rules"
)

// ProgressFunc receives progress updates at chunk boundaries. percent
// is 0-100; the whole-document pass occupies the first ten percent and
// the element traversal the band from ten to ninety.
type ProgressFunc func(sessionID string, percent int, state model.SessionState)

// Scheduler walks the element list in chunks, evaluating the rule
// catalog against each element and handing findings to the annotation
// manager. A chunk ends when either the element count or the time
// budget is exhausted; cancel requests and the wall-clock deadline are
// only observed at chunk boundaries, so the chunk in flight always
// completes and its findings are retained.
type Scheduler struct {
	catalog  *rules.Catalog
	manager  *overlay.Manager
	cfg      config.ScanConfig
	clock    Clock
	yielder  Yielder
	logger   *slog.Logger
	progress ProgressFunc
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerClock overrides the scheduler's time source.
func WithSchedulerClock(clock Clock) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithYielder overrides the chunk-boundary yielder.
func WithYielder(y Yielder) SchedulerOption {
	return func(s *Scheduler) {
		s.yielder = y
	}
}

// WithSchedulerLogger sets the diagnostics logger.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) SchedulerOption {
	return func(s *Scheduler) {
		s.progress = fn
	}
}

// NewScheduler creates a scheduler bound to one catalog, one manager,
// and one budget snapshot.
func NewScheduler(catalog *rules.Catalog, manager *overlay.Manager, cfg config.ScanConfig, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		catalog: catalog,
		manager: manager,
		cfg:     cfg,
		clock:   time.Now,
		yielder: NewCooperativeYielder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run executes one scan session over the document. The session must be
// Idle; on return it is in one of its terminal shapes: Completed,
// TimedOut, or back to Idle after a cancel. Run returns an error only
// for an invalid session handoff or a cancelled context; budget
// exhaustion is a session outcome, not an error.
func (s *Scheduler) Run(ctx context.Context, session *model.ScanSession, doc *dom.Document) error {
	if err := session.To(model.StateRunning); err != nil {
		return err
	}
	deadline := session.StartTime.Add(s.cfg.MaxDuration())

	s.report(session, 5)

	// Whole-document checks run once, before any element is visited,
	// so a document-level finding survives even a first-chunk timeout.
	for _, f := range s.catalog.EvaluateDocument(doc) {
		s.manager.Create(f)
	}
	s.report(session, 10)

	elements := doc.Elements()
	session.Total = len(elements)

	i := 0
	for i < len(elements) {
		chunkEnd := s.clock().Add(s.cfg.ChunkBudget())
		for n := 0; i < len(elements) && n < s.cfg.ChunkSize && s.clock().Before(chunkEnd); n++ {
			e := elements[i]
			i++
			if !session.MarkVisited(e.Path()) {
				continue
			}
			s.evaluate(e)
			session.Processed++
		}

		s.report(session, traversalPercent(session))

		if s.clock().After(deadline) {
			s.logger.Warn("scan session exceeded wall-clock budget, finalizing with partial results",
				"session_id", session.ID, "processed", session.Processed, "total", session.Total)
			if err := session.To(model.StateTimedOut); err != nil {
				return err
			}
			s.report(session, traversalPercent(session))
			return nil
		}
		if session.CancelRequested() {
			return s.windDown(session)
		}
		if err := s.yielder.Yield(ctx); err != nil {
			if werr := s.windDown(session); werr != nil {
				return werr
			}
			return err
		}
	}

	if err := session.To(model.StateCompleted); err != nil {
		return err
	}
	s.report(session, 100)
	return nil
}

// windDown takes the session through Cancelling back to Idle.
func (s *Scheduler) windDown(session *model.ScanSession) error {
	s.logger.Info("scan session cancelled",
		"session_id", session.ID, "processed", session.Processed, "total", session.Total)
	if err := session.To(model.StateCancelling); err != nil {
		return err
	}
	if err := session.To(model.StateIdle); err != nil {
		return err
	}
	s.report(session, traversalPercent(session))
	return nil
}

// evaluate runs the catalog against one element. A panicking checker
// loses that element's findings but never the session: the panic is
// logged and traversal continues with the next element.
func (s *Scheduler) evaluate(e *dom.Element) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("checker panic, skipping element", "path", e.Path(), "panic", r)
		}
	}()
	for _, f := range s.catalog.Evaluate(e) {
		s.manager.Create(f)
	}
}

// traversalPercent maps element progress onto the 10-90 band.
func traversalPercent(session *model.ScanSession) int {
	if session.Total == 0 {
		return 90
	}
	return 10 + 80*session.Processed/session.Total
}

// report invokes the progress callback if one is registered.
func (s *Scheduler) report(session *model.ScanSession, percent int) {
	if s.progress != nil {
		s.progress(session.ID, percent, session.State())
	}
}
