package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/overlay"
	"github.com/a11yscan/a11yscan/internal/rules"
)

// DocumentProvider supplies the live document to scan. Each Trigger
// asks for a fresh document so the traversal sees the current tree,
// not the one from the previous session.
type DocumentProvider interface {
	Document(ctx context.Context) (*dom.Document, error)
}

// DocumentProviderFunc adapts a function to the DocumentProvider
// interface.
type DocumentProviderFunc func(ctx context.Context) (*dom.Document, error)

// Document implements DocumentProvider.
func (f DocumentProviderFunc) Document(ctx context.Context) (*dom.Document, error) {
	return f(ctx)
}

// Engine coordinates one document's scan lifecycle: it resolves the
// configuration, gates triggers through the guard, runs the scheduler,
// and applies the display filter to the resulting annotations. The
// annotation manager and finding log live across sessions; a new
// trigger tears down the previous session's annotations first.
type Engine struct {
	provider DocumentProvider
	loader   *config.Loader
	guard    *Guard
	logger   *slog.Logger
	clock    Clock
	yielder  Yielder
	progress ProgressFunc
	docName  string
	mutate   func(*config.RuleConfig)

	manager *overlay.Manager

	// mu protects session; Cancel may be called from another goroutine
	// while Trigger is running.
	mu      sync.Mutex
	session *model.ScanSession
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the diagnostics logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEngineClock overrides the engine's time source. The guard and the
// scheduler inherit it.
func WithEngineClock(clock Clock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithEngineYielder overrides the scheduler's chunk-boundary yielder.
func WithEngineYielder(y Yielder) EngineOption {
	return func(e *Engine) {
		e.yielder = y
	}
}

// WithEngineProgress registers a progress callback.
func WithEngineProgress(fn ProgressFunc) EngineOption {
	return func(e *Engine) {
		e.progress = fn
	}
}

// WithConfigMutator registers a hook applied to the resolved
// configuration before each session, letting callers override budgets
// or toggles without touching the persisted file.
func WithConfigMutator(fn func(*config.RuleConfig)) EngineOption {
	return func(e *Engine) {
		e.mutate = fn
	}
}

// WithDocumentName sets the document identifier recorded on reports.
func WithDocumentName(name string) EngineOption {
	return func(e *Engine) {
		e.docName = name
	}
}

// NewEngine creates an engine scanning the provider's document and
// drawing markers through the given renderer.
func NewEngine(provider DocumentProvider, loader *config.Loader, renderer overlay.Renderer, opts ...EngineOption) *Engine {
	e := &Engine{
		provider: provider,
		loader:   loader,
		clock:    time.Now,
		yielder:  NewCooperativeYielder(),
		docName:  "document",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	cfg := e.resolveConfig(context.Background())
	e.guard = NewGuard(cfg.Scan.Cooldown(),
		WithGuardClock(e.clock), WithGuardLogger(e.logger))
	e.manager = overlay.NewManager(renderer, model.NewFindingLog(),
		overlay.WithMarkerClass(config.DefaultMarkerClass),
		overlay.WithSnippetLength(config.DefaultSnippetLength),
		overlay.WithManagerLogger(e.logger))
	return e
}

// Manager returns the engine's annotation manager.
func (e *Engine) Manager() *overlay.Manager {
	return e.manager
}

// State returns the current session state, or Idle when no session has
// run yet.
func (e *Engine) State() model.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return model.StateIdle
	}
	return e.session.State()
}

// Trigger runs one scan session. A trigger rejected by the guard
// returns (nil, nil): the rejection is logged, never propagated. On
// success the returned report snapshots the finding log at session
// end.
func (e *Engine) Trigger(ctx context.Context) (*model.AuditReport, error) {
	cfg := e.resolveConfig(ctx)

	if !e.guard.Acquire() {
		return nil, nil
	}
	defer e.guard.Release()

	doc, err := e.provider.Document(ctx)
	if err != nil {
		e.logger.Error("document unavailable, scan aborted", "error", err)
		return nil, fmt.Errorf("scan: resolve document: %w", err)
	}

	// Re-scanning replaces: the previous session's markers and findings
	// are torn down before the new traversal starts.
	e.manager.RemoveAll()

	session := model.NewScanSession(e.clock())
	e.mu.Lock()
	e.session = session
	e.mu.Unlock()
	e.manager.SetCanceller(session.RequestCancel)

	sched := NewScheduler(rules.NewCatalog(cfg), e.manager, cfg.Scan,
		WithSchedulerClock(e.clock),
		WithYielder(e.yielder),
		WithSchedulerLogger(e.logger),
		WithProgress(e.progress))
	if err := sched.Run(ctx, session, doc); err != nil {
		return nil, fmt.Errorf("scan: session %s: %w", session.ID, err)
	}

	e.manager.ApplyFilter(overlay.Filter{
		ShowErrors:   cfg.Display.ShowErrors,
		ShowWarnings: cfg.Display.ShowWarnings,
		Categories:   cfg.EnabledCategories(),
	})

	report := model.NewAuditReport(e.docName, session.State(),
		session.VisitedCount(), e.manager.Log().Snapshot())
	e.logger.Info("scan session finished",
		"session_id", session.ID,
		"state", session.State().String(),
		"elements", report.ElementsScanned,
		"errors", report.ErrorCount,
		"warnings", report.WarningCount)
	return report, nil
}

// Cancel requests cooperative cancellation of the running session.
// Calling it with no session in flight is a no-op.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil && e.session.State() == model.StateRunning {
		e.session.RequestCancel()
	}
}

// Clear tears down all annotations and findings, cancelling any
// in-flight session first.
func (e *Engine) Clear() {
	e.manager.RemoveAll()
}

// resolveConfig loads the persisted configuration, falling back to the
// built-in defaults when no file exists or the file is unusable.
func (e *Engine) resolveConfig(ctx context.Context) *config.RuleConfig {
	cfg, err := e.loader.Load(ctx)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			e.logger.Warn("configuration unusable, using defaults", "error", err)
		}
		cfg = config.Default()
	}
	if e.mutate != nil {
		e.mutate(cfg)
	}
	return cfg
}
