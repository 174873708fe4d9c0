package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/overlay"
	"github.com/a11yscan/a11yscan/internal/rules"
)

// BatchResult is the outcome for one document in a batch run.
type BatchResult struct {
	Path   string
	Report *model.AuditReport
	Err    error
}

// BatchProcessor scans many documents concurrently, one independent
// session per document. The single-flight guard does not apply across
// a batch: each document has its own session, manager, and log, so no
// state is shared between workers.
type BatchProcessor struct {
	loader *config.Loader
	logger *slog.Logger
	limit  int
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the diagnostics logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency caps the number of documents scanned at once.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.limit = n
		}
	}
}

// NewBatchProcessor creates a batch runner resolving configuration
// through the given loader.
func NewBatchProcessor(loader *config.Loader, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		loader: loader,
		limit:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Run scans every path and returns one result per path, in input
// order. Per-document failures are recorded in the result, not
// returned; Run itself fails only when the context is cancelled.
func (b *BatchProcessor) Run(ctx context.Context, paths []string) ([]BatchResult, error) {
	cfg, err := b.loader.Load(ctx)
	if err != nil {
		cfg = config.Default()
	}

	results := make([]BatchResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit)

	for i, path := range paths {
		g.Go(func() error {
			results[i] = b.scanOne(ctx, cfg, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanOne runs a full session against one file.
func (b *BatchProcessor) scanOne(ctx context.Context, cfg *config.RuleConfig, path string) BatchResult {
	f, err := os.Open(path) //nolint:gosec // User-provided document path is intentional
	if err != nil {
		return BatchResult{Path: path, Err: fmt.Errorf("open document: %w", err)}
	}
	defer f.Close() //nolint:errcheck

	doc, err := dom.Parse(f)
	if err != nil {
		return BatchResult{Path: path, Err: fmt.Errorf("parse document: %w", err)}
	}

	log := model.NewFindingLog()
	mgr := overlay.NewManager(overlay.NewMemoryRenderer(), log,
		overlay.WithMarkerClass(config.DefaultMarkerClass),
		overlay.WithManagerLogger(b.logger))
	sched := NewScheduler(rules.NewCatalog(cfg), mgr, cfg.Scan,
		WithSchedulerLogger(b.logger))

	session := model.NewScanSession(time.Now())
	if err := sched.Run(ctx, session, doc); err != nil {
		return BatchResult{Path: path, Err: err}
	}

	report := model.NewAuditReport(path, session.State(), session.VisitedCount(), log.Snapshot())
	return BatchResult{Path: path, Report: report}
}
