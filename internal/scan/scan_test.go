package scan

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/overlay"
	"github.com/a11yscan/a11yscan/internal/rules"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// yieldFunc adapts a function to the Yielder interface.
type yieldFunc func(ctx context.Context) error

func (f yieldFunc) Yield(ctx context.Context) error { return f(ctx) }

// imageDoc builds a document with n images lacking alt text, wrapped in
// a main landmark so the whole-document check stays quiet.
func imageDoc(t *testing.T, n int) *dom.Document {
	t.Helper()
	var b strings.Builder
	b.WriteString("<body><main>")
	for range n {
		b.WriteString(`<img src="x.png" width="20" height="20">`)
	}
	b.WriteString("</main></body>")

	doc, err := dom.ParseString(b.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func testBudgets() config.ScanConfig {
	return config.ScanConfig{
		ChunkSize:     2,
		ChunkBudgetMS: 1000,
		MaxDurationMS: 5000,
		CooldownMS:    1000,
	}
}

func newTestScheduler(t *testing.T, clock *fakeClock, yielder Yielder) (*Scheduler, *overlay.Manager) {
	t.Helper()
	cfg := config.Default()
	mgr := overlay.NewManager(overlay.NewMemoryRenderer(), model.NewFindingLog())
	opts := []SchedulerOption{WithSchedulerClock(clock.Now)}
	if yielder != nil {
		opts = append(opts, WithYielder(yielder))
	}
	return NewScheduler(rules.NewCatalog(cfg), mgr, testBudgets(), opts...), mgr
}

func TestGuard(t *testing.T) {
	t.Parallel()

	t.Run("second acquire while running is rejected", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		g := NewGuard(time.Second, WithGuardClock(clock.Now))

		if !g.Acquire() {
			t.Fatal("first acquire should succeed")
		}
		if g.Acquire() {
			t.Error("acquire during a running session must fail")
		}
	})

	t.Run("cooldown runs from session start", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		g := NewGuard(time.Second, WithGuardClock(clock.Now))

		g.Acquire()
		g.Release()

		clock.Advance(400 * time.Millisecond)
		if g.Acquire() {
			t.Error("acquire inside the cooldown window must fail")
		}

		clock.Advance(700 * time.Millisecond)
		if !g.Acquire() {
			t.Error("acquire after the cooldown elapsed should succeed")
		}
	})
}

func TestSchedulerRun(t *testing.T) {
	t.Parallel()

	t.Run("full traversal completes with one finding per image", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		sched, mgr := newTestScheduler(t, clock, nil)
		session := model.NewScanSession(clock.Now())

		if err := sched.Run(context.Background(), session, imageDoc(t, 5)); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if session.State() != model.StateCompleted {
			t.Errorf("state = %v, want completed", session.State())
		}
		if got := mgr.Log().Len(); got != 5 {
			t.Errorf("finding count = %d, want 5", got)
		}
		// 6 elements (main + 5 images) spread over chunks of 2.
		if session.Processed != 6 {
			t.Errorf("processed = %d, want 6", session.Processed)
		}
	})

	t.Run("landmark-less document completes with a document-level warning", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		sched, mgr := newTestScheduler(t, clock, nil)
		session := model.NewScanSession(clock.Now())

		doc, err := dom.ParseString(`<body><div><img src="x.png" width="20" height="20"></div></body>`)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}

		if err := sched.Run(context.Background(), session, doc); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if session.State() != model.StateCompleted {
			t.Errorf("state = %v, want completed", session.State())
		}

		findings := mgr.Log().Snapshot()
		if len(findings) != 2 {
			t.Fatalf("finding count = %d, want 2 (no-landmarks + missing-alt)", len(findings))
		}
		// The whole-document pass runs before traversal.
		if findings[0].Type != "no-landmarks" {
			t.Errorf("first finding = %s, want no-landmarks", findings[0].Type)
		}
		if findings[0].Severity != model.SeverityWarning || findings[0].Location != "document" {
			t.Errorf("no-landmarks finding = %+v", findings[0])
		}
		if findings[1].Type != "missing-alt" {
			t.Errorf("second finding = %s, want missing-alt", findings[1].Type)
		}
	})

	t.Run("no element is evaluated twice across chunk boundaries", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		sched, mgr := newTestScheduler(t, clock, nil)
		session := model.NewScanSession(clock.Now())

		if err := sched.Run(context.Background(), session, imageDoc(t, 7)); err != nil {
			t.Fatalf("Run: %v", err)
		}

		seen := make(map[string]bool)
		for _, f := range mgr.Log().Snapshot() {
			if seen[f.Location] {
				t.Errorf("element %s evaluated more than once", f.Location)
			}
			seen[f.Location] = true
		}
		if session.VisitedCount() != session.Total {
			t.Errorf("visited %d of %d elements", session.VisitedCount(), session.Total)
		}
	})

	t.Run("cancel is honored at the next chunk boundary", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		session := model.NewScanSession(clock.Now())

		// Request cancellation during the first yield; the chunk already
		// in flight still completes and keeps its findings.
		cancelOnce := yieldFunc(func(ctx context.Context) error {
			session.RequestCancel()
			return nil
		})
		sched, mgr := newTestScheduler(t, clock, cancelOnce)

		if err := sched.Run(context.Background(), session, imageDoc(t, 7)); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if session.State() != model.StateIdle {
			t.Errorf("state = %v, want idle after cancel", session.State())
		}
		if session.Processed >= session.Total {
			t.Error("cancelled session should not finish the traversal")
		}
		if mgr.Log().Len() == 0 {
			t.Error("findings from completed chunks must be retained")
		}
	})

	t.Run("wall-clock budget finalizes with partial results", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		session := model.NewScanSession(clock.Now())

		// Each yield burns more than the whole session budget.
		slowYield := yieldFunc(func(ctx context.Context) error {
			clock.Advance(6 * time.Second)
			return nil
		})
		sched, mgr := newTestScheduler(t, clock, slowYield)

		if err := sched.Run(context.Background(), session, imageDoc(t, 7)); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if session.State() != model.StateTimedOut {
			t.Errorf("state = %v, want timed_out", session.State())
		}
		if mgr.Log().Len() == 0 {
			t.Error("partial findings must survive a timeout")
		}
		if session.Processed >= session.Total {
			t.Error("timed-out session should not have finished the traversal")
		}
	})

	t.Run("progress stays inside the traversal band", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		var percents []int
		cfg := config.Default()
		mgr := overlay.NewManager(overlay.NewMemoryRenderer(), model.NewFindingLog())
		sched := NewScheduler(rules.NewCatalog(cfg), mgr, testBudgets(),
			WithSchedulerClock(clock.Now),
			WithProgress(func(id string, percent int, state model.SessionState) {
				percents = append(percents, percent)
			}))

		session := model.NewScanSession(clock.Now())
		if err := sched.Run(context.Background(), session, imageDoc(t, 5)); err != nil {
			t.Fatalf("Run: %v", err)
		}

		if len(percents) < 3 {
			t.Fatalf("expected progress updates, got %v", percents)
		}
		for i := 1; i < len(percents); i++ {
			if percents[i] < percents[i-1] {
				t.Errorf("progress went backwards: %v", percents)
			}
		}
		if percents[len(percents)-1] != 100 {
			t.Errorf("final progress = %d, want 100", percents[len(percents)-1])
		}
	})
}

func newTestEngine(t *testing.T, clock *fakeClock, html string) *Engine {
	t.Helper()
	doc, err := dom.ParseString(html)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	provider := DocumentProviderFunc(func(ctx context.Context) (*dom.Document, error) {
		return doc, nil
	})
	loader := config.NewLoader(config.WithPath("/nonexistent/.a11yscan.yml"))
	return NewEngine(provider, loader, overlay.NewMemoryRenderer(),
		WithEngineClock(clock.Now), WithDocumentName("test.html"))
}

const engineDoc = `<body><main><img src="a.png" width="20" height="20"><img src="b.png" width="20" height="20"></main></body>`

func TestEngineTrigger(t *testing.T) {
	t.Parallel()

	t.Run("trigger inside the cooldown is silently dropped", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		engine := newTestEngine(t, clock, engineDoc)

		report, err := engine.Trigger(context.Background())
		if err != nil {
			t.Fatalf("Trigger: %v", err)
		}
		if report == nil || report.Total() != 2 {
			t.Fatalf("first scan report = %+v, want 2 findings", report)
		}

		dropped, err := engine.Trigger(context.Background())
		if err != nil {
			t.Fatalf("Trigger: %v", err)
		}
		if dropped != nil {
			t.Error("trigger inside the cooldown must be dropped without a report")
		}
	})

	t.Run("re-triggering replaces the previous session's results", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		engine := newTestEngine(t, clock, engineDoc)

		first, err := engine.Trigger(context.Background())
		if err != nil {
			t.Fatalf("Trigger: %v", err)
		}

		clock.Advance(2 * time.Second)
		second, err := engine.Trigger(context.Background())
		if err != nil {
			t.Fatalf("Trigger: %v", err)
		}
		if second == nil {
			t.Fatal("trigger after the cooldown should run")
		}
		if second.Total() != first.Total() {
			t.Fatalf("repeat scan found %d findings, first found %d", second.Total(), first.Total())
		}
		// An unchanged document yields the identical ordered finding
		// list, not just the same totals.
		for i := range first.Findings {
			if second.Findings[i].Type != first.Findings[i].Type ||
				second.Findings[i].Location != first.Findings[i].Location {
				t.Errorf("finding %d = %s@%s, first run had %s@%s",
					i, second.Findings[i].Type, second.Findings[i].Location,
					first.Findings[i].Type, first.Findings[i].Location)
			}
		}
		// The log was cleared between sessions, so ids restart.
		if second.Findings[0].ID != 1 {
			t.Errorf("finding ids should restart per session, got %d", second.Findings[0].ID)
		}
	})

	t.Run("clear empties findings and markers", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		engine := newTestEngine(t, clock, engineDoc)

		if _, err := engine.Trigger(context.Background()); err != nil {
			t.Fatalf("Trigger: %v", err)
		}
		engine.Clear()
		if engine.Manager().Log().Len() != 0 {
			t.Error("clear must empty the finding log")
		}
	})
}

func TestHandleCommand(t *testing.T) {
	t.Parallel()

	t.Run("malformed payloads are dropped without effect", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		engine := newTestEngine(t, clock, engineDoc)
		ctx := context.Background()

		engine.HandleCommand(ctx, map[string]any{"action": 42})
		engine.HandleCommand(ctx, map[string]any{"action": "toggle"})
		engine.HandleCommand(ctx, map[string]any{"action": "toggle", "enabled": "yes"})
		engine.HandleCommand(ctx, map[string]any{})

		if engine.Manager().Log().Len() != 0 {
			t.Error("malformed commands must not start a scan")
		}
	})

	t.Run("run and toggle drive the session lifecycle", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		engine := newTestEngine(t, clock, engineDoc)
		ctx := context.Background()

		engine.HandleCommand(ctx, map[string]any{"action": "run"})
		if engine.Manager().Log().Len() != 2 {
			t.Fatalf("run command should scan, log has %d findings", engine.Manager().Log().Len())
		}

		engine.HandleCommand(ctx, map[string]any{"action": "toggle", "enabled": false})
		if engine.Manager().Log().Len() != 0 {
			t.Error("toggle off must clear all findings")
		}

		clock.Advance(2 * time.Second)
		engine.HandleCommand(ctx, map[string]any{"action": "toggle", "enabled": true})
		if engine.Manager().Log().Len() != 2 {
			t.Error("toggle on must start a fresh scan")
		}
	})
}

func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := dir + "/good.html"
	missing := dir + "/missing.html"
	writeFile(t, good, `<body><main><img src="a.png" width="20" height="20"></main></body>`)

	loader := config.NewLoader(config.WithPath("/nonexistent/.a11yscan.yml"))
	batch := NewBatchProcessor(loader, WithConcurrency(2))

	results, err := batch.Run(context.Background(), []string{good, missing})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}

	// Results come back in input order regardless of completion order.
	if results[0].Path != good || results[1].Path != missing {
		t.Errorf("result order = %s, %s", results[0].Path, results[1].Path)
	}
	if results[0].Err != nil {
		t.Errorf("good document failed: %v", results[0].Err)
	}
	if results[0].Report == nil || results[0].Report.Total() != 1 {
		t.Errorf("good document report = %+v", results[0].Report)
	}
	if results[1].Err == nil {
		t.Error("missing document must carry an error")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
