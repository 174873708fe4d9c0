package scan

import (
	"log/slog"
	"sync"
	"time"
)

// Clock supplies the current time. Injectable so the guard and the
// scheduler can be tested without real waiting.
type Clock func() time.Time

// Guard is the single-flight gate in front of the scheduler. At most
// one session may run at a time, and two session starts must be at
// least a cooldown apart. Rejected triggers are logged and dropped;
// they are never queued and never surface as errors.
type Guard struct {
	mu        sync.Mutex
	clock     Clock
	cooldown  time.Duration
	logger    *slog.Logger
	running   bool
	lastStart time.Time
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithGuardClock overrides the guard's time source.
func WithGuardClock(clock Clock) GuardOption {
	return func(g *Guard) {
		g.clock = clock
	}
}

// WithGuardLogger sets the diagnostics logger.
func WithGuardLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

// NewGuard creates a guard with the given cooldown between session
// starts.
func NewGuard(cooldown time.Duration, opts ...GuardOption) *Guard {
	g := &Guard{
		clock:    time.Now,
		cooldown: cooldown,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Acquire attempts to claim the scan slot. It returns false when a
// session is already in flight or the cooldown since the last session
// start has not elapsed. The cooldown is measured from session start,
// not session end, so a long-running session does not extend it.
func (g *Guard) Acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()
	if g.running {
		g.logger.Debug("scan trigger rejected: session already in flight")
		return false
	}
	if !g.lastStart.IsZero() && now.Sub(g.lastStart) < g.cooldown {
		g.logger.Debug("scan trigger rejected: cooldown not elapsed",
			"since_last_start", now.Sub(g.lastStart), "cooldown", g.cooldown)
		return false
	}

	g.running = true
	g.lastStart = now
	return true
}

// Release frees the scan slot. Safe to call when nothing is held.
func (g *Guard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
}
