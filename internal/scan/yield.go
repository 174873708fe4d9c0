package scan

import (
	"context"
	"runtime"
)

// Yielder hands control back to the host between chunks. The scheduler
// calls Yield exactly once per chunk boundary; a non-nil error aborts
// the traversal the same way a cancel request does.
type Yielder interface {
	Yield(ctx context.Context) error
}

// cooperativeYielder is the default Yielder: it checks the context and
// lets other goroutines run.
type cooperativeYielder struct{}

// NewCooperativeYielder returns the default yielder.
func NewCooperativeYielder() Yielder {
	return cooperativeYielder{}
}

// Yield implements Yielder.
func (cooperativeYielder) Yield(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runtime.Gosched()
	return nil
}
