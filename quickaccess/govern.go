package quickaccess

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// governor bounds every native call with a per-kind deadline and runs it on a
// dedicated worker pool.
//
// The pool exists so a blocking native invocation (registry I/O, a wedged
// interpreter, a security prompt) is never performed inline on the goroutine
// that is awaiting it: the caller always retains the ability to give up at
// the deadline. Workers live for the process lifetime; there is no teardown.
type governor struct {
	tasks  chan func()
	limits Timeouts
	log    *slog.Logger
}

func newGovernor(workers int, limits Timeouts, log *slog.Logger) *governor {
	g := &governor{
		tasks:  make(chan func()),
		limits: limits,
		log:    log,
	}
	for i := 0; i < workers; i++ {
		go g.worker()
	}
	return g
}

func (g *governor) worker() {
	for task := range g.tasks {
		task()
	}
}

// govern dispatches fn to a worker and waits for its result under the
// deadline for kind.
//
// On expiry it returns a *TimeoutError. The context handed to fn is cancelled
// at that point so the native side can abort, but cancellation is best-effort
// only: the side effect may still have completed, and the abandoned worker
// delivers its late result into a buffered channel so it never leaks.
func govern[T any](ctx context.Context, g *governor, kind OpKind, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	limit := g.limits.forKind(kind)
	cctx, cancel := context.WithTimeout(ctx, limit)

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	start := time.Now()

	task := func() {
		v, err := fn(cctx)
		ch <- result{v, err}
	}

	// Queueing can itself block when every worker is occupied by a slow
	// call, so the deadline covers it too.
	select {
	case g.tasks <- task:
	case <-cctx.Done():
		cancel()
		return zero, g.expired(ctx, kind, limit, start)
	}

	select {
	case r := <-ch:
		cancel()
		return r.v, r.err
	case <-cctx.Done():
		cancel()
		return zero, g.expired(ctx, kind, limit, start)
	}
}

// expired distinguishes caller cancellation from a deadline overrun.
func (g *governor) expired(ctx context.Context, kind OpKind, limit time.Duration, start time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	elapsed := time.Since(start)
	g.log.Warn("native call exceeded deadline",
		"kind", kind.String(),
		"limit", limit,
		"elapsed", elapsed)
	return &TimeoutError{Kind: kind, Limit: limit, Elapsed: elapsed}
}

// governErr is govern for calls that produce no value.
func governErr(ctx context.Context, g *governor, kind OpKind, fn func(context.Context) error) error {
	_, err := govern(ctx, g, kind, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
