package quickaccess

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// probe determines, and caches, whether query and modify operations are
// currently permitted.
//
// Checking is itself expensive (a no-op script execution plus a
// representative registry probe), so the result is cached with a TTL. The
// snapshot is replaced wholesale on recheck and never mutated in place.
//
// checkMu serializes rechecks (single writer); stateMu guards snapshot reads
// (many readers). A reader never blocks behind a native probe unless the
// snapshot is missing or expired.
type probe struct {
	adapter Adapter
	cache   *handleCache
	gov     *governor
	ttl     time.Duration
	log     *slog.Logger
	now     func() time.Time

	checkMu sync.Mutex
	stateMu sync.RWMutex
	state   *FeasibilityState
}

func newProbe(adapter Adapter, cache *handleCache, gov *governor, ttl time.Duration, log *slog.Logger) *probe {
	return &probe{
		adapter: adapter,
		cache:   cache,
		gov:     gov,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// Check returns the current feasibility snapshot, probing the native side
// only when no fresh snapshot exists. Cheap to call repeatedly.
func (p *probe) Check(ctx context.Context) (FeasibilityState, error) {
	if st, ok := p.fresh(); ok {
		return st, nil
	}
	return p.recheck(ctx)
}

// ForceRecheck bypasses the TTL. Used after Fix, or when the caller suspects
// the environment changed underneath a fresh snapshot.
func (p *probe) ForceRecheck(ctx context.Context) (FeasibilityState, error) {
	p.stateMu.Lock()
	p.state = nil
	p.stateMu.Unlock()
	return p.recheck(ctx)
}

// Fix attempts to relax whatever policy is blocking script execution. Not
// guaranteed to succeed; the snapshot is NOT updated. Rerun Check or
// ForceRecheck to observe the new state.
func (p *probe) Fix(ctx context.Context) error {
	return governErr(ctx, p.gov, OpProbeModify, p.adapter.FixExecutionPolicy)
}

// snapshot returns the cached state without probing, and whether one exists.
func (p *probe) snapshot() (FeasibilityState, bool) {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	if p.state == nil {
		return FeasibilityState{}, false
	}
	return *p.state, true
}

func (p *probe) fresh() (FeasibilityState, bool) {
	st, ok := p.snapshot()
	if !ok {
		return FeasibilityState{}, false
	}
	if p.now().Sub(st.CheckedAt) >= p.ttl {
		return FeasibilityState{}, false
	}
	return st, true
}

func (p *probe) recheck(ctx context.Context) (FeasibilityState, error) {
	p.checkMu.Lock()
	defer p.checkMu.Unlock()

	// A concurrent recheck may have finished while this caller waited.
	if st, ok := p.fresh(); ok {
		return st, nil
	}

	canQuery, err := p.probeQuery(ctx)
	if err != nil {
		return FeasibilityState{}, err
	}
	canModify, err := p.probeModify(ctx)
	if err != nil {
		return FeasibilityState{}, err
	}

	st := FeasibilityState{
		CanQuery:  canQuery,
		CanModify: canModify,
		CheckedAt: p.now(),
	}
	p.stateMu.Lock()
	p.state = &st
	p.stateMu.Unlock()

	p.log.Info("feasibility rechecked", "can_query", canQuery, "can_modify", canModify)
	return st, nil
}

// probeQuery attempts a no-op script enumeration and a registry read. Either
// failing means query capability is absent, not that the check errored;
// infrastructure failures (caller cancellation) still propagate.
func (p *probe) probeQuery(ctx context.Context) (bool, error) {
	ok, err := p.runProbeScript(ctx, OpProbeQuery)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	_, verr := govern(ctx, p.gov, OpProbeQuery, func(ctx context.Context) (bool, error) {
		return p.adapter.ReadVisibility(ctx, RecentFiles)
	})
	if verr != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return true, nil
}

// probeModify attempts a representative pin/unpin round trip in a policed
// child process. Failure, timeout, or a blocked handle all report the
// capability as absent.
func (p *probe) probeModify(ctx context.Context) (bool, error) {
	return p.runProbeScript(ctx, OpProbeModify)
}

func (p *probe) runProbeScript(ctx context.Context, kind OpKind) (bool, error) {
	h, err := p.cache.getOrCreate(ctx, kind, All)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		// Handle creation failing is itself the feasibility answer.
		return false, nil
	}
	out, err := govern(ctx, p.gov, kind, func(ctx context.Context) (ScriptOutput, error) {
		return p.adapter.RunScript(ctx, h, nil)
	})
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return out.Success(), nil
}
