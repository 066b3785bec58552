package quickaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Manager is the public surface for Quick Access operations. It sequences
// feasibility probe → handle cache → timeout-governed native call for every
// operation, and serializes conflicting mutations per category.
//
// A Manager is safe for concurrent use. Construct one with New and share it;
// the probe snapshot and handle cache it owns are intended to be process-wide.
type Manager struct {
	adapter Adapter
	gov     *governor
	cache   *handleCache
	probe   *probe
	log     *slog.Logger

	skipFeasibility bool

	// Per-category modify locks. Held only around the native mutation
	// phase, never around caller-supplied data validation. All acquires
	// both, recent first.
	recentMu   sync.Mutex
	frequentMu sync.Mutex
}

// New creates a Manager and performs the first feasibility check.
//
// Querying is table stakes: when the environment cannot even enumerate Quick
// Access items, New attempts one policy fix, rechecks, and fails with
// ErrNotFeasible if query capability is still absent.
// Options.SkipFeasibilityCheck bypasses all of that for pre-verified callers.
func New(ctx context.Context, opts Options) (*Manager, error) {
	if opts.Adapter == nil {
		return nil, fmt.Errorf("%w: Options.Adapter", ErrMissingParameter)
	}
	opts = opts.withDefaults()

	gov := newGovernor(opts.Workers, opts.Timeouts, opts.Logger)
	cache := newHandleCache(opts.Adapter, gov, opts.Logger)
	m := &Manager{
		adapter:         opts.Adapter,
		gov:             gov,
		cache:           cache,
		probe:           newProbe(opts.Adapter, cache, gov, opts.FeasibilityTTL, opts.Logger),
		log:             opts.Logger,
		skipFeasibility: opts.SkipFeasibilityCheck,
	}

	if m.skipFeasibility {
		return m, nil
	}

	st, err := m.probe.Check(ctx)
	if err != nil {
		return nil, err
	}
	if !st.CanQuery {
		// One repair attempt before giving up: execution policy blocks are
		// the common, fixable cause.
		if ferr := m.probe.Fix(ctx); ferr != nil {
			m.log.Warn("feasibility fix failed during init", "error", ferr)
		}
		m.cache.invalidateAll()
		st, err = m.probe.ForceRecheck(ctx)
		if err != nil {
			return nil, err
		}
		if !st.CanQuery {
			return nil, fmt.Errorf("initialize: query capability unavailable: %w", ErrNotFeasible)
		}
	}
	return m, nil
}

// Query returns the items of one category. Requires query capability only;
// never blocks behind in-flight mutations, so read-your-writes is not
// guaranteed for a query racing a concurrent add.
func (m *Manager) Query(ctx context.Context, cat Category) ([]Item, error) {
	if !cat.valid() {
		return nil, fmt.Errorf("query: unknown category %d: %w", int(cat), ErrMissingParameter)
	}
	if err := m.ensureQuery(ctx); err != nil {
		return nil, err
	}
	return m.readItems(ctx, cat)
}

// Contains reports whether path is currently listed in the category.
func (m *Manager) Contains(ctx context.Context, path string, cat Category) (bool, error) {
	items, err := m.Query(ctx, cat)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.Path == path {
			return true, nil
		}
	}
	return false, nil
}

// AddItem adds path to the category. RecentFiles accepts files,
// FrequentFolders accepts directories; Category All is not addable.
//
// forceUpdate triggers a synchronous Explorer refresh after the mutation so
// the change is visible immediately, at the cost of extra latency. Without it
// the view catches up on the OS's own cadence.
func (m *Manager) AddItem(ctx context.Context, path string, cat Category, forceUpdate bool) error {
	req := Request{Category: cat, Path: path, ForceUpdate: forceUpdate}
	switch cat {
	case RecentFiles:
		if err := validatePath(path, false); err != nil {
			return fmt.Errorf("add %q: %w", path, err)
		}
	case FrequentFolders:
		if err := validatePath(path, true); err != nil {
			return fmt.Errorf("add %q: %w", path, err)
		}
	default:
		return fmt.Errorf("add: category %s not addable: %w", cat, ErrUnsupported)
	}
	if err := m.ensureModify(ctx); err != nil {
		return err
	}

	if err := m.addLocked(ctx, req); err != nil {
		return err
	}
	if forceUpdate {
		return m.refresh(ctx)
	}
	return nil
}

func (m *Manager) addLocked(ctx context.Context, req Request) error {
	unlock := m.lockCategory(req.Category)
	defer unlock()

	switch req.Category {
	case RecentFiles:
		// Recent files go through the shell API verb, not the interpreter.
		return governErr(ctx, m.gov, OpAdd, func(ctx context.Context) error {
			return m.adapter.InvokeVerb(ctx, OpAdd, req.Path)
		})
	case FrequentFolders:
		out, err := m.runScript(ctx, OpAdd, FrequentFolders, []string{req.Path})
		if err != nil {
			return fmt.Errorf("add %q: %w", req.Path, err)
		}
		if !out.Success() || len(out.Lines) > 0 {
			return &NativeError{Kind: OpAdd, Code: out.ExitCode, Message: firstLine(out)}
		}
		return nil
	default:
		return fmt.Errorf("add: category %s not addable: %w", req.Category, ErrUnsupported)
	}
}

// RemoveItem removes path from the category. Idempotent: removing an absent
// item is a no-op success, never an error.
func (m *Manager) RemoveItem(ctx context.Context, path string, cat Category) error {
	if cat != RecentFiles && cat != FrequentFolders {
		return fmt.Errorf("remove: category %s not removable: %w", cat, ErrUnsupported)
	}
	if err := m.ensureModify(ctx); err != nil {
		return err
	}

	unlock := m.lockCategory(cat)
	defer unlock()

	present, err := m.containsUnlocked(ctx, path, cat)
	if err != nil {
		return err
	}
	if !present {
		m.log.Debug("remove skipped, item absent", "path", path, "category", cat.String())
		return nil
	}
	return m.removeOne(ctx, path, cat)
}

// removeOne issues the native removal for one present item. Callers hold the
// category lock.
func (m *Manager) removeOne(ctx context.Context, path string, cat Category) error {
	out, err := m.runScript(ctx, OpRemove, cat, []string{path})
	if err != nil {
		return fmt.Errorf("remove %q: %w", path, err)
	}
	if !out.Success() {
		return &NativeError{Kind: OpRemove, Code: out.ExitCode, Message: firstLine(out)}
	}
	return nil
}

// CheckFeasible exposes (canQuery, canModify) from the cached snapshot,
// probing lazily only when no snapshot exists yet. It never forces a recheck.
func (m *Manager) CheckFeasible(ctx context.Context) (bool, bool) {
	if m.skipFeasibility {
		return true, true
	}
	if st, ok := m.probe.snapshot(); ok {
		return st.CanQuery, st.CanModify
	}
	st, err := m.probe.Check(ctx)
	if err != nil {
		m.log.Warn("feasibility check failed", "error", err)
		return false, false
	}
	return st.CanQuery, st.CanModify
}

// Fix attempts to relax the policy blocking script execution, then clears the
// handle cache: handles created under the stale policy must not be reused.
// Rerun ForceRecheck afterwards to observe the new state.
func (m *Manager) Fix(ctx context.Context) error {
	if err := m.probe.Fix(ctx); err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	m.cache.invalidateAll()
	return nil
}

// ForceRecheck bypasses the feasibility TTL and returns the new snapshot.
func (m *Manager) ForceRecheck(ctx context.Context) (FeasibilityState, error) {
	return m.probe.ForceRecheck(ctx)
}

// --- internal plumbing ---

func (m *Manager) ensureQuery(ctx context.Context) error {
	if m.skipFeasibility {
		return nil
	}
	st, err := m.probe.Check(ctx)
	if err != nil {
		return err
	}
	if !st.CanQuery {
		return fmt.Errorf("query capability unavailable: %w", ErrNotFeasible)
	}
	return nil
}

func (m *Manager) ensureModify(ctx context.Context) error {
	if m.skipFeasibility {
		return nil
	}
	st, err := m.probe.Check(ctx)
	if err != nil {
		return err
	}
	if !st.CanModify {
		return fmt.Errorf("modify capability unavailable: %w", ErrNotFeasible)
	}
	return nil
}

// lockCategory acquires the modify lock(s) for a category and returns the
// release func. All takes both locks, recent first, to keep lock order total.
func (m *Manager) lockCategory(cat Category) func() {
	switch cat {
	case RecentFiles:
		m.recentMu.Lock()
		return m.recentMu.Unlock
	case FrequentFolders:
		m.frequentMu.Lock()
		return m.frequentMu.Unlock
	default:
		m.recentMu.Lock()
		m.frequentMu.Lock()
		return func() {
			m.frequentMu.Unlock()
			m.recentMu.Unlock()
		}
	}
}

// readItems runs the governed enumeration for one category through a cached
// query handle.
func (m *Manager) readItems(ctx context.Context, cat Category) ([]Item, error) {
	h, err := m.cache.getOrCreate(ctx, OpQuery, cat)
	if err != nil {
		return nil, err
	}
	items, err := govern(ctx, m.gov, OpQuery, func(ctx context.Context) ([]Item, error) {
		return m.adapter.ReadItems(ctx, h, cat)
	})
	if errors.Is(err, ErrStaleHandle) {
		m.cache.invalidate(OpQuery, cat)
		if h, err = m.cache.getOrCreate(ctx, OpQuery, cat); err != nil {
			return nil, err
		}
		items, err = govern(ctx, m.gov, OpQuery, func(ctx context.Context) ([]Item, error) {
			return m.adapter.ReadItems(ctx, h, cat)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", cat, err)
	}
	return items, nil
}

// containsUnlocked is Contains without the feasibility gate, for use inside
// an already-gated modify operation.
func (m *Manager) containsUnlocked(ctx context.Context, path string, cat Category) (bool, error) {
	items, err := m.readItems(ctx, cat)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.Path == path {
			return true, nil
		}
	}
	return false, nil
}

// runScript executes through a cached handle, transparently retrying exactly
// once when the failure is a stale handle (after invalidating and recreating
// it). All other errors propagate unmodified.
func (m *Manager) runScript(ctx context.Context, kind OpKind, cat Category, args []string) (ScriptOutput, error) {
	h, err := m.cache.getOrCreate(ctx, kind, cat)
	if err != nil {
		return ScriptOutput{}, err
	}
	out, err := govern(ctx, m.gov, kind, func(ctx context.Context) (ScriptOutput, error) {
		return m.adapter.RunScript(ctx, h, args)
	})
	if errors.Is(err, ErrStaleHandle) {
		m.log.Debug("retrying with fresh handle", "kind", kind.String(), "category", cat.String())
		m.cache.invalidate(kind, cat)
		h, err = m.cache.getOrCreate(ctx, kind, cat)
		if err != nil {
			return ScriptOutput{}, err
		}
		out, err = govern(ctx, m.gov, kind, func(ctx context.Context) (ScriptOutput, error) {
			return m.adapter.RunScript(ctx, h, args)
		})
	}
	return out, err
}

func (m *Manager) refresh(ctx context.Context) error {
	return governErr(ctx, m.gov, OpRefresh, m.adapter.RefreshViews)
}

// validatePath checks existence and file/directory shape before a mutation
// reaches the native side.
func validatePath(path string, wantDir bool) error {
	if path == "" {
		return ErrInvalidPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if info.IsDir() != wantDir {
		if wantDir {
			return fmt.Errorf("%w: not a directory", ErrInvalidPath)
		}
		return fmt.Errorf("%w: not a file", ErrInvalidPath)
	}
	return nil
}

func firstLine(out ScriptOutput) string {
	if len(out.Lines) > 0 {
		return out.Lines[0]
	}
	return out.Stderr
}
