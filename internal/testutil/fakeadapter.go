// Package testutil provides a fake native adapter and fixtures for exercising
// the operation engine without a Windows shell.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/joshuapare/accesskit/quickaccess"
)

// FakeAdapter is an in-memory quickaccess.Adapter. It keeps real item state
// so add/remove/query round-trip, and instruments every entry point with
// call counters so tests can assert on cache reuse and feasibility gating.
//
// All configuration fields must be set before the adapter is handed to a
// Manager; the counters may be read at any time via the accessor methods.
type FakeAdapter struct {
	mu sync.Mutex

	recent   []quickaccess.Item
	frequent []quickaccess.Item
	visible  map[quickaccess.Category]bool

	// QueryFeasible / ModifyFeasible control the probe script results.
	QueryFeasible  bool
	ModifyFeasible bool

	// Hang injects a per-kind delay into script runs and enumerations,
	// honoring context cancellation, to exercise the governor.
	Hang map[quickaccess.OpKind]time.Duration

	// StaleRuns makes the next N script runs fail with ErrStaleHandle.
	StaleRuns int

	// FailRemove maps paths whose removal should fail with the given error.
	FailRemove map[string]error

	handleCreations map[string]int
	scriptRuns      map[string]int
	verbCalls       int
	refreshCalls    int
	fixCalls        int
	mutationCalls   int

	inFlightMutations    int
	maxInFlightMutations int
}

// NewFakeAdapter returns a fake with both capabilities enabled and default
// visibility on.
func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{
		QueryFeasible:  true,
		ModifyFeasible: true,
		visible: map[quickaccess.Category]bool{
			quickaccess.RecentFiles:     true,
			quickaccess.FrequentFolders: true,
		},
		handleCreations: make(map[string]int),
		scriptRuns:      make(map[string]int),
	}
}

func slotKey(kind quickaccess.OpKind, cat quickaccess.Category) string {
	return fmt.Sprintf("%s/%s", kind, cat)
}

// Seed replaces the items of one concrete category.
func (f *FakeAdapter) Seed(cat quickaccess.Category, items ...quickaccess.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]quickaccess.Item, len(items))
	copy(cp, items)
	switch cat {
	case quickaccess.RecentFiles:
		f.recent = cp
	case quickaccess.FrequentFolders:
		f.frequent = cp
	}
}

// Items returns a copy of the current items for a category.
func (f *FakeAdapter) Items(cat quickaccess.Category) []quickaccess.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.itemsLocked(cat)
}

func (f *FakeAdapter) itemsLocked(cat quickaccess.Category) []quickaccess.Item {
	var src []quickaccess.Item
	switch cat {
	case quickaccess.RecentFiles:
		src = f.recent
	case quickaccess.FrequentFolders:
		src = f.frequent
	default:
		src = append(append([]quickaccess.Item{}, f.recent...), f.frequent...)
	}
	cp := make([]quickaccess.Item, len(src))
	copy(cp, src)
	return cp
}

// HandleCreations reports how many execution handles were created for a slot.
func (f *FakeAdapter) HandleCreations(kind quickaccess.OpKind, cat quickaccess.Category) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handleCreations[slotKey(kind, cat)]
}

// MutationCalls reports how many native mutations were attempted (script or
// verb). Used to assert feasibility gating keeps the mutation path untouched.
func (f *FakeAdapter) MutationCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutationCalls
}

// RefreshCalls reports how many view refreshes were requested.
func (f *FakeAdapter) RefreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

// FixCalls reports how many policy fixes were attempted.
func (f *FakeAdapter) FixCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fixCalls
}

// --- quickaccess.Adapter ---

func (f *FakeAdapter) NewExecutionHandle(ctx context.Context, kind quickaccess.OpKind, cat quickaccess.Category) (*quickaccess.ExecutionHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.handleCreations[slotKey(kind, cat)]++
	f.mu.Unlock()
	return &quickaccess.ExecutionHandle{
		Kind:       kind,
		Category:   cat,
		ScriptPath: "fake:" + slotKey(kind, cat),
		CreatedAt:  time.Now(),
	}, nil
}

func (f *FakeAdapter) ReadItems(ctx context.Context, h *quickaccess.ExecutionHandle, cat quickaccess.Category) ([]quickaccess.Item, error) {
	if err := f.sleep(ctx, quickaccess.OpQuery); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.itemsLocked(cat), nil
}

func (f *FakeAdapter) RunScript(ctx context.Context, h *quickaccess.ExecutionHandle, args []string) (quickaccess.ScriptOutput, error) {
	if h == nil {
		return quickaccess.ScriptOutput{}, quickaccess.ErrStaleHandle
	}
	if isMutation(h.Kind) {
		f.enterMutation()
		defer f.exitMutation()
	}
	if err := f.sleep(ctx, h.Kind); err != nil {
		return quickaccess.ScriptOutput{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.scriptRuns[slotKey(h.Kind, h.Category)]++
	if f.StaleRuns > 0 {
		f.StaleRuns--
		return quickaccess.ScriptOutput{}, quickaccess.ErrStaleHandle
	}

	switch h.Kind {
	case quickaccess.OpProbeQuery:
		if !f.QueryFeasible {
			return quickaccess.ScriptOutput{ExitCode: 1, Stderr: "query probe blocked"}, nil
		}
		return quickaccess.ScriptOutput{}, nil

	case quickaccess.OpProbeModify:
		if !f.ModifyFeasible {
			return quickaccess.ScriptOutput{ExitCode: 1, Stderr: "pin/unpin probe blocked"}, nil
		}
		return quickaccess.ScriptOutput{}, nil

	case quickaccess.OpAdd:
		f.mutationCalls++
		if len(args) == 0 {
			return quickaccess.ScriptOutput{ExitCode: 1, Stderr: "missing path"}, nil
		}
		f.frequent = append(f.frequent, quickaccess.Item{
			Path:         args[0],
			Category:     quickaccess.FrequentFolders,
			ExistsOnDisk: true,
		})
		return quickaccess.ScriptOutput{}, nil

	case quickaccess.OpRemove:
		f.mutationCalls++
		if len(args) == 0 {
			return quickaccess.ScriptOutput{ExitCode: 1, Stderr: "missing path"}, nil
		}
		if err, ok := f.FailRemove[args[0]]; ok {
			return quickaccess.ScriptOutput{ExitCode: 1, Stderr: err.Error()}, nil
		}
		if !f.removeLocked(args[0], h.Category) {
			return quickaccess.ScriptOutput{ExitCode: 1, Stderr: "item not found: " + args[0]}, nil
		}
		return quickaccess.ScriptOutput{}, nil

	case quickaccess.OpEmpty:
		f.mutationCalls++
		f.frequent = nil
		return quickaccess.ScriptOutput{}, nil

	default:
		return quickaccess.ScriptOutput{ExitCode: 1, Stderr: "unexpected script kind " + h.Kind.String()}, nil
	}
}

func (f *FakeAdapter) removeLocked(path string, cat quickaccess.Category) bool {
	remove := func(items []quickaccess.Item) ([]quickaccess.Item, bool) {
		for i, it := range items {
			if it.Path == path {
				return append(items[:i:i], items[i+1:]...), true
			}
		}
		return items, false
	}
	switch cat {
	case quickaccess.FrequentFolders:
		var ok bool
		f.frequent, ok = remove(f.frequent)
		return ok
	default:
		var ok bool
		f.recent, ok = remove(f.recent)
		return ok
	}
}

func (f *FakeAdapter) InvokeVerb(ctx context.Context, kind quickaccess.OpKind, path string) error {
	if err := f.sleep(ctx, kind); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verbCalls++
	f.mutationCalls++
	switch kind {
	case quickaccess.OpAdd:
		f.recent = append(f.recent, quickaccess.Item{
			Path:         path,
			Category:     quickaccess.RecentFiles,
			ExistsOnDisk: true,
		})
		return nil
	case quickaccess.OpEmpty:
		f.recent = nil
		return nil
	default:
		return &quickaccess.NativeError{Kind: kind, Code: 1, Message: "unsupported verb"}
	}
}

func (f *FakeAdapter) RefreshViews(ctx context.Context) error {
	if err := f.sleep(ctx, quickaccess.OpRefresh); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	return nil
}

func (f *FakeAdapter) ReadVisibility(ctx context.Context, cat quickaccess.Category) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if cat == quickaccess.All {
		cat = quickaccess.RecentFiles
	}
	return f.visible[cat], nil
}

func (f *FakeAdapter) WriteVisibility(ctx context.Context, cat quickaccess.Category, visible bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutationCalls++
	if cat == quickaccess.All {
		cat = quickaccess.RecentFiles
	}
	f.visible[cat] = visible
	return nil
}

func (f *FakeAdapter) FixExecutionPolicy(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fixCalls++
	// Fixing the policy is what flips the modify probe in this fake.
	f.ModifyFeasible = true
	return nil
}

func isMutation(kind quickaccess.OpKind) bool {
	switch kind {
	case quickaccess.OpAdd, quickaccess.OpRemove, quickaccess.OpEmpty, quickaccess.OpVisibility:
		return true
	default:
		return false
	}
}

func (f *FakeAdapter) enterMutation() {
	f.mu.Lock()
	f.inFlightMutations++
	if f.inFlightMutations > f.maxInFlightMutations {
		f.maxInFlightMutations = f.inFlightMutations
	}
	f.mu.Unlock()
}

func (f *FakeAdapter) exitMutation() {
	f.mu.Lock()
	f.inFlightMutations--
	f.mu.Unlock()
}

// MaxInFlightMutations reports the highest number of native mutations that
// ever executed concurrently. Serialization tests assert this stays at 1 for
// same-category workloads.
func (f *FakeAdapter) MaxInFlightMutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlightMutations
}

func (f *FakeAdapter) sleep(ctx context.Context, kind quickaccess.OpKind) error {
	f.mu.Lock()
	d := f.Hang[kind]
	f.mu.Unlock()
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
