package quickaccess

import (
	"context"
	"fmt"
)

// EmptyItems clears all items in the category.
//
// The whole batch runs under a single feasibility check, a single
// per-category lock acquisition, and a single trailing refresh (when
// forceUpdate is set): no other caller's mutation can interleave mid-batch,
// and Explorer is not churned once per item.
//
// When alsoSystemDefault is false, items the OS pins by default are
// preserved. Per-item failures do not abort the batch; items that succeed
// stay applied and the failures are reported together as a *BatchError.
func (m *Manager) EmptyItems(ctx context.Context, cat Category, forceUpdate, alsoSystemDefault bool) error {
	if !cat.valid() {
		return fmt.Errorf("empty: unknown category %d: %w", int(cat), ErrMissingParameter)
	}
	if err := m.ensureModify(ctx); err != nil {
		return err
	}

	req := Request{Category: cat, ForceUpdate: forceUpdate, AlsoSystemDefault: alsoSystemDefault}

	unlock := m.lockCategory(cat)
	failed := make(map[string]error)
	switch cat {
	case All:
		m.emptyCategory(ctx, RecentFiles, req, failed)
		m.emptyCategory(ctx, FrequentFolders, req, failed)
	default:
		m.emptyCategory(ctx, cat, req, failed)
	}
	unlock()

	if forceUpdate {
		if err := m.refresh(ctx); err != nil {
			return err
		}
	}
	if len(failed) > 0 {
		return &BatchError{Failed: failed}
	}
	return nil
}

// emptyCategory removes every eligible item of one concrete category,
// recording per-item failures. Callers hold the category lock.
//
// Items execute in enumeration order; a failed enumeration marks the whole
// category failed under its name rather than inventing item entries.
func (m *Manager) emptyCategory(ctx context.Context, cat Category, req Request, failed map[string]error) {
	items, err := m.readItems(ctx, cat)
	if err != nil {
		failed[cat.String()] = err
		return
	}

	removed := 0
	for _, it := range items {
		if it.SystemDefault && !req.AlsoSystemDefault {
			continue
		}
		if err := m.removeOne(ctx, it.Path, cat); err != nil {
			failed[it.Path] = err
			continue
		}
		removed++
	}

	// The per-item sweep cannot reach OS-pinned defaults that only the
	// namespace-wide unpin verb dislodges.
	if req.AlsoSystemDefault && cat == FrequentFolders {
		out, err := m.runScript(ctx, OpEmpty, FrequentFolders, nil)
		if err != nil {
			failed[cat.String()] = err
		} else if !out.Success() {
			failed[cat.String()] = &NativeError{Kind: OpEmpty, Code: out.ExitCode, Message: firstLine(out)}
		}
	}

	m.log.Info("category emptied", "category", cat.String(), "removed", removed, "failed", len(failed))
}
