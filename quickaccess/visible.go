package quickaccess

import (
	"context"
	"fmt"
)

// Visible reports whether the category is currently shown in Explorer's
// Quick Access pane. Category All reports the recent-files flag, matching
// how Explorer treats the combined view.
func (m *Manager) Visible(ctx context.Context, cat Category) (bool, error) {
	if !cat.valid() {
		return false, fmt.Errorf("visible: unknown category %d: %w", int(cat), ErrMissingParameter)
	}
	if err := m.ensureQuery(ctx); err != nil {
		return false, err
	}
	visible, err := govern(ctx, m.gov, OpQuery, func(ctx context.Context) (bool, error) {
		return m.adapter.ReadVisibility(ctx, cat)
	})
	if err != nil {
		return false, fmt.Errorf("visible %s: %w", cat, err)
	}
	return visible, nil
}

// SetVisibility toggles whether the category is shown at all.
//
// This mutates registry state that Explorer also uses for window-layout
// decisions, so it can affect unrelated Explorer behavior; treat it as
// higher-risk than AddItem/RemoveItem. The write serializes with other
// mutations on the same category.
func (m *Manager) SetVisibility(ctx context.Context, cat Category, visible bool) error {
	if !cat.valid() {
		return fmt.Errorf("set-visibility: unknown category %d: %w", int(cat), ErrMissingParameter)
	}
	if err := m.ensureModify(ctx); err != nil {
		return err
	}

	unlock := m.lockCategory(cat)
	defer unlock()

	err := governErr(ctx, m.gov, OpVisibility, func(ctx context.Context) error {
		return m.adapter.WriteVisibility(ctx, cat, visible)
	})
	if err != nil {
		return fmt.Errorf("set-visibility %s: %w", cat, err)
	}
	m.log.Info("visibility changed", "category", cat.String(), "visible", visible)
	return nil
}
