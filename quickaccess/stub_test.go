package quickaccess

import (
	"context"
	"time"
)

// stubAdapter is a minimal Adapter for white-box tests of the internal
// layers. Every hook defaults to an immediate success.
type stubAdapter struct {
	newHandle       func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error)
	runScript       func(ctx context.Context, h *ExecutionHandle, args []string) (ScriptOutput, error)
	readItems       func(ctx context.Context, h *ExecutionHandle, cat Category) ([]Item, error)
	readVisibility  func(ctx context.Context, cat Category) (bool, error)
	writeVisibility func(ctx context.Context, cat Category, visible bool) error
	invokeVerb      func(ctx context.Context, kind OpKind, path string) error
	refreshViews    func(ctx context.Context) error
	fixPolicy       func(ctx context.Context) error
}

func (s *stubAdapter) NewExecutionHandle(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
	if s.newHandle != nil {
		return s.newHandle(ctx, kind, cat)
	}
	return &ExecutionHandle{Kind: kind, Category: cat, ScriptPath: "stub", CreatedAt: time.Now()}, nil
}

func (s *stubAdapter) RunScript(ctx context.Context, h *ExecutionHandle, args []string) (ScriptOutput, error) {
	if s.runScript != nil {
		return s.runScript(ctx, h, args)
	}
	return ScriptOutput{}, nil
}

func (s *stubAdapter) ReadItems(ctx context.Context, h *ExecutionHandle, cat Category) ([]Item, error) {
	if s.readItems != nil {
		return s.readItems(ctx, h, cat)
	}
	return nil, nil
}

func (s *stubAdapter) ReadVisibility(ctx context.Context, cat Category) (bool, error) {
	if s.readVisibility != nil {
		return s.readVisibility(ctx, cat)
	}
	return true, nil
}

func (s *stubAdapter) WriteVisibility(ctx context.Context, cat Category, visible bool) error {
	if s.writeVisibility != nil {
		return s.writeVisibility(ctx, cat, visible)
	}
	return nil
}

func (s *stubAdapter) InvokeVerb(ctx context.Context, kind OpKind, path string) error {
	if s.invokeVerb != nil {
		return s.invokeVerb(ctx, kind, path)
	}
	return nil
}

func (s *stubAdapter) RefreshViews(ctx context.Context) error {
	if s.refreshViews != nil {
		return s.refreshViews(ctx)
	}
	return nil
}

func (s *stubAdapter) FixExecutionPolicy(ctx context.Context) error {
	if s.fixPolicy != nil {
		return s.fixPolicy(ctx)
	}
	return nil
}

func testTimeouts() Timeouts {
	return Timeouts{
		Query:   150 * time.Millisecond,
		Modify:  300 * time.Millisecond,
		Probe:   300 * time.Millisecond,
		Refresh: 150 * time.Millisecond,
	}
}

func newTestGovernor(workers int) *governor {
	return newGovernor(workers, testTimeouts(), discardLogger())
}
