package quickaccess

import "context"

// Adapter is the narrow contract to the native side: registry reads and
// writes, shell-namespace enumeration and verb invocation, and external
// script execution.
//
// Every method is treated as potentially slow and potentially failing; the
// Manager is the sole consumer and wraps each call in the governor's deadline.
// Implementations must honor context cancellation on a best-effort basis;
// the Manager does not assume a cancelled call left the native side
// untouched.
//
// The production implementation lives in internal/winshell. Tests use the
// fake in internal/testutil.
type Adapter interface {
	// NewExecutionHandle prepares a reusable invocation context for the
	// given operation kind and category. Expensive; called at most once per
	// (kind, category) by the Manager's handle cache.
	NewExecutionHandle(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error)

	// ReadItems enumerates the items of one category, including
	// system-default metadata. Category All returns both lists.
	ReadItems(ctx context.Context, h *ExecutionHandle, cat Category) ([]Item, error)

	// RunScript invokes the external interpreter through a prepared handle.
	// A vanished or otherwise unusable handle is reported as ErrStaleHandle.
	RunScript(ctx context.Context, h *ExecutionHandle, args []string) (ScriptOutput, error)

	// InvokeVerb performs a fire-and-forget shell-namespace verb (for
	// example, adding a file to the recent documents list).
	InvokeVerb(ctx context.Context, kind OpKind, path string) error

	// RefreshViews asks open Explorer windows to redraw.
	RefreshViews(ctx context.Context) error

	// ReadVisibility reports whether a category is currently shown.
	ReadVisibility(ctx context.Context, cat Category) (bool, error)

	// WriteVisibility toggles whether a category is shown. Registry-mutating
	// and capable of affecting unrelated window-layout state.
	WriteVisibility(ctx context.Context, cat Category, visible bool) error

	// FixExecutionPolicy attempts to relax whatever policy is blocking
	// script execution. Not guaranteed to succeed; callers must recheck
	// feasibility afterwards.
	FixExecutionPolicy(ctx context.Context) error
}
