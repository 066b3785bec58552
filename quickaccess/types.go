package quickaccess

import "time"

// Category selects which Quick Access sub-list an operation targets.
type Category int

const (
	// RecentFiles targets the recently used files list.
	RecentFiles Category = iota

	// FrequentFolders targets the pinned/frequent folders list.
	FrequentFolders

	// All targets both lists.
	All
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case RecentFiles:
		return "recent-files"
	case FrequentFolders:
		return "frequent-folders"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

func (c Category) valid() bool {
	return c == RecentFiles || c == FrequentFolders || c == All
}

// OpKind identifies an operation class. It keys execution handles, per-kind
// timeouts, and error context.
type OpKind int

const (
	// OpQuery reads a Quick Access item list.
	OpQuery OpKind = iota

	// OpAdd adds an item (recent file or pinned folder).
	OpAdd

	// OpRemove removes a single item.
	OpRemove

	// OpEmpty clears a whole category.
	OpEmpty

	// OpVisibility toggles whether a category is shown in Explorer.
	OpVisibility

	// OpRefresh asks open Explorer views to redraw.
	OpRefresh

	// OpProbeQuery is the no-op query used by feasibility checks.
	OpProbeQuery

	// OpProbeModify is the representative mutation used by feasibility checks.
	OpProbeModify
)

// String returns a stable operation-kind name used in errors and logs.
func (k OpKind) String() string {
	switch k {
	case OpQuery:
		return "query"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpEmpty:
		return "empty"
	case OpVisibility:
		return "visibility"
	case OpRefresh:
		return "refresh"
	case OpProbeQuery:
		return "probe-query"
	case OpProbeModify:
		return "probe-modify"
	default:
		return "unknown"
	}
}

// Item is a single Quick Access entry produced by a query.
//
// ExistsOnDisk is computed at query time and is not revalidated afterwards:
// staleness is possible, and callers must re-check before acting on it.
// SystemDefault marks entries pinned by the OS itself rather than the user.
type Item struct {
	Path          string
	Category      Category
	ExistsOnDisk  bool
	SystemDefault bool
}

// FeasibilityState is an immutable snapshot of what the current machine and
// policy permit. It is owned by the feasibility probe and replaced wholesale
// on recheck, never mutated in place.
//
// CanQuery and CanModify are tracked independently: registry read access is
// frequently permitted even when write access or script execution is blocked
// by policy.
type FeasibilityState struct {
	CanQuery  bool
	CanModify bool
	CheckedAt time.Time
}

// Request is the transient per-call value describing one operation. It is
// constructed by the Manager's public methods and never persisted.
type Request struct {
	Category          Category
	Path              string
	ForceUpdate       bool
	AlsoSystemDefault bool
}

// ScriptOutput is the parsed result of one external script run.
type ScriptOutput struct {
	// ExitCode is the interpreter's exit status.
	ExitCode int

	// Lines holds the trimmed, non-empty stdout lines.
	Lines []string

	// Stderr holds the raw stderr text for diagnostics.
	Stderr string
}

// Success reports whether the run exited cleanly.
func (o ScriptOutput) Success() bool { return o.ExitCode == 0 }

// ExecutionHandle is a reusable context for invoking the external script
// interpreter. Creating one is expensive (script materialization, interpreter
// warm-up) relative to invoking it, which is why handles are cached.
type ExecutionHandle struct {
	Kind       OpKind
	Category   Category
	ScriptPath string
	CreatedAt  time.Time
}
