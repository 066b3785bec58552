package quickaccess

import (
	"log/slog"
	"time"
)

// Timeouts holds per-operation-kind deadlines for native calls. Query
// operations get a shorter default than modify operations, which may involve
// an external script round-trip.
type Timeouts struct {
	// Query bounds item enumeration and visibility reads.
	Query time.Duration

	// Modify bounds add/remove/empty/visibility mutations.
	Modify time.Duration

	// Probe bounds feasibility checks, which spawn a child interpreter.
	Probe time.Duration

	// Refresh bounds Explorer view refreshes.
	Refresh time.Duration
}

// DefaultTimeouts returns the standard deadlines. These are generous enough
// for a cold interpreter start under load while still bounding a wedged call.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Query:   5 * time.Second,
		Modify:  15 * time.Second,
		Probe:   10 * time.Second,
		Refresh: 5 * time.Second,
	}
}

// forKind maps an operation kind to its deadline.
func (t Timeouts) forKind(kind OpKind) time.Duration {
	switch kind {
	case OpQuery:
		return t.Query
	case OpAdd, OpRemove, OpEmpty, OpVisibility:
		return t.Modify
	case OpProbeQuery, OpProbeModify:
		return t.Probe
	case OpRefresh:
		return t.Refresh
	default:
		return t.Modify
	}
}

// Options controls Manager construction.
type Options struct {
	// Adapter performs the actual native operations. Required.
	Adapter Adapter

	// Timeouts overrides the per-kind native-call deadlines. Zero fields
	// fall back to DefaultTimeouts.
	Timeouts Timeouts

	// FeasibilityTTL is how long a feasibility snapshot stays fresh.
	// Default: 5 minutes.
	FeasibilityTTL time.Duration

	// SkipFeasibilityCheck bypasses probing entirely. Intended for batch
	// callers that have already verified the environment; modify operations
	// will reach the native side unguarded.
	SkipFeasibilityCheck bool

	// Workers sizes the native-call worker pool. Default: 4.
	Workers int

	// Logger receives structured operation logs. Default: discard.
	Logger *slog.Logger
}

const (
	defaultWorkers        = 4
	defaultFeasibilityTTL = 5 * time.Minute
)

// withDefaults fills unset fields. Does not validate Adapter; New does.
func (o Options) withDefaults() Options {
	def := DefaultTimeouts()
	if o.Timeouts.Query <= 0 {
		o.Timeouts.Query = def.Query
	}
	if o.Timeouts.Modify <= 0 {
		o.Timeouts.Modify = def.Modify
	}
	if o.Timeouts.Probe <= 0 {
		o.Timeouts.Probe = def.Probe
	}
	if o.Timeouts.Refresh <= 0 {
		o.Timeouts.Refresh = def.Refresh
	}
	if o.FeasibilityTTL <= 0 {
		o.FeasibilityTTL = defaultFeasibilityTTL
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return o
}
