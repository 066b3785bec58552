package quickaccess

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrNotFeasible indicates an operation was attempted while the
	// corresponding capability flag is false. Not retryable without first
	// calling Fix and rechecking.
	ErrNotFeasible = errors.New("quickaccess: operation not feasible")

	// ErrTimeout indicates a native call exceeded its deadline. The outcome
	// of the native side effect is unknown; re-query before retrying.
	ErrTimeout = errors.New("quickaccess: operation timed out")

	// ErrHandleCreate indicates execution-handle creation failed. Treated as
	// a feasibility signal; callers should Fix and force a recheck.
	ErrHandleCreate = errors.New("quickaccess: execution handle creation failed")

	// ErrStaleHandle indicates a cached execution handle no longer works
	// (for example, its backing script was removed). The Manager invalidates
	// and retries once on this error.
	ErrStaleHandle = errors.New("quickaccess: stale execution handle")

	// ErrInvalidPath indicates a path argument failed validation.
	ErrInvalidPath = errors.New("quickaccess: invalid path")

	// ErrMissingParameter indicates a required argument was absent.
	ErrMissingParameter = errors.New("quickaccess: missing parameter")

	// ErrUnsupported indicates the operation is not available on this
	// platform or Windows build.
	ErrUnsupported = errors.New("quickaccess: unsupported on this system")
)

// TimeoutError reports a native call that exceeded its deadline. It carries
// the operation kind and observed elapsed time, and matches ErrTimeout via
// errors.Is.
type TimeoutError struct {
	Kind    OpKind
	Limit   time.Duration
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("quickaccess: %s timed out after %s (limit %s)", e.Kind, e.Elapsed.Round(time.Millisecond), e.Limit)
}

// Unwrap makes errors.Is(err, ErrTimeout) true.
func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// NativeError reports a failure from the native operation adapter: permission
// denied, a missing item on a non-idempotent path, malformed script output.
// Code carries the underlying exit status or API error code for diagnostics.
type NativeError struct {
	Kind    OpKind
	Code    int
	Message string
}

func (e *NativeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quickaccess: native %s operation failed (code %d)", e.Kind, e.Code)
	}
	return fmt.Sprintf("quickaccess: native %s operation failed (code %d): %s", e.Kind, e.Code, e.Message)
}

// BatchError reports a partially failed batch operation. Items that succeeded
// stayed applied; Failed maps each failed path to its error.
type BatchError struct {
	Failed map[string]error
}

func (e *BatchError) Error() string {
	paths := make([]string, 0, len(e.Failed))
	for p := range e.Failed {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return fmt.Sprintf("quickaccess: %d of batch items failed: %v", len(e.Failed), paths)
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, err := range e.Failed {
		errs = append(errs, err)
	}
	return errs
}
