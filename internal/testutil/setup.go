package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/joshuapare/accesskit/quickaccess"
)

// FastTimeouts returns deadlines short enough that timeout tests finish
// quickly but long enough that healthy fake calls never trip them.
func FastTimeouts() quickaccess.Timeouts {
	return quickaccess.Timeouts{
		Query:   200 * time.Millisecond,
		Modify:  400 * time.Millisecond,
		Probe:   400 * time.Millisecond,
		Refresh: 200 * time.Millisecond,
	}
}

// NewManager builds a Manager over the fake with fast timeouts.
// Fails the test on construction errors.
//
// Example:
//
//	fake := testutil.NewFakeAdapter()
//	mgr := testutil.NewManager(t, fake)
func NewManager(t *testing.T, fake *FakeAdapter) *quickaccess.Manager {
	t.Helper()
	return NewManagerOpts(t, quickaccess.Options{
		Adapter:  fake,
		Timeouts: FastTimeouts(),
	})
}

// NewManagerOpts builds a Manager with explicit options, failing the test on
// construction errors.
func NewManagerOpts(t *testing.T, opts quickaccess.Options) *quickaccess.Manager {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mgr, err := quickaccess.New(ctx, opts)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return mgr
}
