package qa

import (
	"context"

	"github.com/joshuapare/accesskit/internal/winshell"
	"github.com/joshuapare/accesskit/quickaccess"
)

// Open creates a Quick Access manager over the native adapter for this
// platform, with default options. Construction probes the environment and
// fails when Quick Access cannot be enumerated at all.
//
// Example:
//
//	mgr, err := qa.Open(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, err := mgr.Query(ctx, quickaccess.RecentFiles)
func Open(ctx context.Context) (*quickaccess.Manager, error) {
	return OpenWithOptions(ctx, quickaccess.Options{})
}

// OpenWithOptions creates a manager with explicit options. A nil
// Options.Adapter is filled with the native adapter for this platform; set it
// to substitute a test double or a custom backend.
func OpenWithOptions(ctx context.Context, opts quickaccess.Options) (*quickaccess.Manager, error) {
	if opts.Adapter == nil {
		opts.Adapter = winshell.NewAdapter()
	}
	return quickaccess.New(ctx, opts)
}
