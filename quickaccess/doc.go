// Package quickaccess manages the Windows "Quick Access" shell feature:
// recently used files and pinned/frequent folders.
//
// # Overview
//
// This package implements the asynchronous operation engine behind Quick
// Access management. The underlying OS surface is unreliable: permissions
// vary between machines, security policy can block script execution, and
// registry writes race with Explorer's own caching. Every operation is
// therefore routed through three layers before it reaches the native side:
//
//   - FeasibilityProbe: determines, and caches with a TTL, whether query and
//     modify operations are currently permitted at all.
//   - handle cache: lazily creates and reuses the expensive execution handles
//     needed to invoke the external script interpreter, with at most one
//     concurrent initialization per operation kind.
//   - governor: bounds every native call with a per-kind deadline and runs it
//     on a dedicated worker pool so a wedged interpreter can never stall the
//     caller's goroutine indefinitely.
//
// # Key Types
//
//   - Manager: the orchestrator and public surface
//   - Adapter: the narrow contract to the native side (registry, shell
//     namespace, script interpreter)
//   - Category: RecentFiles, FrequentFolders, or All
//   - Item: a single Quick Access entry produced by queries
//   - FeasibilityState: an immutable capability snapshot
//
// # Creating a Manager
//
// Most callers should use the pkg/qa facade, which supplies the native
// adapter for the platform:
//
//	mgr, err := qa.Open(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, err := mgr.Query(ctx, quickaccess.RecentFiles)
//
// New accepts Options directly for callers substituting their own Adapter.
//
// # Concurrency
//
// Modify operations on the same category are strictly serialized around their
// native phase. Queries never take the modify lock and may run concurrently
// with everything; read-your-writes is not guaranteed for a query that starts
// before a concurrent mutation completes.
//
// # Timeouts
//
// A native call that exceeds its deadline surfaces as a *TimeoutError. The
// native side effect is cancelled on a best-effort basis only: the outcome is
// unknown, and callers must re-query before retrying.
package quickaccess
