// Package acceptance exercises the full operation engine end to end over the
// in-memory adapter: feasibility, caching, timeouts, and mutations together,
// the way a consuming application drives them.
package acceptance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/accesskit/internal/testutil"
	"github.com/joshuapare/accesskit/quickaccess"
)

// newSession builds a fake-backed manager for one test scenario.
func newSession(t *testing.T) (*quickaccess.Manager, *testutil.FakeAdapter) {
	t.Helper()
	fake := testutil.NewFakeAdapter()
	mgr := testutil.NewManager(t, fake)
	return mgr, fake
}

// makeFiles creates n empty files and returns their paths.
func makeFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, "file"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(paths[i], nil, 0o644))
	}
	return paths
}

// makeDirs creates n directories and returns their paths.
func makeDirs(t *testing.T, n int) []string {
	t.Helper()
	base := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(base, "dir"+string(rune('a'+i)))
		require.NoError(t, os.Mkdir(paths[i], 0o755))
	}
	return paths
}

// paths extracts the path of every item.
func paths(items []quickaccess.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Path
	}
	return out
}
