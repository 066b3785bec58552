package pscript

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func useTempScriptDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	t.Setenv("TMP", dir)
	t.Setenv("TEMP", dir)
}

func TestPathMaterializesScriptWithBOM(t *testing.T) {
	useTempScriptDir(t)

	path, err := Path(QueryQuickAccess)
	require.NoError(t, err)
	require.Equal(t, "QueryQuickAccess.ps1", filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), len(utf8BOM))
	require.Equal(t, utf8BOM, raw[:len(utf8BOM)])

	want, err := Generate(QueryQuickAccess)
	require.NoError(t, err)
	require.Equal(t, want, string(raw[len(utf8BOM):]))
}

func TestPathReusesExistingScript(t *testing.T) {
	useTempScriptDir(t)

	first, err := Path(RefreshExplorer)
	require.NoError(t, err)

	// Mark the file so a rewrite would be observable.
	stamp := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(first, stamp, stamp))

	second, err := Path(RefreshExplorer)
	require.NoError(t, err)
	require.Equal(t, first, second)

	info, err := os.Stat(second)
	require.NoError(t, err)
	require.WithinDuration(t, stamp, info.ModTime(), time.Minute)
}

func TestDirSweepsExpiredScripts(t *testing.T) {
	useTempScriptDir(t)

	stale, err := Path(QueryRecentFile)
	require.NoError(t, err)
	fresh, err := Path(QueryFrequentFolder)
	require.NoError(t, err)

	old := time.Now().Add(-scriptExpiry - time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	_, err = Dir()
	require.NoError(t, err)

	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err), "expired script survived the sweep")
	_, err = os.Stat(fresh)
	require.NoError(t, err)
}

func TestExpiredScriptIsRegenerated(t *testing.T) {
	useTempScriptDir(t)

	path, err := Path(QueryRecentFile)
	require.NoError(t, err)
	old := time.Now().Add(-scriptExpiry - time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	again, err := Path(QueryRecentFile)
	require.NoError(t, err)
	require.Equal(t, path, again)

	info, err := os.Stat(again)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), info.ModTime(), time.Minute)
}
