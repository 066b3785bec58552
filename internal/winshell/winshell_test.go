package winshell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/accesskit/internal/pscript"
	"github.com/joshuapare/accesskit/quickaccess"
)

func TestScriptForMapping(t *testing.T) {
	cases := []struct {
		kind   quickaccess.OpKind
		cat    quickaccess.Category
		script pscript.Script
		ok     bool
	}{
		{quickaccess.OpQuery, quickaccess.RecentFiles, pscript.QueryRecentFile, true},
		{quickaccess.OpQuery, quickaccess.FrequentFolders, pscript.QueryFrequentFolder, true},
		{quickaccess.OpQuery, quickaccess.All, pscript.QueryQuickAccess, true},
		{quickaccess.OpAdd, quickaccess.FrequentFolders, pscript.PinToFrequentFolder, true},
		{quickaccess.OpRemove, quickaccess.RecentFiles, pscript.RemoveRecentFile, true},
		{quickaccess.OpRemove, quickaccess.FrequentFolders, pscript.UnpinFromFrequentFolder, true},
		{quickaccess.OpEmpty, quickaccess.FrequentFolders, pscript.EmptyPinnedFolders, true},
		{quickaccess.OpRefresh, quickaccess.All, pscript.RefreshExplorer, true},
		{quickaccess.OpProbeQuery, quickaccess.All, pscript.CheckQueryFeasible, true},
		{quickaccess.OpProbeModify, quickaccess.All, pscript.CheckPinUnpinFeasible, true},
	}
	for _, tc := range cases {
		script, ok := scriptFor(tc.kind, tc.cat)
		require.Equal(t, tc.ok, ok, "%s/%s", tc.kind, tc.cat)
		require.Equal(t, tc.script, script, "%s/%s", tc.kind, tc.cat)
	}
}

// Recent-file add and recent clear go through SHAddToRecentDocs, not the
// interpreter.
func TestScriptForDirectAPIKinds(t *testing.T) {
	_, ok := scriptFor(quickaccess.OpAdd, quickaccess.RecentFiles)
	require.False(t, ok)
	_, ok = scriptFor(quickaccess.OpEmpty, quickaccess.RecentFiles)
	require.False(t, ok)
	_, ok = scriptFor(quickaccess.OpVisibility, quickaccess.RecentFiles)
	require.False(t, ok)
}
