// Package winshell implements the native operation adapter on Windows: it
// drives the shell namespace through PowerShell scripts, the recent-docs
// Win32 API, and the Explorer registry values.
//
// On other platforms every operation reports ErrUnsupported so the library,
// its tests, and its tooling build everywhere.
package winshell

import (
	"github.com/joshuapare/accesskit/internal/pscript"
	"github.com/joshuapare/accesskit/quickaccess"
)

// scriptFor maps an operation kind and category to the script that performs
// it. Kinds handled by direct API calls (recent-file add, recent clear) have
// no script and return ok=false.
func scriptFor(kind quickaccess.OpKind, cat quickaccess.Category) (pscript.Script, bool) {
	switch kind {
	case quickaccess.OpQuery:
		switch cat {
		case quickaccess.RecentFiles:
			return pscript.QueryRecentFile, true
		case quickaccess.FrequentFolders:
			return pscript.QueryFrequentFolder, true
		default:
			return pscript.QueryQuickAccess, true
		}
	case quickaccess.OpAdd:
		if cat == quickaccess.FrequentFolders {
			return pscript.PinToFrequentFolder, true
		}
		return 0, false
	case quickaccess.OpRemove:
		if cat == quickaccess.FrequentFolders {
			return pscript.UnpinFromFrequentFolder, true
		}
		return pscript.RemoveRecentFile, true
	case quickaccess.OpEmpty:
		if cat == quickaccess.FrequentFolders {
			return pscript.EmptyPinnedFolders, true
		}
		return 0, false
	case quickaccess.OpRefresh:
		return pscript.RefreshExplorer, true
	case quickaccess.OpProbeQuery:
		return pscript.CheckQueryFeasible, true
	case quickaccess.OpProbeModify:
		return pscript.CheckPinUnpinFeasible, true
	default:
		return 0, false
	}
}
