package pscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var allScripts = []Script{
	RefreshExplorer,
	QueryQuickAccess,
	QueryRecentFile,
	QueryFrequentFolder,
	RemoveRecentFile,
	PinToFrequentFolder,
	UnpinFromFrequentFolder,
	EmptyPinnedFolders,
	CheckQueryFeasible,
	CheckPinUnpinFeasible,
}

func TestGenerateAllKinds(t *testing.T) {
	for _, s := range allScripts {
		body, err := Generate(s)
		require.NoError(t, err, "kind %s", s)
		require.NotEmpty(t, body, "kind %s", s)
	}
}

func TestGenerateUnknownKindFails(t *testing.T) {
	_, err := Generate(Script(99))
	require.Error(t, err)
}

func TestStringStemsAreUnique(t *testing.T) {
	seen := make(map[string]Script)
	for _, s := range allScripts {
		stem := s.String()
		require.NotEqual(t, "Unknown", stem)
		prev, dup := seen[stem]
		require.False(t, dup, "%s and %s share stem %q", prev, s, stem)
		seen[stem] = s
	}
}

func TestParameterizedScriptsDeclareTargetPath(t *testing.T) {
	for _, s := range allScripts {
		body, err := Generate(s)
		require.NoError(t, err)
		if s.TakesPath() {
			require.Contains(t, body, "$TargetPath", "kind %s", s)
			require.Contains(t, body, "param(", "kind %s", s)
		} else {
			require.NotContains(t, body, "$TargetPath", "kind %s", s)
		}
	}
}

func TestQueryScriptsTargetQuickAccessNamespace(t *testing.T) {
	for _, s := range []Script{QueryQuickAccess, QueryRecentFile, RemoveRecentFile, CheckQueryFeasible} {
		body, err := Generate(s)
		require.NoError(t, err)
		require.Contains(t, body, "679f85cb-0220-4080-b29b-5540cc05aab6", "kind %s", s)
	}
	for _, s := range []Script{QueryFrequentFolder, UnpinFromFrequentFolder, EmptyPinnedFolders, CheckPinUnpinFeasible} {
		body, err := Generate(s)
		require.NoError(t, err)
		require.Contains(t, body, "3936E9E4-D92C-4EEE-A85A-BC16D5EA0819", "kind %s", s)
	}
}

func TestMutationScriptsUseShellVerbs(t *testing.T) {
	body, err := Generate(PinToFrequentFolder)
	require.NoError(t, err)
	require.Contains(t, body, `InvokeVerb("pintohome")`)

	body, err = Generate(UnpinFromFrequentFolder)
	require.NoError(t, err)
	require.Contains(t, body, `InvokeVerb("unpinfromhome")`)

	body, err = Generate(RemoveRecentFile)
	require.NoError(t, err)
	require.Contains(t, body, `InvokeVerb("remove")`)
}

func TestProbeScriptsKillHungChild(t *testing.T) {
	for _, s := range []Script{CheckQueryFeasible, CheckPinUnpinFeasible} {
		body, err := Generate(s)
		require.NoError(t, err)
		require.Contains(t, body, "WaitForExit", "kind %s", s)
		require.Contains(t, body, "Kill()", "kind %s", s)
	}
}

func TestScriptsForceUTF8Output(t *testing.T) {
	for _, s := range allScripts {
		body, err := Generate(s)
		require.NoError(t, err)
		require.Contains(t, body, "[System.Text.Encoding]::UTF8", "kind %s", s)
	}
}

// param must be the first statement PowerShell sees or the script will treat
// the block as a call to an undefined function.
func TestParamBlockComesFirst(t *testing.T) {
	for _, s := range allScripts {
		if !s.TakesPath() {
			continue
		}
		body, err := Generate(s)
		require.NoError(t, err)
		first := strings.TrimSpace(body)
		require.True(t, strings.HasPrefix(first, "param("), "kind %s starts with %q", s, firstNonEmptyLine(body))
	}
}

func firstNonEmptyLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
