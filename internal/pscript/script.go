// Package pscript generates and stores the PowerShell scripts that drive the
// Windows shell namespace behind Quick Access.
//
// Script bodies are fixed per kind and take their target path, when they need
// one, as a parameter, so a single stored file serves every invocation of its
// kind and the execution handle wrapping it stays reusable.
package pscript

import "fmt"

// Script identifies one PowerShell script kind.
type Script int

const (
	RefreshExplorer Script = iota
	QueryQuickAccess
	QueryRecentFile
	QueryFrequentFolder
	RemoveRecentFile
	PinToFrequentFolder
	UnpinFromFrequentFolder
	EmptyPinnedFolders
	CheckQueryFeasible
	CheckPinUnpinFeasible
)

// Shell namespace CLSIDs for the Quick Access surfaces. These are stable
// across Windows 10/11 but undocumented; they are the binding detail this
// package exists to contain.
const (
	quickAccessNamespace     = "shell:::{679f85cb-0220-4080-b29b-5540cc05aab6}"
	frequentFoldersNamespace = "shell:::{3936E9E4-D92C-4EEE-A85A-BC16D5EA0819}"
)

// utf8Header forces UTF-8 console output so paths with non-ASCII characters
// survive the pipe.
const utf8Header = "$OutputEncoding = [Console]::OutputEncoding = [System.Text.Encoding]::UTF8;"

const shellComObject = "$shell = New-Object -ComObject Shell.Application;"

// String returns the script kind's file-name stem.
func (s Script) String() string {
	switch s {
	case RefreshExplorer:
		return "RefreshExplorer"
	case QueryQuickAccess:
		return "QueryQuickAccess"
	case QueryRecentFile:
		return "QueryRecentFile"
	case QueryFrequentFolder:
		return "QueryFrequentFolder"
	case RemoveRecentFile:
		return "RemoveRecentFile"
	case PinToFrequentFolder:
		return "PinToFrequentFolder"
	case UnpinFromFrequentFolder:
		return "UnpinFromFrequentFolder"
	case EmptyPinnedFolders:
		return "EmptyPinnedFolders"
	case CheckQueryFeasible:
		return "CheckQueryFeasible"
	case CheckPinUnpinFeasible:
		return "CheckPinUnpinFeasible"
	default:
		return "Unknown"
	}
}

// TakesPath reports whether the script expects a target path argument.
func (s Script) TakesPath() bool {
	switch s {
	case RemoveRecentFile, PinToFrequentFolder, UnpinFromFrequentFolder:
		return true
	default:
		return false
	}
}

// Generate returns the script body for a kind.
func Generate(s Script) (string, error) {
	switch s {
	case RefreshExplorer:
		return fmt.Sprintf(`
    %s
    %s
    $windows = $shell.Windows();
    $windows | ForEach-Object { $_.Refresh() }
`, utf8Header, shellComObject), nil

	case QueryQuickAccess:
		return fmt.Sprintf(`
    %s
    %s
    $shell.Namespace('%s').Items() | ForEach-Object { $_.Path };
`, utf8Header, shellComObject, quickAccessNamespace), nil

	case QueryRecentFile:
		return fmt.Sprintf(`
    %s
    %s
    $shell.Namespace('%s').Items() | Where-Object { $_.IsFolder -eq $false } | ForEach-Object { $_.Path };
`, utf8Header, shellComObject, quickAccessNamespace), nil

	case QueryFrequentFolder:
		return fmt.Sprintf(`
    %s
    %s
    $shell.Namespace('%s').Items() | ForEach-Object { $_.Path };
`, utf8Header, shellComObject, frequentFoldersNamespace), nil

	case RemoveRecentFile:
		return fmt.Sprintf(`
    param([Parameter(Mandatory=$true)][string]$TargetPath)
    %s
    %s
    $files = $shell.Namespace('%s').Items() | Where-Object { $_.IsFolder -eq $false };
    $target = $files | Where-Object { $_.Path -eq $TargetPath };
    if ($null -eq $target) { Write-Error "item not found: $TargetPath"; exit 1 }
    $target.InvokeVerb("remove");
`, utf8Header, shellComObject, quickAccessNamespace), nil

	case PinToFrequentFolder:
		return fmt.Sprintf(`
    param([Parameter(Mandatory=$true)][string]$TargetPath)
    %s
    %s
    $shell.Namespace($TargetPath).Self.InvokeVerb("pintohome");
`, utf8Header, shellComObject), nil

	case UnpinFromFrequentFolder:
		return fmt.Sprintf(`
    param([Parameter(Mandatory=$true)][string]$TargetPath)
    %s
    %s
    $folders = $shell.Namespace('%s').Items();
    $target = $folders | Where-Object { $_.Path -eq $TargetPath };
    if ($null -eq $target) { Write-Error "item not found: $TargetPath"; exit 1 }
    $target.InvokeVerb("unpinfromhome");
`, utf8Header, shellComObject, frequentFoldersNamespace), nil

	case EmptyPinnedFolders:
		return fmt.Sprintf(`
    %s
    %s
    $shell.Namespace('%s').Items() | ForEach-Object { $_.InvokeVerb("unpinfromhome") };
`, utf8Header, shellComObject, frequentFoldersNamespace), nil

	case CheckQueryFeasible:
		// The enumeration runs in a child process that is killed on
		// timeout: a hung COM call must fail the probe, not wedge it.
		return fmt.Sprintf(`
    %s

    $timeout = 5

    $scriptBlock = {
        $shell = New-Object -ComObject Shell.Application
        $shell.Namespace('%s').Items() | ForEach-Object { $_.Path };
    }.ToString()

    $arguments = "-Command & {$scriptBlock}"
    $process = Start-Process powershell -ArgumentList $arguments -NoNewWindow -PassThru

    if (-not $process.WaitForExit($timeout * 1000)) {
        try {
            $process.Kill()
            Write-Error "probe timed out (${timeout}s)"
            exit 1
        }
        catch {
            Write-Error "failed terminating probe: $_"
            exit 1
        }
    }
    exit $process.ExitCode
`, utf8Header, quickAccessNamespace), nil

	case CheckPinUnpinFeasible:
		// Representative mutation: pin the script's own directory, then
		// unpin it, in a killed-on-timeout child.
		return fmt.Sprintf(`
    %s

    $currentPath = $PSScriptRoot

    $scriptBlock = {
        param($probePath)
        $shell = New-Object -ComObject Shell.Application
        $shell.Namespace($probePath).Self.InvokeVerb('pintohome')

        Start-Sleep -Seconds 3

        $folders = $shell.Namespace('%s').Items();
        $target = $folders | Where-Object { $_.Path -eq $probePath };
        $target.InvokeVerb('unpinfromhome');
    }.ToString()

    $arguments = "-Command & {$scriptBlock} -probePath '$currentPath'"
    $process = Start-Process powershell -ArgumentList $arguments -NoNewWindow -PassThru

    $timeout = 10
    if (-not $process.WaitForExit($timeout * 1000)) {
        try {
            $process.Kill()
            Write-Error "probe timed out (${timeout}s)"
            exit 1
        }
        catch {
            Write-Error "failed terminating probe: $_"
            exit 1
        }
    }
    exit $process.ExitCode
`, utf8Header, frequentFoldersNamespace), nil

	default:
		return "", fmt.Errorf("pscript: unknown script kind %d", int(s))
	}
}
