//go:build windows

package winshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/accesskit/internal/pscript"
	"github.com/joshuapare/accesskit/quickaccess"
)

const (
	explorerKeyPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer`
	showRecentValue = "ShowRecent"
	showFrequent    = "ShowFrequent"

	// Per-user PowerShell execution policy location. Writing RemoteSigned
	// here is what Set-ExecutionPolicy -Scope CurrentUser persists.
	psPolicyKeyPath = `SOFTWARE\Microsoft\PowerShell\1\ShellIds\Microsoft.PowerShell`
	psPolicyValue   = "ExecutionPolicy"

	// SHARD_PATHW flag for SHAddToRecentDocs.
	shardPathW = 0x0000_0003

	// Jump-list store backing the frequent-folders history. Unpinning alone
	// leaves this behind and Explorer repopulates the list from it.
	frequentJumpListFile = "f01b4d95cf55d32a.automaticDestinations-ms"
)

var (
	shell32             = windows.NewLazySystemDLL("shell32.dll")
	procAddToRecentDocs = shell32.NewProc("SHAddToRecentDocs")
)

// Adapter is the Windows implementation of quickaccess.Adapter.
type Adapter struct{}

// NewAdapter returns the native adapter for this platform.
func NewAdapter() quickaccess.Adapter {
	return &Adapter{}
}

// NewExecutionHandle materializes the script backing one operation slot and
// wraps its path. The materialization cost (directory sweep, BOM-encoded
// write) is why the caller caches these.
func (a *Adapter) NewExecutionHandle(ctx context.Context, kind quickaccess.OpKind, cat quickaccess.Category) (*quickaccess.ExecutionHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	script, ok := scriptFor(kind, cat)
	if !ok {
		return nil, fmt.Errorf("winshell: no script for %s/%s: %w", kind, cat, quickaccess.ErrUnsupported)
	}
	path, err := pscript.Path(script)
	if err != nil {
		return nil, err
	}
	return &quickaccess.ExecutionHandle{
		Kind:       kind,
		Category:   cat,
		ScriptPath: path,
		CreatedAt:  time.Now(),
	}, nil
}

// RunScript invokes powershell.exe against a prepared handle. A handle whose
// backing script has been swept from the temp directory reports
// ErrStaleHandle so the caller can recreate it.
func (a *Adapter) RunScript(ctx context.Context, h *quickaccess.ExecutionHandle, args []string) (quickaccess.ScriptOutput, error) {
	if h == nil || h.ScriptPath == "" {
		return quickaccess.ScriptOutput{}, quickaccess.ErrStaleHandle
	}
	if _, err := os.Stat(h.ScriptPath); err != nil {
		return quickaccess.ScriptOutput{}, fmt.Errorf("%w: %s", quickaccess.ErrStaleHandle, h.ScriptPath)
	}

	cmdArgs := append([]string{
		"-NoProfile",
		"-ExecutionPolicy", "Bypass",
		"-File", h.ScriptPath,
	}, args...)

	cmd := exec.CommandContext(ctx, "powershell", cmdArgs...)
	cmd.SysProcAttr = &windows.SysProcAttr{HideWindow: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := quickaccess.ScriptOutput{
		Lines:  parseLines(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		return out, fmt.Errorf("winshell: powershell invocation: %w", err)
	}
	if h.Kind == quickaccess.OpEmpty && h.Category == quickaccess.FrequentFolders && out.Success() {
		removeFrequentJumpList()
	}
	return out, nil
}

// removeFrequentJumpList deletes the jump-list file so the cleared frequent
// history does not grow back from it. Best-effort: Explorer may hold the file
// open, and the next clear gets another chance.
func removeFrequentJumpList() {
	appData, err := os.UserConfigDir()
	if err != nil {
		return
	}
	path := filepath.Join(appData, "Microsoft", "Windows", "Recent", "AutomaticDestinations", frequentJumpListFile)
	_ = os.Remove(path)
}

// ReadItems enumerates one category through the query handle and attaches
// disk-existence and system-default metadata.
func (a *Adapter) ReadItems(ctx context.Context, h *quickaccess.ExecutionHandle, cat quickaccess.Category) ([]quickaccess.Item, error) {
	out, err := a.RunScript(ctx, h, nil)
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		return nil, &quickaccess.NativeError{Kind: quickaccess.OpQuery, Code: out.ExitCode, Message: out.Stderr}
	}

	defaults := defaultPinnedFolders()
	items := make([]quickaccess.Item, 0, len(out.Lines))
	for _, path := range out.Lines {
		_, statErr := os.Stat(path)
		items = append(items, quickaccess.Item{
			Path:          path,
			Category:      cat,
			ExistsOnDisk:  statErr == nil,
			SystemDefault: defaults[strings.ToLower(path)],
		})
	}
	return items, nil
}

// InvokeVerb performs the direct shell API operations that bypass the
// interpreter: adding a file to recent docs, and clearing the recent list.
func (a *Adapter) InvokeVerb(ctx context.Context, kind quickaccess.OpKind, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch kind {
	case quickaccess.OpAdd:
		return addToRecentDocs(path)
	case quickaccess.OpEmpty:
		return addToRecentDocs("")
	default:
		return fmt.Errorf("winshell: verb %s: %w", kind, quickaccess.ErrUnsupported)
	}
}

// RefreshViews asks every open Explorer window to redraw.
func (a *Adapter) RefreshViews(ctx context.Context) error {
	path, err := pscript.Path(pscript.RefreshExplorer)
	if err != nil {
		return err
	}
	h := &quickaccess.ExecutionHandle{Kind: quickaccess.OpRefresh, ScriptPath: path}
	out, err := a.RunScript(ctx, h, nil)
	if err != nil {
		return err
	}
	if !out.Success() {
		return &quickaccess.NativeError{Kind: quickaccess.OpRefresh, Code: out.ExitCode, Message: out.Stderr}
	}
	return nil
}

// ReadVisibility reads the Explorer Show* value for the category, creating
// it as visible when the machine has never written it.
func (a *Adapter) ReadVisibility(ctx context.Context, cat quickaccess.Category) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := openExplorerKey()
	if err != nil {
		return false, err
	}
	defer key.Close()

	if err := ensureVisibilityValues(key); err != nil {
		return false, err
	}
	v, _, err := key.GetIntegerValue(visibilityValue(cat))
	if err != nil {
		return false, fmt.Errorf("winshell: read visibility: %w", err)
	}
	return v != 0, nil
}

// WriteVisibility sets the Explorer Show* value for the category.
func (a *Adapter) WriteVisibility(ctx context.Context, cat quickaccess.Category, visible bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := openExplorerKey()
	if err != nil {
		return err
	}
	defer key.Close()

	if err := ensureVisibilityValues(key); err != nil {
		return err
	}
	var v uint32
	if visible {
		v = 1
	}
	if err := key.SetDWordValue(visibilityValue(cat), v); err != nil {
		return fmt.Errorf("winshell: write visibility: %w", err)
	}
	return nil
}

// FixExecutionPolicy relaxes the per-user script execution policy to
// RemoteSigned. Machine policy can still override this; callers must recheck
// feasibility to observe the outcome.
func (a *Adapter) FixExecutionPolicy(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, _, err := registry.CreateKey(registry.CURRENT_USER, psPolicyKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("winshell: open policy key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(psPolicyValue, "RemoteSigned"); err != nil {
		return fmt.Errorf("winshell: set execution policy: %w", err)
	}
	return nil
}

// --- helpers ---

func parseLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func visibilityValue(cat quickaccess.Category) string {
	if cat == quickaccess.FrequentFolders {
		return showFrequent
	}
	// All follows the recent-files flag, matching Explorer's combined view.
	return showRecentValue
}

func openExplorerKey() (registry.Key, error) {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, explorerKeyPath, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return 0, fmt.Errorf("winshell: open explorer key: %w", err)
	}
	return key, nil
}

// ensureVisibilityValues seeds missing Show* values as visible. Fresh
// profiles lack them entirely, which reads as "hidden" without this.
func ensureVisibilityValues(key registry.Key) error {
	for _, name := range []string{showRecentValue, showFrequent} {
		if _, _, err := key.GetIntegerValue(name); err != nil {
			if err := key.SetDWordValue(name, 1); err != nil {
				return fmt.Errorf("winshell: seed %s: %w", name, err)
			}
		}
	}
	return nil
}

// addToRecentDocs calls SHAddToRecentDocs with SHARD_PATHW. An empty path
// clears the whole recent list, per the API contract. The call needs a COM
// apartment on the invoking thread.
func addToRecentDocs(path string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED); err != nil {
		return fmt.Errorf("winshell: CoInitializeEx: %w", err)
	}
	defer windows.CoUninitialize()

	var arg uintptr
	if path != "" {
		wide, err := windows.UTF16PtrFromString(path)
		if err != nil {
			return fmt.Errorf("%w: %v", quickaccess.ErrInvalidPath, err)
		}
		arg = uintptr(unsafe.Pointer(wide))
	}
	// SHAddToRecentDocs has no return value.
	_, _, _ = procAddToRecentDocs.Call(uintptr(shardPathW), arg)
	return nil
}

// defaultPinnedFolders returns the lowercased set of folders Explorer pins
// by default for the current profile.
func defaultPinnedFolders() map[string]bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	defaults := make(map[string]bool, 6)
	for _, name := range []string{"Desktop", "Documents", "Downloads", "Pictures", "Music", "Videos"} {
		defaults[strings.ToLower(filepath.Join(home, name))] = true
	}
	return defaults
}
