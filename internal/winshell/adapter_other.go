//go:build !windows

package winshell

import (
	"context"
	"fmt"

	"github.com/joshuapare/accesskit/quickaccess"
)

// Adapter is the non-Windows stub. Every operation reports ErrUnsupported;
// it exists so the library and its tooling build on any platform.
type Adapter struct{}

// NewAdapter returns the native adapter for this platform.
func NewAdapter() quickaccess.Adapter {
	return &Adapter{}
}

func unsupported(op string) error {
	return fmt.Errorf("winshell: %s: %w", op, quickaccess.ErrUnsupported)
}

func (a *Adapter) NewExecutionHandle(ctx context.Context, kind quickaccess.OpKind, cat quickaccess.Category) (*quickaccess.ExecutionHandle, error) {
	return nil, unsupported("new execution handle")
}

func (a *Adapter) ReadItems(ctx context.Context, h *quickaccess.ExecutionHandle, cat quickaccess.Category) ([]quickaccess.Item, error) {
	return nil, unsupported("read items")
}

func (a *Adapter) RunScript(ctx context.Context, h *quickaccess.ExecutionHandle, args []string) (quickaccess.ScriptOutput, error) {
	return quickaccess.ScriptOutput{}, unsupported("run script")
}

func (a *Adapter) InvokeVerb(ctx context.Context, kind quickaccess.OpKind, path string) error {
	return unsupported("invoke verb")
}

func (a *Adapter) RefreshViews(ctx context.Context) error {
	return unsupported("refresh views")
}

func (a *Adapter) ReadVisibility(ctx context.Context, cat quickaccess.Category) (bool, error) {
	return false, unsupported("read visibility")
}

func (a *Adapter) WriteVisibility(ctx context.Context, cat quickaccess.Category, visible bool) error {
	return unsupported("write visibility")
}

func (a *Adapter) FixExecutionPolicy(ctx context.Context) error {
	return unsupported("fix execution policy")
}
