package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/accesskit/quickaccess"
)

var (
	emptyForceUpdate bool
	emptyDefaults    bool
)

func init() {
	cmd := newEmptyCmd()
	cmd.Flags().
		BoolVar(&emptyForceUpdate, "force-update", false, "Refresh Explorer views so the change is visible immediately")
	cmd.Flags().
		BoolVar(&emptyDefaults, "include-defaults", false, "Also unpin the folders Windows pins by default")
	rootCmd.AddCommand(cmd)
}

func newEmptyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "empty [recent|frequent|all]",
		Short: "Clear a Quick Access list",
		Long: `The empty command removes every item from the chosen list. Folders that
Windows pins by default (Desktop, Downloads, ...) are kept unless
--include-defaults is given.

Items that fail to remove are reported individually; the rest of the
batch still applies.

Example:
  qactl empty recent
  qactl empty all --force-update
  qactl empty frequent --include-defaults`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := "all"
			if len(args) == 1 {
				category = args[0]
			}
			return runEmpty(cmd.Context(), category)
		},
	}
}

func runEmpty(ctx context.Context, category string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	printVerbose("Emptying %s\n", cat)
	err = mgr.EmptyItems(ctx, cat, emptyForceUpdate, emptyDefaults)

	var be *quickaccess.BatchError
	if errors.As(err, &be) {
		for path, ferr := range be.Failed {
			printError("%s: %v\n", path, ferr)
		}
		return fmt.Errorf("%d item(s) failed to remove", len(be.Failed))
	}
	if err != nil {
		return fmt.Errorf("failed to empty: %w", err)
	}
	printInfo("Emptied %s\n", cat)
	return nil
}
