package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/accesskit/quickaccess"
)

func init() {
	rootCmd.AddCommand(newRemoveCmd())
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <recent|frequent> <path>",
		Short: "Remove a file from recent files or unpin a folder",
		Long: `The remove command removes a file from the recent files list, or unpins
a folder from the frequent folders list. Removing an item that is not
listed succeeds without doing anything.

Example:
  qactl remove recent C:\docs\report.docx
  qactl remove frequent C:\work\project`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), args[0], args[1])
		},
	}
}

func runRemove(ctx context.Context, category, path string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}
	if cat == quickaccess.All {
		return fmt.Errorf("remove needs a concrete category: recent or frequent")
	}

	mgr, err := newManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	printVerbose("Removing %s from %s\n", path, cat)
	if err := mgr.RemoveItem(ctx, path, cat); err != nil {
		return fmt.Errorf("failed to remove: %w", err)
	}
	printInfo("Removed %s\n", path)
	return nil
}
