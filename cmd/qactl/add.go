package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/accesskit/quickaccess"
)

var addForceUpdate bool

func init() {
	cmd := newAddCmd()
	cmd.Flags().
		BoolVar(&addForceUpdate, "force-update", false, "Refresh Explorer views so the change is visible immediately")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <recent|frequent> <path>",
		Short: "Add a file to recent files or pin a folder",
		Long: `The add command adds a file to the recent files list, or pins a folder
to the frequent folders list. The path must exist and match the category:
files for recent, directories for frequent.

Example:
  qactl add recent C:\docs\report.docx
  qactl add frequent C:\work\project --force-update`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), args[0], args[1])
		},
	}
}

func runAdd(ctx context.Context, category, path string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}
	if cat == quickaccess.All {
		return fmt.Errorf("add needs a concrete category: recent or frequent")
	}

	mgr, err := newManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	printVerbose("Adding %s to %s\n", path, cat)
	if err := mgr.AddItem(ctx, path, cat, addForceUpdate); err != nil {
		return fmt.Errorf("failed to add: %w", err)
	}
	printInfo("Added %s\n", path)
	return nil
}
