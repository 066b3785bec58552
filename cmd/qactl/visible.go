package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newVisibleCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newHideCmd())
}

func newVisibleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visible [recent|frequent|all]",
		Short: "Report whether a Quick Access list is shown in Explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := "all"
			if len(args) == 1 {
				category = args[0]
			}
			return runVisible(cmd.Context(), category)
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <recent|frequent>",
		Short: "Show a Quick Access list in Explorer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetVisibility(cmd.Context(), args[0], true)
		},
	}
}

func newHideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <recent|frequent>",
		Short: "Hide a Quick Access list in Explorer",
		Long: `The hide command stops Explorer from showing the chosen list. This edits
the same Explorer settings the Folder Options dialog does and can change
how Explorer windows open; prefer it over emptying when the goal is
privacy rather than cleanup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetVisibility(cmd.Context(), args[0], false)
		},
	}
}

func runVisible(ctx context.Context, category string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	visible, err := mgr.Visible(ctx, cat)
	if err != nil {
		return fmt.Errorf("failed to read visibility: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"category": cat.String(),
			"visible":  visible,
		})
	}
	state := "hidden"
	if visible {
		state = "visible"
	}
	printInfo("%s: %s\n", cat, state)
	return nil
}

func runSetVisibility(ctx context.Context, category string, visible bool) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	if err := mgr.SetVisibility(ctx, cat, visible); err != nil {
		return fmt.Errorf("failed to set visibility: %w", err)
	}
	if visible {
		printInfo("Showing %s\n", cat)
	} else {
		printInfo("Hiding %s\n", cat)
	}
	return nil
}
