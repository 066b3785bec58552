package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var queryMissingOnly bool

func init() {
	cmd := newQueryCmd()
	cmd.Flags().
		BoolVar(&queryMissingOnly, "missing", false, "Only show items whose path no longer exists on disk")
	rootCmd.AddCommand(cmd)
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [recent|frequent|all]",
		Short: "List Quick Access items",
		Long: `The query command lists the items of one or both Quick Access lists.

Example:
  qactl query
  qactl query recent
  qactl query frequent --json
  qactl query all --missing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := "all"
			if len(args) == 1 {
				category = args[0]
			}
			return runQuery(cmd.Context(), category)
		},
	}
}

type queryRow struct {
	Path          string `json:"path"`
	Category      string `json:"category"`
	ExistsOnDisk  bool   `json:"exists_on_disk"`
	SystemDefault bool   `json:"system_default,omitempty"`
}

func runQuery(ctx context.Context, category string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	printVerbose("Querying %s\n", cat)
	items, err := mgr.Query(ctx, cat)
	if err != nil {
		return fmt.Errorf("failed to query: %w", err)
	}

	rows := make([]queryRow, 0, len(items))
	for _, it := range items {
		if queryMissingOnly && it.ExistsOnDisk {
			continue
		}
		rows = append(rows, queryRow{
			Path:          it.Path,
			Category:      it.Category.String(),
			ExistsOnDisk:  it.ExistsOnDisk,
			SystemDefault: it.SystemDefault,
		})
	}

	if jsonOut {
		return printJSON(rows)
	}
	for _, row := range rows {
		marker := " "
		if !row.ExistsOnDisk {
			marker = "!"
		}
		printInfo("%s %-16s %s\n", marker, row.Category, row.Path)
	}
	printInfo("%d item(s)\n", len(rows))
	return nil
}
