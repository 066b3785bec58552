package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var feasibleFix bool

func init() {
	cmd := newFeasibleCmd()
	cmd.Flags().
		BoolVar(&feasibleFix, "fix", false, "Attempt to relax the PowerShell execution policy, then recheck")
	rootCmd.AddCommand(cmd)
}

func newFeasibleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feasible",
		Short: "Check whether Quick Access operations work in this environment",
		Long: `The feasible command probes whether querying and modifying Quick Access
currently work: group policy, the PowerShell execution policy, or a
non-standard Windows build can block either. With --fix it attempts to
relax the per-user execution policy first, which resolves the most
common block.

Example:
  qactl feasible
  qactl feasible --fix`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeasible(cmd.Context())
		},
	}
}

func runFeasible(ctx context.Context) error {
	// Construction already fails when querying is impossible, so build with
	// the check skipped and probe explicitly for the full picture.
	skipCheck = true
	mgr, err := newManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	if feasibleFix {
		printVerbose("Attempting execution policy fix\n")
		if err := mgr.Fix(ctx); err != nil {
			printError("fix failed: %v\n", err)
		}
	}

	st, err := mgr.ForceRecheck(ctx)
	if err != nil {
		return fmt.Errorf("failed to check feasibility: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"can_query":  st.CanQuery,
			"can_modify": st.CanModify,
			"checked_at": st.CheckedAt,
		})
	}
	printInfo("query:  %s\n", feasibleWord(st.CanQuery))
	printInfo("modify: %s\n", feasibleWord(st.CanModify))
	if !st.CanModify && !feasibleFix {
		printInfo("hint: qactl feasible --fix may resolve an execution policy block\n")
	}
	return nil
}

func feasibleWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "blocked"
}
