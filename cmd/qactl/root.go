package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/accesskit/pkg/qa"
	"github.com/joshuapare/accesskit/quickaccess"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	skipCheck bool
	opTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "qactl",
	Short: "Inspect and manipulate the Windows Quick Access lists",
	Long: `qactl manages the Quick Access section of Windows File Explorer:
the recent files list and the pinned/frequent folders list. It can query,
pin, unpin, clear, and toggle the visibility of both lists, with every
native call bounded by a timeout.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		BoolVar(&skipCheck, "skip-check", false, "Skip the feasibility check (environment already verified)")
	rootCmd.PersistentFlags().
		DurationVar(&opTimeout, "timeout", 0, "Override the per-call native timeout (0 uses per-kind defaults)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newManager builds the library entry point over the platform adapter.
func newManager(ctx context.Context) (*quickaccess.Manager, error) {
	opts := quickaccess.Options{
		SkipFeasibilityCheck: skipCheck,
	}
	if opTimeout > 0 {
		opts.Timeouts = quickaccess.Timeouts{
			Query:   opTimeout,
			Modify:  opTimeout,
			Probe:   opTimeout,
			Refresh: opTimeout,
		}
	}
	if verbose && !quiet {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return qa.OpenWithOptions(ctx, opts)
}

// parseCategory maps the CLI spelling to a category.
func parseCategory(s string) (quickaccess.Category, error) {
	switch s {
	case "recent", "recent-files":
		return quickaccess.RecentFiles, nil
	case "frequent", "frequent-folders":
		return quickaccess.FrequentFolders, nil
	case "all":
		return quickaccess.All, nil
	default:
		return 0, fmt.Errorf("unknown category %q (want recent, frequent, or all)", s)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
