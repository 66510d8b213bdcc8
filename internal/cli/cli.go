// Package cli wires the cabinlog command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }

// Usage returns the root command help.
func Usage() string {
	return newRootCmd(newEnv(io.Discard, io.Discard, os.Stdin)).UsageString()
}

// Run executes the command line. args excludes the program name; no args opens the TUI.
func Run(args []string) error {
	return run(newEnv(os.Stdout, os.Stderr, os.Stdin), args)
}

func run(e *env, args []string) error {
	defer e.close()
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	root.SetIn(e.stdin)
	err := root.Execute()
	var ue UsageError
	if err != nil && !errors.As(err, &ue) && isCobraUsageError(err) {
		return UsageError{Message: err.Error()}
	}
	return err
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "cabinlog",
		Short: "Cabin-ride inspection log for railway lines",
		Long: `cabinlog records cabin-ride inspection trips: line, track, PK range and the anomalies
found along the way, with optional AI summaries and printable HTML reports.

Run without arguments to open the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd.Context(), cmd == cmd.Root())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), e)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&e.workDir, "dir", "", "project directory (default: current directory)")

	root.AddCommand(
		newListCmd(e),
		newShowCmd(e),
		newNewCmd(e),
		newAnomalyCmd(e),
		newDeleteCmd(e),
		newSummarizeCmd(e),
		newReportCmd(e),
		newEmailCmd(e),
		newExportCmd(e),
		newCatalogCmd(e),
		newConfigCmd(e),
		newVersionCmd(e),
	)
	return root
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cabinlog version",
		Args:  noArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(e.stdout, "cabinlog %s\n", Version)
			return nil
		},
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return UsageError{Message: fmt.Sprintf("%s takes no arguments", cmd.CommandPath())}
	}
	return nil
}

func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return UsageError{Message: fmt.Sprintf("%s requires exactly %d argument(s): %s", cmd.CommandPath(), n, names)}
		}
		return nil
	}
}

// isCobraUsageError reports errors cobra raises for unknown commands and flags.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag"} {
		if len(msg) >= len(prefix) && msg[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
