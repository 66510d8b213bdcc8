package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List inspectable elements and their defects",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			entries := e.catalog.Entries()
			if format != formatHuman {
				return writeStructured(e.stdout, format, entries)
			}
			for _, el := range entries {
				heading(e.stdout, el.Name)
				for _, d := range el.Defects {
					fmt.Fprintf(e.stdout, "  %-3s  %s\n", severityColor(d.Severity).Sprint(d.Severity), d.Name)
				}
			}
			return nil
		},
	}
	addOutputFlag(cmd, &format)
	return cmd
}
