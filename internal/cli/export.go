package cli

import (
	"bytes"
	"fmt"

	"github.com/jbonatakis/cabinlog/internal/export"
	"github.com/jbonatakis/cabinlog/internal/fsutil"
	"github.com/spf13/cobra"
)

const defaultExportFile = "viajes.xlsx"

func newExportCmd(e *env) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all trips and anomalies to an Excel workbook",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := e.openState(cmd.Context())
			if err != nil {
				return err
			}
			trips := state.Trips()
			var buf bytes.Buffer
			if err := export.WriteXLSX(&buf, trips); err != nil {
				return err
			}
			path := e.resolvePath(out, defaultExportFile)
			if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export %s: %w", path, err)
			}
			printSuccess(e.stdout, fmt.Sprintf("exported %d trips to %s", len(trips), path))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default: "+defaultExportFile+")")
	return cmd
}
