package cli

import (
	"fmt"

	"github.com/jbonatakis/cabinlog/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCmd(e *env) *cobra.Command {
	var (
		out  string
		open bool
	)
	cmd := &cobra.Command{
		Use:   "report <trip>",
		Short: "Write the HTML report for a trip",
		Args:  exactArgs(1, "<trip>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.findTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			publisher := e.publisher()
			var path string
			if out == "" {
				path, err = publisher.Publish(t)
			} else {
				path, err = publisher.PublishTo(t, out)
			}
			if err != nil {
				return err
			}
			printSuccess(e.stdout, "report written to "+path)

			if open {
				if err := e.openReport(path); err != nil {
					e.logger.Warn("report open failed", zap.String("path", path), zap.Error(err))
					printWarning(e.stderr, report.OpenFailureMessage(path))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default: <report.dir>/Informe_<code>.html)")
	cmd.Flags().BoolVar(&open, "open", false, "open the report in the browser")
	return cmd
}

func newEmailCmd(e *env) *cobra.Command {
	var bodyOnly bool
	cmd := &cobra.Command{
		Use:   "email <trip>",
		Short: "Print a mailto: link carrying the trip report",
		Args:  exactArgs(1, "<trip>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.findTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			body, err := report.RenderEmailBody(t)
			if err != nil {
				return err
			}
			if bodyOnly {
				fmt.Fprintln(e.stdout, body)
				return nil
			}
			fmt.Fprintln(e.stdout, report.MailtoHref(t.Code, body))
			return nil
		},
	}
	cmd.Flags().BoolVar(&bodyOnly, "body", false, "print the HTML body instead of the mailto link")
	return cmd
}
