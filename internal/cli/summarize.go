package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/spf13/cobra"
)

func newSummarizeCmd(e *env) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "summarize <trip>",
		Short: "Generate an AI summary of a trip's anomalies",
		Long: `Asks Gemini (GEMINI_API_KEY) for a short Spanish report of the trip's anomalies and
prints it. Use --save to store it on the trip.`,
		Args: exactArgs(1, "<trip>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := e.findTrip(ctx, args[0])
			if err != nil {
				return err
			}
			text := e.summarizeWithSpinner(ctx, t.Anomalies)
			fmt.Fprintln(e.stdout, text)
			if !save {
				return nil
			}
			if err := e.state.SetSummary(ctx, t.ID, text); err != nil {
				return err
			}
			printSuccess(e.stderr, "summary saved on "+t.Code)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store the summary on the trip")
	return cmd
}

func (e *env) summarizeWithSpinner(ctx context.Context, anomalies []trip.Anomaly) string {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(e.stderr))
	s.Suffix = " Generating AI summary..."
	s.Start()
	defer s.Stop()
	return e.requester(ctx).Summarize(ctx, anomalies)
}
