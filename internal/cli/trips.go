package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jbonatakis/cabinlog/internal/app"
	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/maps"
	"github.com/jbonatakis/cabinlog/internal/report"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
	"github.com/spf13/cobra"
)

func newListCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trips, most recent first",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			state, err := e.openState(cmd.Context())
			if err != nil {
				return err
			}
			trips := state.Trips()
			if format != formatHuman {
				return writeStructured(e.stdout, format, trips)
			}
			if len(trips) == 0 {
				fmt.Fprintln(e.stdout, "no trips recorded (run `cabinlog new`)")
				return nil
			}
			w := tabwriter.NewWriter(e.stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tLINE\tTRACK\tDATE\tTECHNICIAN\tPK\tANOMALIES")
			for _, t := range trips {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s-%s\t%s\n",
					t.Code, t.Line, t.Track, report.FormatDate(t.Date), t.Technician,
					t.PKStart, t.PKEnd, countsLabel(t.Anomalies))
			}
			return w.Flush()
		},
	}
	addOutputFlag(cmd, &format)
	return cmd
}

func countsLabel(list trip.Anomalies) string {
	if len(list) == 0 {
		return "0"
	}
	counts := list.Counts()
	parts := []string{fmt.Sprintf("%d", len(list))}
	for _, sev := range catalog.Severities() {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", sev, n))
		}
	}
	return strings.Join(parts, " ")
}

func newShowCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <trip>",
		Short: "Show one trip by id or code",
		Args:  exactArgs(1, "<trip>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			t, err := e.findTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format != formatHuman {
				return writeStructured(e.stdout, format, t)
			}
			printTrip(e.stdout, t, e.mapsKey())
			return nil
		},
	}
	addOutputFlag(cmd, &format)
	return cmd
}

func printTrip(w io.Writer, t trip.Trip, mapsKey string) {
	heading(w, t.Code)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", t.ID)
	fmt.Fprintf(tw, "line:\t%s\n", t.Line)
	fmt.Fprintf(tw, "track:\t%s\n", t.Track)
	fmt.Fprintf(tw, "date:\t%s\n", report.FormatDate(t.Date))
	fmt.Fprintf(tw, "technician:\t%s\n", t.Technician)
	fmt.Fprintf(tw, "pk:\t%s - %s\n", t.PKStart, t.PKEnd)
	_ = tw.Flush()

	fmt.Fprintln(w)
	heading(w, fmt.Sprintf("Anomalies (%d)", len(t.Anomalies)))
	if len(t.Anomalies) == 0 {
		fmt.Fprintln(w, "none")
	}
	for _, a := range t.Anomalies {
		fmt.Fprintf(w, "- %s %s / %s  PK %s  [%s]\n", severityColor(a.Level).Sprint(a.Level), a.Element, a.Defect, a.PK, a.ID)
		if a.Location != nil {
			fmt.Fprintf(w, "    location: %.6f, %.6f\n", a.Location.Lat, a.Location.Lng)
			if img, ok := maps.StaticImageURL(mapsKey, *a.Location); ok {
				fmt.Fprintf(w, "    satellite: %s\n", img)
			}
		}
		if a.Notes != "" {
			fmt.Fprintf(w, "    notes: %s\n", a.Notes)
		}
		if a.Photo != "" {
			fmt.Fprintln(w, "    photo: attached")
		}
	}

	if t.AISummary != "" {
		fmt.Fprintln(w)
		heading(w, "AI summary")
		fmt.Fprintln(w, strings.TrimRight(t.AISummary, "\n"))
	}
}

func (e *env) findTrip(ctx context.Context, ref string) (trip.Trip, error) {
	state, err := e.openState(ctx)
	if err != nil {
		return trip.Trip{}, err
	}
	t, ok := state.Trip(ref)
	if !ok {
		return trip.Trip{}, fmt.Errorf("trip %q: %w", ref, app.ErrTripNotFound)
	}
	return t, nil
}

func newNewCmd(e *env) *cobra.Command {
	var (
		details   trip.Details
		summarize bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Record a new trip",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := e.openState(ctx)
			if err != nil {
				return err
			}
			flow := wizard.New(e.catalog, e.now())
			if details.Date == "" {
				details.Date = flow.Draft().Date
			}
			if err := flow.SetDetails(details); err != nil {
				return err
			}
			if err := flow.Next(); err != nil {
				return fieldUsageError(err)
			}
			if err := flow.Next(); err != nil {
				return err
			}
			if summarize {
				if err := flow.SetSummary(e.summarizeWithSpinner(ctx, flow.Draft().Anomalies)); err != nil {
					return err
				}
			}
			saved, err := flow.Finalize(ctx, state)
			if err != nil {
				return err
			}
			printSuccess(e.stdout, "created trip "+saved.Code)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&details.Line, "line", "", "line")
	f.StringVar(&details.Track, "track", "", "track")
	f.StringVar(&details.Date, "date", "", "trip date YYYY-MM-DD (default: today)")
	f.StringVar(&details.Technician, "technician", "", "technician name")
	f.StringVar(&details.PKStart, "pk-start", "", "starting PK (required)")
	f.StringVar(&details.PKEnd, "pk-end", "", "ending PK (required)")
	f.BoolVar(&summarize, "summarize", false, "request an AI summary before saving")
	return cmd
}

// fieldUsageError turns form validation errors into a usage error.
func fieldUsageError(err error) error {
	if fe, ok := trip.AsFieldErrors(err); ok {
		return UsageError{Message: fe.Error()}
	}
	return err
}

func newDeleteCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <trip>",
		Short: "Delete a trip",
		Args:  exactArgs(1, "<trip>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := e.findTrip(ctx, args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(e.stdin, e.stdout, fmt.Sprintf("Delete trip %s? This cannot be undone. [y/N] ", t.Code)) {
				fmt.Fprintln(e.stdout, "aborted")
				return nil
			}
			if _, err := e.state.DeleteTrip(ctx, t.ID); err != nil {
				return err
			}
			printSuccess(e.stdout, "deleted trip "+t.Code)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}
