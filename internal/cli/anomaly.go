package cli

import (
	"fmt"

	"github.com/jbonatakis/cabinlog/internal/photo"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/jbonatakis/cabinlog/internal/wizard"
	"github.com/spf13/cobra"
)

func newAnomalyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anomaly",
		Short: "Add or remove anomalies on a saved trip",
	}
	cmd.AddCommand(newAnomalyAddCmd(e), newAnomalyRmCmd(e))
	return cmd
}

func newAnomalyAddCmd(e *env) *cobra.Command {
	var (
		in        trip.AnomalyInput
		photoPath string
		lat, lng  float64
	)
	cmd := &cobra.Command{
		Use:   "add <trip>",
		Short: "Add an anomaly to a trip",
		Long: `Adds one anomaly. The severity level comes from the catalog entry for the
element/defect pair (see ` + "`cabinlog catalog`" + `).`,
		Args: exactArgs(1, "<trip>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := e.findTrip(ctx, args[0])
			if err != nil {
				return err
			}
			if photoPath != "" {
				uri, err := photo.Load(photoPath, e.photoOptions())
				if err != nil {
					return err
				}
				in.Photo = uri
			}
			latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
			if latSet != lngSet {
				return UsageError{Message: "--lat and --lng must be given together"}
			}
			if latSet {
				in.Location = &trip.Location{Lat: lat, Lng: lng}
			}

			flow := wizard.Edit(e.catalog, t, wizard.StepAnomalies)
			a, err := flow.AddAnomaly(in)
			if err != nil {
				return fieldUsageError(err)
			}
			if err := flow.Next(); err != nil {
				return err
			}
			if _, err := flow.Finalize(ctx, e.state); err != nil {
				return err
			}
			printSuccess(e.stdout, fmt.Sprintf("added %s anomaly %s to %s", a.Level, a.ID, t.Code))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Element, "element", "", "catalog element (required)")
	f.StringVar(&in.Defect, "defect", "", "catalog defect of the element (required)")
	f.StringVar(&in.PK, "pk", "", "PK where the anomaly was seen")
	f.StringVar(&in.Notes, "notes", "", "free-text notes")
	f.StringVar(&photoPath, "photo", "", "path to an image to attach")
	f.Float64Var(&lat, "lat", 0, "latitude")
	f.Float64Var(&lng, "lng", 0, "longitude")
	return cmd
}

func newAnomalyRmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <trip> <anomaly-id>",
		Short: "Remove an anomaly from a trip",
		Args:  exactArgs(2, "<trip> <anomaly-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := e.findTrip(ctx, args[0])
			if err != nil {
				return err
			}
			flow := wizard.Edit(e.catalog, t, wizard.StepAnomalies)
			removed, err := flow.RemoveAnomaly(args[1])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("anomaly %q: %w", args[1], wizard.ErrAnomalyNotFound)
			}
			if err := flow.Next(); err != nil {
				return err
			}
			if _, err := flow.Finalize(ctx, e.state); err != nil {
				return err
			}
			printSuccess(e.stdout, fmt.Sprintf("removed anomaly %s from %s", args[1], t.Code))
			return nil
		},
	}
}
