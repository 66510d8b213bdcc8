// Package wizard drives the three-step trip editing flow.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/trip"
)

type Step int

const (
	StepDetails Step = iota + 1
	StepAnomalies
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "Detalles del viaje"
	case StepAnomalies:
		return "Anomalías"
	case StepSummary:
		return "Resumen"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

var (
	ErrClosed    = errors.New("wizard is closed")
	ErrWrongStep = errors.New("operation not allowed at this step")
	ErrLastStep  = errors.New("already at the last step")

	ErrAnomalyNotFound = errors.New("anomaly not found")
)

// Saver persists a finished draft.
type Saver interface {
	SaveTrip(ctx context.Context, draft trip.Trip) (trip.Trip, error)
}

// Flow is the Details -> Anomalies -> Summary state machine over one draft trip.
// Cancel and Finalize close it; a closed flow rejects everything with ErrClosed.
type Flow struct {
	cat    catalog.Catalog
	draft  trip.Trip
	step   Step
	closed bool
}

// New starts a fresh draft dated today.
func New(cat catalog.Catalog, today time.Time) *Flow {
	return &Flow{
		cat: cat,
		draft: trip.Trip{
			Date:      today.Format(trip.DateLayout),
			Anomalies: trip.Anomalies{},
		},
		step: StepDetails,
	}
}

// Edit seeds the flow from a persisted trip, starting at step.
func Edit(cat catalog.Catalog, existing trip.Trip, step Step) *Flow {
	if step < StepDetails || step > StepSummary {
		step = StepDetails
	}
	draft := existing.Clone()
	return &Flow{cat: cat, draft: draft, step: step}
}

func (f *Flow) Step() Step {
	return f.step
}

func (f *Flow) Closed() bool {
	return f.closed
}

// Draft returns a copy of the working trip.
func (f *Flow) Draft() trip.Trip {
	return f.draft.Clone()
}

func (f *Flow) Catalog() catalog.Catalog {
	return f.cat
}

// SetDetails stages step-1 fields. Values are kept even when invalid.
func (f *Flow) SetDetails(d trip.Details) error {
	if err := f.require(StepDetails); err != nil {
		return err
	}
	f.draft.ApplyDetails(d)
	return nil
}

// Next advances one step. Leaving step 1 requires valid details; the returned
// FieldErrors leave the flow on step 1.
func (f *Flow) Next() error {
	if f.closed {
		return ErrClosed
	}
	switch f.step {
	case StepDetails:
		if err := trip.ValidateDetails(f.draft.Details()); err != nil {
			return err
		}
		f.step = StepAnomalies
	case StepAnomalies:
		f.step = StepSummary
	default:
		return ErrLastStep
	}
	return nil
}

// Back moves one step back. It is a no-op at step 1.
func (f *Flow) Back() error {
	if f.closed {
		return ErrClosed
	}
	if f.step > StepDetails {
		f.step--
	}
	return nil
}

// Cancel discards the draft without saving.
func (f *Flow) Cancel() {
	f.closed = true
	f.draft = trip.Trip{}
}

func (f *Flow) AddAnomaly(in trip.AnomalyInput) (trip.Anomaly, error) {
	if err := f.require(StepAnomalies); err != nil {
		return trip.Anomaly{}, err
	}
	a, err := trip.NewAnomaly(f.cat, in)
	if err != nil {
		return trip.Anomaly{}, err
	}
	return f.draft.Anomalies.Add(a), nil
}

// UpdateAnomaly replaces the anomaly with the given id, keeping its position.
func (f *Flow) UpdateAnomaly(id string, in trip.AnomalyInput) (trip.Anomaly, error) {
	if err := f.require(StepAnomalies); err != nil {
		return trip.Anomaly{}, err
	}
	a, err := trip.NewAnomaly(f.cat, in)
	if err != nil {
		return trip.Anomaly{}, err
	}
	a.ID = id
	if !f.draft.Anomalies.Update(a) {
		return trip.Anomaly{}, fmt.Errorf("anomaly %s: %w", id, ErrAnomalyNotFound)
	}
	return a, nil
}

func (f *Flow) RemoveAnomaly(id string) (bool, error) {
	if err := f.require(StepAnomalies); err != nil {
		return false, err
	}
	return f.draft.Anomalies.Remove(id), nil
}

// SetSummary stores an accepted AI summary on the draft.
func (f *Flow) SetSummary(text string) error {
	if err := f.require(StepSummary); err != nil {
		return err
	}
	f.draft.AISummary = text
	return nil
}

// Finalize hands the draft to saver and closes the flow. The flow closes even when
// saver reports a persistence error, since the record is already in memory.
func (f *Flow) Finalize(ctx context.Context, saver Saver) (trip.Trip, error) {
	if err := f.require(StepSummary); err != nil {
		return trip.Trip{}, err
	}
	saved, err := saver.SaveTrip(ctx, f.draft)
	f.closed = true
	f.draft = saved
	return saved, err
}

func (f *Flow) require(step Step) error {
	if f.closed {
		return ErrClosed
	}
	if f.step != step {
		return fmt.Errorf("%w: at %s, need %s", ErrWrongStep, f.step, step)
	}
	return nil
}
