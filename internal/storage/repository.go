package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jbonatakis/cabinlog/internal/trip"
	"go.uber.org/zap"
)

// Repository maps the trip collection onto a Slot as a bare JSON array.
type Repository struct {
	slot   Slot
	logger *zap.Logger
}

func NewRepository(slot Slot, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{slot: slot, logger: logger}
}

// Load returns the stored trips. A missing, unreadable or unparsable value yields the
// sample trip instead; Load never fails. A stored empty array stays empty.
func (r *Repository) Load(ctx context.Context) []trip.Trip {
	b, err := r.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			r.logger.Info("no stored trips, using sample trip")
		} else {
			r.logger.Warn("read stored trips failed, using sample trip", zap.Error(err))
		}
		return []trip.Trip{trip.SampleTrip()}
	}

	trips, err := decodeTrips(b)
	if err != nil {
		r.logger.Warn("stored trips are corrupt, using sample trip", zap.Error(err))
		return []trip.Trip{trip.SampleTrip()}
	}
	r.logger.Debug("loaded trips", zap.Int("count", len(trips)))
	return trips
}

// Save overwrites the slot with the whole collection.
func (r *Repository) Save(ctx context.Context, trips []trip.Trip) error {
	if trips == nil {
		trips = []trip.Trip{}
	}
	b, err := json.MarshalIndent(trips, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trips: %w", err)
	}
	b = append(b, '\n')
	if err := r.slot.Write(ctx, b); err != nil {
		return err
	}
	r.logger.Debug("saved trips", zap.Int("count", len(trips)))
	return nil
}

func decodeTrips(b []byte) ([]trip.Trip, error) {
	dec := json.NewDecoder(bytes.NewReader(b))

	var trips []trip.Trip
	if err := dec.Decode(&trips); err != nil {
		return nil, fmt.Errorf("parse trips: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("parse trips: trailing JSON values")
		}
		return nil, fmt.Errorf("parse trips: trailing data: %w", err)
	}
	if trips == nil {
		return nil, errors.New("parse trips: value is null")
	}
	for i := range trips {
		if trips[i].Anomalies == nil {
			trips[i].Anomalies = trip.Anomalies{}
		}
	}
	return trips, nil
}
