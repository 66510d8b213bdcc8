// Package app owns the in-memory trip collection and persists it after every mutation.
package app

import (
	"context"
	"fmt"

	"github.com/jbonatakis/cabinlog/internal/trip"
	"go.uber.org/zap"
)

// Store is the durable side of the collection.
type Store interface {
	Load(ctx context.Context) []trip.Trip
	Save(ctx context.Context, trips []trip.Trip) error
}

// State is the single owner of the trip collection. Views mutate it only through its
// methods. A failed save is logged and returned, but the in-memory change stands.
type State struct {
	store  Store
	logger *zap.Logger
	trips  *trip.Collection
}

func Open(ctx context.Context, store Store, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		store:  store,
		logger: logger,
		trips:  trip.NewCollection(store.Load(ctx)),
	}
}

func (s *State) Trips() []trip.Trip {
	return s.trips.List()
}

// Trip resolves ref as an id, code or unique code prefix.
func (s *State) Trip(ref string) (trip.Trip, bool) {
	return s.trips.Find(ref)
}

// SaveTrip creates or updates draft and persists the collection.
func (s *State) SaveTrip(ctx context.Context, draft trip.Trip) (trip.Trip, error) {
	created := !draft.IsPersisted()
	if !created {
		_, exists := s.trips.Get(draft.ID)
		created = !exists
	}
	saved := s.trips.CreateOrUpdate(draft)
	s.logger.Info("trip saved",
		zap.String("id", saved.ID),
		zap.String("code", saved.Code),
		zap.Bool("created", created),
		zap.Int("anomalies", len(saved.Anomalies)),
	)
	return saved, s.persist(ctx)
}

// DeleteTrip removes the trip with the given id. Unknown ids are a no-op and are not persisted.
func (s *State) DeleteTrip(ctx context.Context, id string) (bool, error) {
	if !s.trips.Delete(id) {
		return false, nil
	}
	s.logger.Info("trip deleted", zap.String("id", id))
	return true, s.persist(ctx)
}

// SetSummary stores an accepted AI summary on a persisted trip.
func (s *State) SetSummary(ctx context.Context, id, text string) error {
	if !s.trips.SetSummary(id, text) {
		return fmt.Errorf("trip %s: %w", id, ErrTripNotFound)
	}
	return s.persist(ctx)
}

func (s *State) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.trips.List()); err != nil {
		s.logger.Warn("persist trips failed", zap.Error(err))
		return fmt.Errorf("persist trips: %w", err)
	}
	return nil
}
