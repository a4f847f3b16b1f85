package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wanderplan/internal/domain"
	"wanderplan/internal/events"
	"wanderplan/internal/models"
)

// ActivityService manages the reusable activity pool. Activity ids are
// derived from the creation time in milliseconds; the generator bumps by
// one on collision so ids stay unique and monotonic within a process.
type ActivityService struct {
	repo   domain.ActivityRepository
	trips  domain.TripRepository
	bus    domain.EventPublisher
	logger *zerolog.Logger

	mu     sync.Mutex
	lastID int64
}

func NewActivityService(repo domain.ActivityRepository, trips domain.TripRepository, bus domain.EventPublisher, logger *zerolog.Logger) *ActivityService {
	return &ActivityService{
		repo:   repo,
		trips:  trips,
		bus:    bus,
		logger: logger,
	}
}

func (s *ActivityService) nextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func validateCost(cost float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return fmt.Errorf("%w: cost is not a number", domain.ErrValidation)
	}
	if cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	return nil
}

func (s *ActivityService) List(ctx context.Context) ([]models.Activity, error) {
	return s.repo.List(ctx)
}

// Create appends a new activity to the pool. Title must be non-empty and
// cost non-negative; nothing is written when validation fails.
func (s *ActivityService) Create(ctx context.Context, title, description string, cost float64) (*models.Activity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if err := validateCost(cost); err != nil {
		return nil, err
	}

	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	activity := models.Activity{
		ID:          s.nextID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Cost:        cost,
	}
	activities = append(activities, activity)

	if err := s.repo.Save(ctx, activities); err != nil {
		return nil, err
	}

	s.bus.PublishJSON(events.EventActivityCreated, events.ActivityEventPayload{
		ActivityID: activity.ID,
		Title:      activity.Title,
		Cost:       activity.Cost,
	})
	s.logger.Info().Int64("activity_id", activity.ID).Str("title", activity.Title).Msg("activity created")
	return &activity, nil
}

// Update merges the non-nil fields into the activity in place. Bookings
// that snapshotted this activity are NOT touched; callers invoke
// Propagate explicitly when they want the copies rewritten.
func (s *ActivityService) Update(ctx context.Context, id int64, upd models.ActivityUpdate) (*models.Activity, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if upd.Cost != nil {
		if err := validateCost(*upd.Cost); err != nil {
			return nil, err
		}
	}

	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range activities {
		if activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: activity %d", domain.ErrNotFound, id)
	}

	if upd.Title != nil {
		activities[idx].Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		activities[idx].Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Cost != nil {
		activities[idx].Cost = *upd.Cost
	}

	if err := s.repo.Save(ctx, activities); err != nil {
		return nil, err
	}

	updated := activities[idx]
	s.bus.PublishJSON(events.EventActivityUpdated, events.ActivityEventPayload{
		ActivityID: updated.ID,
		Title:      updated.Title,
		Cost:       updated.Cost,
	})
	return &updated, nil
}

// Delete removes an activity from the pool. Absent ids are a no-op.
// Existing bookings keep their snapshotted title and cost.
func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	kept := activities[:0]
	removed := false
	for _, a := range activities {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		s.logger.Debug().Int64("activity_id", id).Msg("delete of unknown activity ignored")
		return nil
	}

	if err := s.repo.Save(ctx, kept); err != nil {
		return err
	}

	s.bus.PublishJSON(events.EventActivityDeleted, events.ActivityEventPayload{ActivityID: id})
	return nil
}

// Propagate rewrites the title/cost snapshots of every booking across all
// days that reference the activity. Times and colors are never touched.
// The rewritten trip is persisted in a single store write; if that write
// fails partway inside the store the error is reported, not retried.
func (s *ActivityService) Propagate(ctx context.Context, id int64) (int, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	var activity *models.Activity
	for i := range activities {
		if activities[i].ID == id {
			activity = &activities[i]
			break
		}
	}
	if activity == nil {
		return 0, fmt.Errorf("%w: activity %d", domain.ErrNotFound, id)
	}

	trip, err := s.trips.GetDetails(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for key, plan := range trip.DayPlans {
		changed := false
		for i := range plan.Bookings {
			if plan.Bookings[i].ActivityID != id {
				continue
			}
			plan.Bookings[i].Title = activity.Title
			plan.Bookings[i].Cost = activity.Cost
			updated++
			changed = true
		}
		if changed {
			plan.TotalCost = partyTotal(plan.Bookings, trip.People)
			trip.DayPlans[key] = plan
		}
	}

	if updated == 0 {
		return 0, nil
	}

	if err := s.trips.SaveDetails(ctx, trip); err != nil {
		return 0, fmt.Errorf("propagate activity %d: %w", id, err)
	}

	s.bus.PublishJSON(events.EventPropagationApplied, events.PropagationEventPayload{
		ActivityID:      id,
		BookingsUpdated: updated,
	})
	s.logger.Info().Int64("activity_id", id).Int("bookings_updated", updated).Msg("propagation applied")
	return updated, nil
}
