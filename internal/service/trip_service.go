package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wanderplan/internal/domain"
	"wanderplan/internal/events"
	"wanderplan/internal/models"
)

// TripService owns the trip frame (destination, duration, party, budget)
// and the trip-level budget rollup.
type TripService struct {
	trips   domain.TripRepository
	extras  domain.ExtrasRepository
	bus     domain.EventPublisher
	logger  *zerolog.Logger
	maxDays int
}

func NewTripService(trips domain.TripRepository, extras domain.ExtrasRepository, bus domain.EventPublisher, maxDays int, logger *zerolog.Logger) *TripService {
	if maxDays <= 0 {
		maxDays = models.DefaultMaxTripDays
	}
	return &TripService{
		trips:   trips,
		extras:  extras,
		bus:     bus,
		logger:  logger,
		maxDays: maxDays,
	}
}

func (s *TripService) Details(ctx context.Context) (*models.TripDetails, error) {
	return s.trips.GetDetails(ctx)
}

// SaveDetails validates and persists the trip frame. Day plans are kept
// from the stored trip; shrinking Days discards the plans of days that
// fall out of range; that trim is not recoverable.
func (s *TripService) SaveDetails(ctx context.Context, details *models.TripDetails) error {
	if strings.TrimSpace(details.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if details.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1", domain.ErrValidation)
	}
	if details.Days > s.maxDays {
		return fmt.Errorf("%w: days must not exceed %d", domain.ErrValidation, s.maxDays)
	}
	if details.People < 1 {
		return fmt.Errorf("%w: people must be at least 1", domain.ErrValidation)
	}
	if err := validateCost(details.Budget); err != nil {
		return err
	}

	current, err := s.trips.GetDetails(ctx)
	if err != nil {
		return err
	}

	// The frame form never carries plans; they belong to the stored trip.
	if details.DayPlans == nil {
		details.DayPlans = current.DayPlans
	}

	trimmed := 0
	for key, plan := range details.DayPlans {
		day, err := models.ParseDayKey(key)
		if err != nil || day < 1 || day > details.Days {
			trimmed += len(plan.Bookings)
			delete(details.DayPlans, key)
		}
	}

	// Party size changed: refresh the cached day totals.
	for key, plan := range details.DayPlans {
		plan.TotalCost = partyTotal(plan.Bookings, details.People)
		details.DayPlans[key] = plan
	}

	if err := s.trips.SaveDetails(ctx, details); err != nil {
		return err
	}

	if details.Days != current.Days {
		s.bus.PublishJSON(events.EventTripResized, events.TripEventPayload{
			Destination: details.Destination,
			Days:        details.Days,
			People:      details.People,
			DaysTrimmed: trimmed,
		})
	}
	if trimmed > 0 {
		s.logger.Warn().Int("bookings_discarded", trimmed).Int("days", details.Days).Msg("day plans trimmed on trip resize")
	}
	return nil
}

// Summary recomputes the full budget rollup from the source collections.
// Cached day totals are ignored: displayed totals are always fresh.
func (s *TripService) Summary(ctx context.Context) (*models.TripSummary, error) {
	trip, err := s.trips.GetDetails(ctx)
	if err != nil {
		return nil, err
	}

	people := trip.People
	if people < 1 {
		people = 1
	}

	summary := &models.TripSummary{
		Destination:    trip.Destination,
		Days:           trip.Days,
		People:         trip.People,
		Budget:         trip.Budget,
		BudgetForParty: trip.Budget * float64(people),
		DayTotals:      make(map[string]float64),
	}

	for key, plan := range trip.DayPlans {
		dayTotal := partyTotal(plan.Bookings, people)
		summary.DayTotals[key] = dayTotal
		summary.ActivityTotal += dayTotal
	}

	flights, err := s.extras.Flights(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range flights {
		summary.FlightTotal += f.Cost
	}

	stays, err := s.extras.Stays(ctx)
	if err != nil {
		return nil, err
	}
	for _, st := range stays {
		summary.StayTotal += st.Cost
	}

	expenses, err := s.extras.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		summary.ExpenseTotal += e.Cost
	}

	summary.TripTotal = summary.ActivityTotal + summary.FlightTotal + summary.StayTotal + summary.ExpenseTotal
	return summary, nil
}
