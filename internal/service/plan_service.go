package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wanderplan/internal/domain"
	"wanderplan/internal/events"
	"wanderplan/internal/grid"
	"wanderplan/internal/metrics"
	"wanderplan/internal/models"
)

// PlanService owns the booking lifecycle on the per-day calendar. Every
// mutation validates first, then rewrites the day plan and persists the
// trip in a single store write.
type PlanService struct {
	trips  domain.TripRepository
	bus    domain.EventPublisher
	logger *zerolog.Logger
}

func NewPlanService(trips domain.TripRepository, bus domain.EventPublisher, logger *zerolog.Logger) *PlanService {
	return &PlanService{
		trips:  trips,
		bus:    bus,
		logger: logger,
	}
}

func partyTotal(bookings []models.Booking, people int) float64 {
	if people < 1 {
		people = 1
	}
	total := 0.0
	for _, b := range bookings {
		total += b.Cost
	}
	return total * float64(people)
}

func (s *PlanService) loadDay(ctx context.Context, day int) (*models.TripDetails, models.DayPlan, error) {
	if day < 1 {
		return nil, models.DayPlan{}, fmt.Errorf("%w: day %d is out of range", domain.ErrValidation, day)
	}
	trip, err := s.trips.GetDetails(ctx)
	if err != nil {
		return nil, models.DayPlan{}, err
	}
	if trip.Days > 0 && day > trip.Days {
		return nil, models.DayPlan{}, fmt.Errorf("%w: day %d is outside the %d-day trip", domain.ErrValidation, day, trip.Days)
	}
	return trip, trip.Plan(day), nil
}

// Bookings returns the day's bookings in collection order.
func (s *PlanService) Bookings(ctx context.Context, day int) ([]models.Booking, error) {
	_, plan, err := s.loadDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if plan.Bookings == nil {
		return []models.Booking{}, nil
	}
	return plan.Bookings, nil
}

// Place appends a booking to the day. The time range is validated before
// any state changes; layout is not stored, it is recomputed on render.
func (s *PlanService) Place(ctx context.Context, day int, booking models.Booking) (*models.Booking, error) {
	if _, err := grid.ParseRange(booking.StartTime, booking.EndTime); err != nil {
		return nil, err
	}

	trip, plan, err := s.loadDay(ctx, day)
	if err != nil {
		return nil, err
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	plan.Bookings = append(plan.Bookings, booking)
	plan.TotalCost = partyTotal(plan.Bookings, trip.People)
	trip.SetPlan(day, plan)

	if err := s.trips.SaveDetails(ctx, trip); err != nil {
		return nil, err
	}

	s.bus.PublishJSON(events.EventBookingPlaced, events.BookingEventPayload{
		Day:        day,
		BookingID:  booking.ID,
		ActivityID: booking.ActivityID,
		Title:      booking.Title,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Cost:       booking.Cost,
	})
	s.logger.Info().Int("day", day).Str("booking_id", booking.ID).Str("title", booking.Title).Msg("booking placed")
	return &booking, nil
}

// Remove deletes the booking at the given position and returns it so the
// caller can put the activity back in the available pool.
func (s *PlanService) Remove(ctx context.Context, day, index int) (*models.Booking, error) {
	trip, plan, err := s.loadDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(plan.Bookings) {
		return nil, fmt.Errorf("%w: booking index %d on day %d", domain.ErrNotFound, index, day)
	}

	removed := plan.Bookings[index]
	plan.Bookings = append(plan.Bookings[:index], plan.Bookings[index+1:]...)
	plan.TotalCost = partyTotal(plan.Bookings, trip.People)
	trip.SetPlan(day, plan)

	if err := s.trips.SaveDetails(ctx, trip); err != nil {
		return nil, err
	}

	s.bus.PublishJSON(events.EventBookingRemoved, events.BookingEventPayload{
		Day:        day,
		BookingID:  removed.ID,
		ActivityID: removed.ActivityID,
		Title:      removed.Title,
	})
	return &removed, nil
}

// Edit replaces a booking's time range and color in place. Its position
// in the collection is preserved: position is the column tie-break.
func (s *PlanService) Edit(ctx context.Context, day int, bookingID, newStart, newEnd, newColor string) (*models.Booking, error) {
	if _, err := grid.ParseRange(newStart, newEnd); err != nil {
		return nil, err
	}

	trip, plan, err := s.loadDay(ctx, day)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range plan.Bookings {
		if plan.Bookings[i].ID == bookingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: booking %q on day %d", domain.ErrNotFound, bookingID, day)
	}

	plan.Bookings[idx].StartTime = newStart
	plan.Bookings[idx].EndTime = newEnd
	plan.Bookings[idx].Color = newColor
	plan.TotalCost = partyTotal(plan.Bookings, trip.People)
	trip.SetPlan(day, plan)

	if err := s.trips.SaveDetails(ctx, trip); err != nil {
		return nil, err
	}

	edited := plan.Bookings[idx]
	s.bus.PublishJSON(events.EventBookingUpdated, events.BookingEventPayload{
		Day:       day,
		BookingID: edited.ID,
		Title:     edited.Title,
		StartTime: edited.StartTime,
		EndTime:   edited.EndTime,
	})
	return &edited, nil
}

// Grid computes the day's schedule layout from the current booking list.
func (s *PlanService) Grid(ctx context.Context, day int) (*grid.Grid, error) {
	bookings, err := s.Bookings(ctx, day)
	if err != nil {
		return nil, err
	}
	g, err := grid.Compute(bookings)
	if err != nil {
		return nil, err
	}
	metrics.IncGridComputation()
	return g, nil
}

// DayTotal is the per-person activity cost of the day, recomputed from
// the booking list.
func (s *PlanService) DayTotal(ctx context.Context, day int) (float64, error) {
	bookings, err := s.Bookings(ctx, day)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, b := range bookings {
		total += b.Cost
	}
	return total, nil
}

// DayTotalForParty multiplies the day total by the trip's party size.
func (s *PlanService) DayTotalForParty(ctx context.Context, day int) (float64, error) {
	total, err := s.DayTotal(ctx, day)
	if err != nil {
		return 0, err
	}
	trip, err := s.trips.GetDetails(ctx)
	if err != nil {
		return 0, err
	}
	people := trip.People
	if people < 1 {
		people = 1
	}
	return total * float64(people), nil
}

// SelectedDay returns the day currently being edited, 0 when unset.
func (s *PlanService) SelectedDay(ctx context.Context) (int, error) {
	return s.trips.GetSelectedDay(ctx)
}

// SelectDay stores the navigation hint.
func (s *PlanService) SelectDay(ctx context.Context, day int) error {
	if day < 1 {
		return fmt.Errorf("%w: day %d is out of range", domain.ErrValidation, day)
	}
	return s.trips.SetSelectedDay(ctx, day)
}
