package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/events"
	"wanderplan/internal/models"
	"wanderplan/internal/repository"
	"wanderplan/internal/storage"
)

// testEnv wires the full service stack over an in-memory store.
type testEnv struct {
	store      *storage.MemoryStore
	trips      *repository.TripRepository
	activities *repository.ActivityRepository
	extras     *repository.ExtrasRepository
	bus        *events.EventBus

	activity *ActivityService
	plan     *PlanService
	trip     *TripService
	extra    *ExtrasService
	transfer *TransferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()

	store := storage.NewMemoryStore()
	trips := repository.NewTripRepository(store)
	activities := repository.NewActivityRepository(store)
	extras := repository.NewExtrasRepository(store)
	bus := events.NewEventBus()

	return &testEnv{
		store:      store,
		trips:      trips,
		activities: activities,
		extras:     extras,
		bus:        bus,
		activity:   NewActivityService(activities, trips, bus, &logger),
		plan:       NewPlanService(trips, bus, &logger),
		trip:       NewTripService(trips, extras, bus, 0, &logger),
		extra:      NewExtrasService(extras, &logger),
		transfer:   NewTransferService(trips, activities, extras, &logger),
	}
}

// saveTrip seeds the trip frame directly through the repository.
func (e *testEnv) saveTrip(t *testing.T, destination string, days, people int, budget float64) {
	t.Helper()
	require.NoError(t, e.trips.SaveDetails(context.Background(), &models.TripDetails{
		Destination: destination,
		Days:        days,
		People:      people,
		Budget:      budget,
	}))
}

// MockTripRepository injects repository failures into service tests.
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) GetDetails(ctx context.Context) (*models.TripDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripDetails), args.Error(1)
}

func (m *MockTripRepository) SaveDetails(ctx context.Context, details *models.TripDetails) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func (m *MockTripRepository) GetSelectedDay(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTripRepository) SetSelectedDay(ctx context.Context, day int) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}
