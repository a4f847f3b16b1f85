package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

func TestTripService_SaveDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		err := env.trip.SaveDetails(ctx, &models.TripDetails{
			Destination: "Lisbon", Days: 5, People: 2, Budget: 800,
		})
		require.NoError(t, err)

		details, err := env.trip.Details(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", details.Destination)
	})

	t.Run("Validation", func(t *testing.T) {
		cases := []models.TripDetails{
			{Destination: "", Days: 5, People: 2},
			{Destination: "Lisbon", Days: 0, People: 2},
			{Destination: "Lisbon", Days: 500, People: 2},
			{Destination: "Lisbon", Days: 5, People: 0},
			{Destination: "Lisbon", Days: 5, People: 2, Budget: -1},
		}
		for _, tc := range cases {
			err := env.trip.SaveDetails(ctx, &tc)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})
}

func TestTripService_ShrinkDaysTrimsPlans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.saveTrip(t, "Lisbon", 5, 2, 500)

	for day := 1; day <= 5; day++ {
		_, err := env.plan.Place(ctx, day, models.Booking{
			Title: "Walk", Cost: 5, StartTime: "09:00", EndTime: "10:00",
		})
		require.NoError(t, err)
	}

	err := env.trip.SaveDetails(ctx, &models.TripDetails{
		Destination: "Lisbon", Days: 3, People: 2, Budget: 500,
	})
	require.NoError(t, err)

	details, err := env.trip.Details(ctx)
	require.NoError(t, err)

	for day := 1; day <= 3; day++ {
		assert.Len(t, details.Plan(day).Bookings, 1, "day %d kept", day)
	}
	assert.Empty(t, details.Plan(4).Bookings, "day 4 discarded")
	assert.Empty(t, details.Plan(5).Bookings, "day 5 discarded")

	// Growing back does not resurrect the discarded plans.
	err = env.trip.SaveDetails(ctx, &models.TripDetails{
		Destination: "Lisbon", Days: 5, People: 2, Budget: 500,
	})
	require.NoError(t, err)

	details, err = env.trip.Details(ctx)
	require.NoError(t, err)
	assert.Empty(t, details.Plan(4).Bookings)
}

func TestTripService_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.saveTrip(t, "Lisbon", 3, 3, 400)

	_, err := env.plan.Place(ctx, 1, models.Booking{
		Title: "Museum", Cost: 20, StartTime: "10:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	_, err = env.extra.AddFlight(ctx, models.Flight{From: "BER", To: "LIS", Cost: 120})
	require.NoError(t, err)
	_, err = env.extra.AddStay(ctx, models.Stay{Name: "Hotel Baixa", Cost: 300})
	require.NoError(t, err)
	_, err = env.extra.AddExpense(ctx, models.Expense{Title: "Transit pass", Cost: 40})
	require.NoError(t, err)

	summary, err := env.trip.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 60.0, summary.DayTotals["1"], "20 per person x 3 people")
	assert.Equal(t, 60.0, summary.ActivityTotal)
	assert.Equal(t, 120.0, summary.FlightTotal)
	assert.Equal(t, 300.0, summary.StayTotal)
	assert.Equal(t, 40.0, summary.ExpenseTotal)
	assert.Equal(t, 520.0, summary.TripTotal)
	assert.Equal(t, 1200.0, summary.BudgetForParty)
}

func TestTripService_SummaryIgnoresStaleCachedTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A stored plan carrying a wrong cached total: the rollup must
	// recompute from the bookings instead of trusting it.
	trip := &models.TripDetails{Destination: "Lisbon", Days: 2, People: 2}
	trip.SetPlan(1, models.DayPlan{
		Bookings:  []models.Booking{{Title: "Museum", Cost: 20, StartTime: "10:00", EndTime: "12:00"}},
		TotalCost: 9999,
	})
	require.NoError(t, env.trips.SaveDetails(ctx, trip))

	summary, err := env.trip.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, summary.DayTotals["1"])
	assert.Equal(t, 40.0, summary.TripTotal)
}
