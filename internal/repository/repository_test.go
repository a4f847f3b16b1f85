package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/models"
	"wanderplan/internal/storage"
)

func TestTripRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTripRepository(storage.NewMemoryStore())

	t.Run("EmptyByDefault", func(t *testing.T) {
		details, err := repo.GetDetails(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, details.Days)
		assert.NotNil(t, details.DayPlans)
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		details := &models.TripDetails{
			Destination: "Lisbon",
			Days:        5,
			People:      2,
			Budget:      800,
		}
		details.SetPlan(1, models.DayPlan{Bookings: []models.Booking{
			{Title: "Museum", Cost: 20, StartTime: "10:00", EndTime: "12:00"},
		}})
		require.NoError(t, repo.SaveDetails(ctx, details))

		got, err := repo.GetDetails(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", got.Destination)
		assert.Equal(t, 5, got.Days)
		require.Len(t, got.Plan(1).Bookings, 1)
		assert.Equal(t, "Museum", got.Plan(1).Bookings[0].Title)
		assert.Empty(t, got.Plan(2).Bookings)
	})

	t.Run("SelectedDay", func(t *testing.T) {
		day, err := repo.GetSelectedDay(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, day)

		require.NoError(t, repo.SetSelectedDay(ctx, 3))
		day, err = repo.GetSelectedDay(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, day)
	})
}

func TestActivityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(storage.NewMemoryStore())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	activities := []models.Activity{
		{ID: 1700000000001, Title: "Museum", Cost: 20},
		{ID: 1700000000002, Title: "Boat tour", Description: "2h on the river", Cost: 35.5},
	}
	require.NoError(t, repo.Save(ctx, activities))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Museum", got[0].Title, "insertion order is preserved")
	assert.Equal(t, 35.5, got[1].Cost)
}

func TestExtrasRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewExtrasRepository(storage.NewMemoryStore())

	t.Run("EmptyDefaults", func(t *testing.T) {
		flights, err := repo.Flights(ctx)
		require.NoError(t, err)
		assert.Empty(t, flights)

		todos, err := repo.Todos(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		require.NoError(t, repo.SaveFlights(ctx, []models.Flight{
			{ID: "f1", From: "BER", To: "LIS", Cost: 120},
		}))
		require.NoError(t, repo.SaveStays(ctx, []models.Stay{
			{ID: "s1", Name: "Hotel Baixa", Cost: 400},
		}))
		require.NoError(t, repo.SaveExpenses(ctx, []models.Expense{
			{ID: "e1", Title: "Transit pass", Cost: 40},
		}))
		require.NoError(t, repo.SaveTodos(ctx, []models.TodoItem{
			{ID: "t1", Text: "Renew passport", Done: true},
		}))

		flights, err := repo.Flights(ctx)
		require.NoError(t, err)
		require.Len(t, flights, 1)
		assert.Equal(t, "LIS", flights[0].To)

		stays, err := repo.Stays(ctx)
		require.NoError(t, err)
		require.Len(t, stays, 1)

		expenses, err := repo.Expenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 1)

		todos, err := repo.Todos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.True(t, todos[0].Done)
	})
}
