package domain

import (
	"context"

	"wanderplan/internal/models"
)

// KVStore is the flat key-value namespace holding all persistent state.
// Get returns (nil, nil) when the key is absent.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// TripRepository owns the tripDetails and selectedDay keys.
type TripRepository interface {
	GetDetails(ctx context.Context) (*models.TripDetails, error)
	SaveDetails(ctx context.Context, details *models.TripDetails) error
	GetSelectedDay(ctx context.Context) (int, error)
	SetSelectedDay(ctx context.Context, day int) error
}

// ActivityRepository owns the activities key. Save replaces the whole
// list; ordering is the caller's insertion order and must be preserved.
type ActivityRepository interface {
	List(ctx context.Context) ([]models.Activity, error)
	Save(ctx context.Context, activities []models.Activity) error
}

// ExtrasRepository owns the four independent side collections.
type ExtrasRepository interface {
	Flights(ctx context.Context) ([]models.Flight, error)
	SaveFlights(ctx context.Context, flights []models.Flight) error
	Stays(ctx context.Context) ([]models.Stay, error)
	SaveStays(ctx context.Context, stays []models.Stay) error
	Expenses(ctx context.Context) ([]models.Expense, error)
	SaveExpenses(ctx context.Context, expenses []models.Expense) error
	Todos(ctx context.Context) ([]models.TodoItem, error)
	SaveTodos(ctx context.Context, todos []models.TodoItem) error
}

// EventPublisher decouples services from the in-process event bus.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
