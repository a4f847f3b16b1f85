package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

// ExtrasRepository owns the four self-contained side collections:
// flights, stays, additional expenses and the todo list.
type ExtrasRepository struct {
	store domain.KVStore
}

func NewExtrasRepository(store domain.KVStore) *ExtrasRepository {
	return &ExtrasRepository{store: store}
}

func (r *ExtrasRepository) getList(ctx context.Context, key string, out interface{}) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (r *ExtrasRepository) setList(ctx context.Context, key string, list interface{}) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *ExtrasRepository) Flights(ctx context.Context) ([]models.Flight, error) {
	flights := []models.Flight{}
	if err := r.getList(ctx, models.KeyFlights, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *ExtrasRepository) SaveFlights(ctx context.Context, flights []models.Flight) error {
	if flights == nil {
		flights = []models.Flight{}
	}
	return r.setList(ctx, models.KeyFlights, flights)
}

func (r *ExtrasRepository) Stays(ctx context.Context) ([]models.Stay, error) {
	stays := []models.Stay{}
	if err := r.getList(ctx, models.KeyStays, &stays); err != nil {
		return nil, err
	}
	return stays, nil
}

func (r *ExtrasRepository) SaveStays(ctx context.Context, stays []models.Stay) error {
	if stays == nil {
		stays = []models.Stay{}
	}
	return r.setList(ctx, models.KeyStays, stays)
}

func (r *ExtrasRepository) Expenses(ctx context.Context) ([]models.Expense, error) {
	expenses := []models.Expense{}
	if err := r.getList(ctx, models.KeyAdditionalExpenses, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *ExtrasRepository) SaveExpenses(ctx context.Context, expenses []models.Expense) error {
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return r.setList(ctx, models.KeyAdditionalExpenses, expenses)
}

func (r *ExtrasRepository) Todos(ctx context.Context) ([]models.TodoItem, error) {
	todos := []models.TodoItem{}
	if err := r.getList(ctx, models.KeyTodoList, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *ExtrasRepository) SaveTodos(ctx context.Context, todos []models.TodoItem) error {
	if todos == nil {
		todos = []models.TodoItem{}
	}
	return r.setList(ctx, models.KeyTodoList, todos)
}
