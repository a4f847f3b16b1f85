package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

// ExtrasService manages the flight, stay, additional-expense and todo
// collections. Deletes are idempotent, matching the activity pool.
type ExtrasService struct {
	repo   domain.ExtrasRepository
	logger *zerolog.Logger
}

func NewExtrasService(repo domain.ExtrasRepository, logger *zerolog.Logger) *ExtrasService {
	return &ExtrasService{repo: repo, logger: logger}
}

func (s *ExtrasService) Flights(ctx context.Context) ([]models.Flight, error) {
	return s.repo.Flights(ctx)
}

func (s *ExtrasService) AddFlight(ctx context.Context, flight models.Flight) (*models.Flight, error) {
	if strings.TrimSpace(flight.From) == "" || strings.TrimSpace(flight.To) == "" {
		return nil, fmt.Errorf("%w: flight origin and destination are required", domain.ErrValidation)
	}
	if err := validateCost(flight.Cost); err != nil {
		return nil, err
	}

	flights, err := s.repo.Flights(ctx)
	if err != nil {
		return nil, err
	}
	flight.ID = uuid.NewString()
	flights = append(flights, flight)
	if err := s.repo.SaveFlights(ctx, flights); err != nil {
		return nil, err
	}
	return &flight, nil
}

// UpdateFlight replaces the stored flight with the same id.
func (s *ExtrasService) UpdateFlight(ctx context.Context, id string, flight models.Flight) (*models.Flight, error) {
	if strings.TrimSpace(flight.From) == "" || strings.TrimSpace(flight.To) == "" {
		return nil, fmt.Errorf("%w: flight origin and destination are required", domain.ErrValidation)
	}
	if err := validateCost(flight.Cost); err != nil {
		return nil, err
	}

	flights, err := s.repo.Flights(ctx)
	if err != nil {
		return nil, err
	}
	for i := range flights {
		if flights[i].ID != id {
			continue
		}
		flight.ID = id
		flights[i] = flight
		if err := s.repo.SaveFlights(ctx, flights); err != nil {
			return nil, err
		}
		return &flight, nil
	}
	return nil, fmt.Errorf("%w: flight %q", domain.ErrNotFound, id)
}

func (s *ExtrasService) DeleteFlight(ctx context.Context, id string) error {
	flights, err := s.repo.Flights(ctx)
	if err != nil {
		return err
	}
	kept := flights[:0]
	removed := false
	for _, f := range flights {
		if f.ID == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return nil
	}
	return s.repo.SaveFlights(ctx, kept)
}

func (s *ExtrasService) Stays(ctx context.Context) ([]models.Stay, error) {
	return s.repo.Stays(ctx)
}

func (s *ExtrasService) AddStay(ctx context.Context, stay models.Stay) (*models.Stay, error) {
	if strings.TrimSpace(stay.Name) == "" {
		return nil, fmt.Errorf("%w: stay name is required", domain.ErrValidation)
	}
	if err := validateCost(stay.Cost); err != nil {
		return nil, err
	}

	stays, err := s.repo.Stays(ctx)
	if err != nil {
		return nil, err
	}
	stay.ID = uuid.NewString()
	stays = append(stays, stay)
	if err := s.repo.SaveStays(ctx, stays); err != nil {
		return nil, err
	}
	return &stay, nil
}

// UpdateStay replaces the stored stay with the same id.
func (s *ExtrasService) UpdateStay(ctx context.Context, id string, stay models.Stay) (*models.Stay, error) {
	if strings.TrimSpace(stay.Name) == "" {
		return nil, fmt.Errorf("%w: stay name is required", domain.ErrValidation)
	}
	if err := validateCost(stay.Cost); err != nil {
		return nil, err
	}

	stays, err := s.repo.Stays(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stays {
		if stays[i].ID != id {
			continue
		}
		stay.ID = id
		stays[i] = stay
		if err := s.repo.SaveStays(ctx, stays); err != nil {
			return nil, err
		}
		return &stay, nil
	}
	return nil, fmt.Errorf("%w: stay %q", domain.ErrNotFound, id)
}

func (s *ExtrasService) DeleteStay(ctx context.Context, id string) error {
	stays, err := s.repo.Stays(ctx)
	if err != nil {
		return err
	}
	kept := stays[:0]
	removed := false
	for _, st := range stays {
		if st.ID == id {
			removed = true
			continue
		}
		kept = append(kept, st)
	}
	if !removed {
		return nil
	}
	return s.repo.SaveStays(ctx, kept)
}

func (s *ExtrasService) Expenses(ctx context.Context) ([]models.Expense, error) {
	return s.repo.Expenses(ctx)
}

func (s *ExtrasService) AddExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	if strings.TrimSpace(expense.Title) == "" {
		return nil, fmt.Errorf("%w: expense title is required", domain.ErrValidation)
	}
	if err := validateCost(expense.Cost); err != nil {
		return nil, err
	}

	expenses, err := s.repo.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	expense.ID = uuid.NewString()
	expenses = append(expenses, expense)
	if err := s.repo.SaveExpenses(ctx, expenses); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense replaces the stored expense with the same id.
func (s *ExtrasService) UpdateExpense(ctx context.Context, id string, expense models.Expense) (*models.Expense, error) {
	if strings.TrimSpace(expense.Title) == "" {
		return nil, fmt.Errorf("%w: expense title is required", domain.ErrValidation)
	}
	if err := validateCost(expense.Cost); err != nil {
		return nil, err
	}

	expenses, err := s.repo.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		if expenses[i].ID != id {
			continue
		}
		expense.ID = id
		expenses[i] = expense
		if err := s.repo.SaveExpenses(ctx, expenses); err != nil {
			return nil, err
		}
		return &expense, nil
	}
	return nil, fmt.Errorf("%w: expense %q", domain.ErrNotFound, id)
}

func (s *ExtrasService) DeleteExpense(ctx context.Context, id string) error {
	expenses, err := s.repo.Expenses(ctx)
	if err != nil {
		return err
	}
	kept := expenses[:0]
	removed := false
	for _, e := range expenses {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return nil
	}
	return s.repo.SaveExpenses(ctx, kept)
}

func (s *ExtrasService) Todos(ctx context.Context) ([]models.TodoItem, error) {
	return s.repo.Todos(ctx)
}

func (s *ExtrasService) AddTodo(ctx context.Context, text string) (*models.TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: todo text is required", domain.ErrValidation)
	}

	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return nil, err
	}
	todo := models.TodoItem{ID: uuid.NewString(), Text: text}
	todos = append(todos, todo)
	if err := s.repo.SaveTodos(ctx, todos); err != nil {
		return nil, err
	}
	return &todo, nil
}

// ToggleTodo flips the done flag of a todo item.
func (s *ExtrasService) ToggleTodo(ctx context.Context, id string) (*models.TodoItem, error) {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return nil, err
	}
	for i := range todos {
		if todos[i].ID != id {
			continue
		}
		todos[i].Done = !todos[i].Done
		if err := s.repo.SaveTodos(ctx, todos); err != nil {
			return nil, err
		}
		return &todos[i], nil
	}
	return nil, fmt.Errorf("%w: todo %q", domain.ErrNotFound, id)
}

func (s *ExtrasService) DeleteTodo(ctx context.Context, id string) error {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return err
	}
	kept := todos[:0]
	removed := false
	for _, item := range todos {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil
	}
	return s.repo.SaveTodos(ctx, kept)
}
