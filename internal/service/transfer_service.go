package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

// TransferService bundles the whole trip state into one JSON document and
// restores it. Import is all-or-nothing at the parse stage: the payload is
// fully decoded and type-checked before the first storage key is written.
// A write failure partway through is reported without rollback.
type TransferService struct {
	trips      domain.TripRepository
	activities domain.ActivityRepository
	extras     domain.ExtrasRepository
	logger     *zerolog.Logger
}

func NewTransferService(trips domain.TripRepository, activities domain.ActivityRepository, extras domain.ExtrasRepository, logger *zerolog.Logger) *TransferService {
	return &TransferService{
		trips:      trips,
		activities: activities,
		extras:     extras,
		logger:     logger,
	}
}

// Export reads every stored collection into a bundle. Missing keys come
// back as empty collections, never null.
func (s *TransferService) Export(ctx context.Context) (*models.ExportBundle, error) {
	trip, err := s.trips.GetDetails(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	flights, err := s.extras.Flights(ctx)
	if err != nil {
		return nil, err
	}
	stays, err := s.extras.Stays(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.extras.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	todos, err := s.extras.Todos(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ExportBundle{
		TripDetails:        *trip,
		DayPlans:           trip.DayPlans,
		Flights:            flights,
		Stays:              stays,
		AdditionalExpenses: expenses,
		Budget:             trip.Budget,
		Activities:         activities,
		TodoList:           todos,
	}, nil
}

// Import replaces stored state with the bundle in raw. The root must be a
// JSON object and every recognized key must decode into its collection
// type, otherwise nothing is written. Unknown top-level keys are ignored.
func (s *TransferService) Import(ctx context.Context, raw []byte) error {
	var root map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&root); err != nil || root == nil {
		return fmt.Errorf("%w: root must be a JSON object", domain.ErrImportFormat)
	}

	var bundle models.ExportBundle
	present := make(map[string]bool, len(root))
	for key, fragment := range root {
		var err error
		switch key {
		case models.KeyTripDetails:
			err = json.Unmarshal(fragment, &bundle.TripDetails)
		case "dayPlans":
			err = json.Unmarshal(fragment, &bundle.DayPlans)
		case models.KeyFlights:
			err = json.Unmarshal(fragment, &bundle.Flights)
		case models.KeyStays:
			err = json.Unmarshal(fragment, &bundle.Stays)
		case models.KeyAdditionalExpenses:
			err = json.Unmarshal(fragment, &bundle.AdditionalExpenses)
		case "budget":
			err = json.Unmarshal(fragment, &bundle.Budget)
		case models.KeyActivities:
			err = json.Unmarshal(fragment, &bundle.Activities)
		case models.KeyTodoList:
			err = json.Unmarshal(fragment, &bundle.TodoList)
		default:
			s.logger.Warn().Str("key", key).Msg("ignoring unknown key in import")
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: key %q: %v", domain.ErrImportFormat, key, err)
		}
		present[key] = true
	}

	// Parse is complete; from here on writes replace stored data wholesale.
	if present[models.KeyTripDetails] || present["dayPlans"] || present["budget"] {
		trip := bundle.TripDetails
		if !present[models.KeyTripDetails] {
			// Partial bundle: fold dayPlans/budget into the stored trip.
			current, err := s.trips.GetDetails(ctx)
			if err != nil {
				return fmt.Errorf("import trip details: %w", err)
			}
			trip = *current
		}
		if present["dayPlans"] {
			trip.DayPlans = bundle.DayPlans
		}
		if present["budget"] {
			trip.Budget = bundle.Budget
		}
		if err := s.trips.SaveDetails(ctx, &trip); err != nil {
			return fmt.Errorf("import trip details: %w", err)
		}
	}
	if present[models.KeyActivities] {
		if err := s.activities.Save(ctx, bundle.Activities); err != nil {
			return fmt.Errorf("import activities: %w", err)
		}
	}
	if present[models.KeyFlights] {
		if err := s.extras.SaveFlights(ctx, bundle.Flights); err != nil {
			return fmt.Errorf("import flights: %w", err)
		}
	}
	if present[models.KeyStays] {
		if err := s.extras.SaveStays(ctx, bundle.Stays); err != nil {
			return fmt.Errorf("import stays: %w", err)
		}
	}
	if present[models.KeyAdditionalExpenses] {
		if err := s.extras.SaveExpenses(ctx, bundle.AdditionalExpenses); err != nil {
			return fmt.Errorf("import additional expenses: %w", err)
		}
	}
	if present[models.KeyTodoList] {
		if err := s.extras.SaveTodos(ctx, bundle.TodoList); err != nil {
			return fmt.Errorf("import todo list: %w", err)
		}
	}

	s.logger.Info().Int("keys", len(present)).Msg("import applied")
	return nil
}
