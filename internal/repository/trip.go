// Package repository provides typed accessors over the flat key-value
// namespace. Nothing outside this package touches raw storage keys.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

type TripRepository struct {
	store domain.KVStore
}

func NewTripRepository(store domain.KVStore) *TripRepository {
	return &TripRepository{store: store}
}

// GetDetails returns the stored trip, or an empty trip when none has been
// saved yet. The DayPlans map is always non-nil on return.
func (r *TripRepository) GetDetails(ctx context.Context) (*models.TripDetails, error) {
	raw, err := r.store.Get(ctx, models.KeyTripDetails)
	if err != nil {
		return nil, fmt.Errorf("get trip details: %w", err)
	}

	details := &models.TripDetails{}
	if raw != nil {
		if err := json.Unmarshal(raw, details); err != nil {
			return nil, fmt.Errorf("unmarshal trip details: %w", err)
		}
	}
	if details.DayPlans == nil {
		details.DayPlans = make(map[string]models.DayPlan)
	}
	return details, nil
}

// SaveDetails persists the whole trip record in a single store write.
func (r *TripRepository) SaveDetails(ctx context.Context, details *models.TripDetails) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal trip details: %w", err)
	}
	if err := r.store.Set(ctx, models.KeyTripDetails, raw); err != nil {
		return fmt.Errorf("save trip details: %w", err)
	}
	return nil
}

// GetSelectedDay returns the transient navigation hint, 0 when unset.
func (r *TripRepository) GetSelectedDay(ctx context.Context) (int, error) {
	raw, err := r.store.Get(ctx, models.KeySelectedDay)
	if err != nil {
		return 0, fmt.Errorf("get selected day: %w", err)
	}
	if raw == nil {
		return 0, nil
	}
	day, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("unmarshal selected day: %w", err)
	}
	return day, nil
}

func (r *TripRepository) SetSelectedDay(ctx context.Context, day int) error {
	if err := r.store.Set(ctx, models.KeySelectedDay, []byte(strconv.Itoa(day))); err != nil {
		return fmt.Errorf("set selected day: %w", err)
	}
	return nil
}
