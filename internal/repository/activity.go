package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

type ActivityRepository struct {
	store domain.KVStore
}

func NewActivityRepository(store domain.KVStore) *ActivityRepository {
	return &ActivityRepository{store: store}
}

// List returns the activity pool in stored (insertion) order.
func (r *ActivityRepository) List(ctx context.Context) ([]models.Activity, error) {
	raw, err := r.store.Get(ctx, models.KeyActivities)
	if err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}
	if raw == nil {
		return []models.Activity{}, nil
	}

	var activities []models.Activity
	if err := json.Unmarshal(raw, &activities); err != nil {
		return nil, fmt.Errorf("unmarshal activities: %w", err)
	}
	return activities, nil
}

// Save replaces the whole pool, preserving the given order.
func (r *ActivityRepository) Save(ctx context.Context, activities []models.Activity) error {
	if activities == nil {
		activities = []models.Activity{}
	}
	raw, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}
	if err := r.store.Set(ctx, models.KeyActivities, raw); err != nil {
		return fmt.Errorf("save activities: %w", err)
	}
	return nil
}
