package storage

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"wanderplan/internal/domain"
)

// FailoverStore serves from the primary store until it fails, then falls
// back and probes the primary again after a recovery window. Writes made
// while degraded land in the fallback only; there is no reconciliation.
type FailoverStore struct {
	primary     domain.KVStore
	fallback    domain.KVStore
	logger      *zerolog.Logger
	onDowngrade func()
	isDown      atomic.Bool
	lastCheck   time.Time
}

const recoveryWindow = time.Minute

func NewFailoverStore(primary, fallback domain.KVStore, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// OnDowngrade registers a hook invoked each time the primary is marked
// down. Used to bump the failover metric without importing it here.
func (s *FailoverStore) OnDowngrade(fn func()) {
	s.onDowngrade = fn
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("Primary store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck = time.Now()
	if s.onDowngrade != nil {
		s.onDowngrade()
	}
}

func (s *FailoverStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.isDown.Load() {
		val, err := s.primary.Get(ctx, key)
		if err == nil {
			return val, nil
		}
		s.markDown(err)
	}

	if s.isDown.Load() && time.Since(s.lastCheck) > recoveryWindow {
		val, err := s.primary.Get(ctx, key)
		if err == nil {
			s.isDown.Store(false)
			return val, nil
		}
		s.lastCheck = time.Now()
	}

	return s.fallback.Get(ctx, key)
}

func (s *FailoverStore) Set(ctx context.Context, key string, value []byte) error {
	if !s.isDown.Load() {
		err := s.primary.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		s.markDown(err)
	}

	return s.fallback.Set(ctx, key, value)
}

func (s *FailoverStore) Delete(ctx context.Context, key string) error {
	if !s.isDown.Load() {
		err := s.primary.Delete(ctx, key)
		if err == nil {
			return nil
		}
		s.markDown(err)
	}

	return s.fallback.Delete(ctx, key)
}
