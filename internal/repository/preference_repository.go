package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// PreferenceRepository stores the dashboard preferences as one JSON value in
// Redis. The client is owned and closed by the caller.
type PreferenceRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewPreferenceRepository constructs a Redis-backed preference repository.
func NewPreferenceRepository(client *redis.Client, key string, logger *zap.Logger) *PreferenceRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceRepository{client: client, key: key, logger: logger}
}

// Load returns the persisted preferences or ErrNotPersisted when none were saved.
func (r *PreferenceRepository) Load(ctx context.Context) (models.Preferences, error) {
	var prefs models.Preferences
	if r.client == nil {
		return prefs, appErrors.ErrNotPersisted
	}

	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return prefs, appErrors.ErrNotPersisted
		}
		return prefs, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	if err := json.Unmarshal(raw, &prefs); err != nil {
		r.logger.Warn("discarding unreadable preferences", zap.String("key", r.key), zap.Error(err))
		return models.Preferences{}, appErrors.ErrNotPersisted
	}
	return prefs, nil
}

// Save overwrites the persisted preferences. The value has no expiry.
func (r *PreferenceRepository) Save(ctx context.Context, prefs models.Preferences) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

// MemoryPreferenceRepository keeps preferences for the lifetime of the
// process. It is used when Redis is not reachable.
type MemoryPreferenceRepository struct {
	mu    sync.RWMutex
	prefs *models.Preferences
}

// NewMemoryPreferenceRepository constructs an empty in-memory repository.
func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{}
}

// Load returns the saved preferences or ErrNotPersisted.
func (r *MemoryPreferenceRepository) Load(context.Context) (models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.prefs == nil {
		return models.Preferences{}, appErrors.ErrNotPersisted
	}
	return *r.prefs, nil
}

// Save stores a copy of prefs.
func (r *MemoryPreferenceRepository) Save(_ context.Context, prefs models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs = &prefs
	return nil
}
