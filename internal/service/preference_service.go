package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// PreferenceRepository persists the process-wide preferences.
type PreferenceRepository interface {
	Load(ctx context.Context) (models.Preferences, error)
	Save(ctx context.Context, prefs models.Preferences) error
}

// PreferenceService owns the theme and authentication flags. They are read
// from the repository once and written back on every change.
type PreferenceService struct {
	repo   PreferenceRepository
	logger *zap.Logger
	now    func() time.Time

	mu    sync.RWMutex
	prefs models.Preferences
}

// NewPreferenceService constructs the service with defaultTheme until Load runs.
func NewPreferenceService(repo PreferenceRepository, defaultTheme models.Theme, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !defaultTheme.Valid() {
		defaultTheme = models.ThemeLight
	}
	return &PreferenceService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		prefs:  models.Preferences{Theme: defaultTheme},
	}
}

// Load reads the persisted preferences. Missing or invalid values keep the defaults.
func (s *PreferenceService) Load(ctx context.Context) error {
	prefs, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotPersisted) {
			s.logger.Info("no persisted preferences, using defaults")
			return nil
		}
		return fmt.Errorf("load preferences: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prefs.Theme.Valid() {
		s.prefs.Theme = prefs.Theme
	}
	s.prefs.IsAuthenticated = prefs.IsAuthenticated
	s.prefs.UpdatedAt = prefs.UpdatedAt
	return nil
}

// Get returns the current preferences.
func (s *PreferenceService) Get() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// IsAuthenticated reports the auth flag.
func (s *PreferenceService) IsAuthenticated() bool {
	return s.Get().IsAuthenticated
}

// SetTheme switches to theme.
func (s *PreferenceService) SetTheme(ctx context.Context, theme models.Theme) (models.Preferences, error) {
	if !theme.Valid() {
		return models.Preferences{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown theme %q", theme))
	}
	return s.update(ctx, func(p *models.Preferences) { p.Theme = theme })
}

// ToggleTheme flips between light and dark.
func (s *PreferenceService) ToggleTheme(ctx context.Context) (models.Preferences, error) {
	return s.update(ctx, func(p *models.Preferences) { p.Theme = p.Theme.Toggle() })
}

// Login sets the auth flag. Credentials are checked elsewhere.
func (s *PreferenceService) Login(ctx context.Context) (models.Preferences, error) {
	return s.update(ctx, func(p *models.Preferences) { p.IsAuthenticated = true })
}

// Logout clears the auth flag.
func (s *PreferenceService) Logout(ctx context.Context) (models.Preferences, error) {
	return s.update(ctx, func(p *models.Preferences) { p.IsAuthenticated = false })
}

// update applies fn and persists the result. The in-memory value only
// changes when the write succeeds.
func (s *PreferenceService) update(ctx context.Context, fn func(p *models.Preferences)) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	fn(&next)
	next.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Warn("failed to persist preferences", zap.Error(err))
		return models.Preferences{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save preferences")
	}
	s.prefs = next
	return next, nil
}
