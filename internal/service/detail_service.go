package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// RecordFetcher loads a single record from the store.
type RecordFetcher[T any] interface {
	Entity() string
	Get(ctx context.Context, id models.ID) (T, error)
}

// RecordDetail is a record with the display values of the detail page.
type RecordDetail[T any] struct {
	Record              T        `json:"record"`
	DisplayGender       string   `json:"display_gender"`
	NormalizedRating    float64  `json:"normalized_rating"`
	RatingPercent       float64  `json:"rating_percent"`
	RatingNeedsBackfill bool     `json:"rating_needs_backfill"`
	Initials            string   `json:"initials"`
	CoinsPercent        *float64 `json:"coins_percent,omitempty"`
	Cached              bool     `json:"-"`
}

// DetailService fetches single records without mounting a view.
type DetailService[T Entity] struct {
	store  RecordFetcher[T]
	cache  *CacheService
	logger *zap.Logger
}

// NewDetailService constructs a detail service.
func NewDetailService[T Entity](store RecordFetcher[T], logger *zap.Logger) *DetailService[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailService[T]{store: store, logger: logger}
}

// WithCache serves repeated lookups from cache.
func (s *DetailService[T]) WithCache(cache *CacheService) *DetailService[T] {
	s.cache = cache
	return s
}

// Get fetches one record. A 404 from the store is NOT_FOUND.
func (s *DetailService[T]) Get(ctx context.Context, id models.ID) (*RecordDetail[T], error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	key := RecordKey(s.store.Entity(), id)
	var cached T
	if s.cache.Get(ctx, key, &cached) {
		detail := describe(cached)
		detail.Cached = true
		return detail, nil
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeFailure(err, appErrors.ErrFetchFailed)
	}
	s.cache.Set(ctx, key, record, 0)
	return describe(record), nil
}

func describe[T Entity](record T) *RecordDetail[T] {
	rating := record.RecordRating()
	detail := &RecordDetail[T]{
		Record:              record,
		DisplayGender:       models.NormalizeGender(record.RecordGender()).Display(),
		NormalizedRating:    models.NormalizeRating(rating),
		RatingPercent:       models.RatingPercent(rating),
		RatingNeedsBackfill: rating.NeedsBackfill(),
		Initials:            models.Initials(record.RecordName()),
	}
	if student, ok := any(record).(*models.Student); ok {
		pct := models.CoinsPercent(student.Coins)
		detail.CoinsPercent = &pct
	}
	return detail
}
