package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/listing"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/pkg/config"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
	"github.com/noah-isme/school-dashboard-api/pkg/export"
	"github.com/noah-isme/school-dashboard-api/pkg/jobs"
)

// RecordStore is the remote collection a view is synchronised with.
type RecordStore[T any] interface {
	Entity() string
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id models.ID, payload T) (T, error)
	Remove(ctx context.Context, id models.ID) error
}

// ViewLoader runs view loads in the background. ctx bounds only the wait
// for a free slot.
type ViewLoader interface {
	EnqueueContext(ctx context.Context, job jobs.Job) error
}

// ViewService manages the mounted views of one entity.
type ViewService[T Entity] struct {
	schema    *listing.Schema[T]
	store     RecordStore[T]
	loader    ViewLoader
	validator *validator.Validate
	metrics   *MetricsService
	cache     *CacheService
	logger    *zap.Logger
	perPage   int
	idleTTL   time.Duration
	now       func() time.Time

	mu    sync.RWMutex
	views map[string]*view[T]
}

// NewViewService constructs a view service for schema's entity.
func NewViewService[T Entity](
	schema *listing.Schema[T],
	store RecordStore[T],
	loader ViewLoader,
	validate *validator.Validate,
	metrics *MetricsService,
	cfg config.ViewsConfig,
	logger *zap.Logger,
) *ViewService[T] {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	perPage := cfg.ItemsPerPage
	if perPage <= 0 {
		perPage = listing.DefaultPerPage
	}
	return &ViewService[T]{
		schema:    schema,
		store:     store,
		loader:    loader,
		validator: validate,
		metrics:   metrics,
		logger:    logger.With(zap.String("entity", schema.Entity)),
		perPage:   perPage,
		idleTTL:   cfg.IdleTTL,
		now:       time.Now,
		views:     make(map[string]*view[T]),
	}
}

// WithCache makes mutations evict the cached detail of the records they touch.
func (s *ViewService[T]) WithCache(cache *CacheService) *ViewService[T] {
	s.cache = cache
	return s
}

// Entity returns the collection name served by this service.
func (s *ViewService[T]) Entity() string {
	return s.schema.Entity
}

// Mount creates a view and schedules its initial load. The returned page is
// normally still loading; clients poll Get until the status changes. reqCtx
// only bounds the wait for a loader slot; the load itself lives as long as
// the view.
func (s *ViewService[T]) Mount(reqCtx context.Context) (ViewPage[T], error) {
	ctx, cancel := context.WithCancel(context.Background())
	v := &view[T]{
		id:       uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
		status:   models.ViewLoading,
		options:  s.schema.Options(nil),
		filters:  s.schema.NewFilterState(),
		page:     1,
		lastUsed: s.now(),
	}

	s.mu.Lock()
	s.views[v.id] = v
	s.mu.Unlock()
	s.metrics.ViewMounted(s.schema.Entity)

	err := s.loader.EnqueueContext(reqCtx, jobs.Job{
		ID:      v.id,
		Type:    "load_" + s.schema.Entity,
		Context: ctx,
		Run:     func(runCtx context.Context) error { return s.load(runCtx, v) },
	})
	if err != nil {
		s.Teardown(v.id)
		return ViewPage[T]{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule view load")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot(s.schema, s.perPage), nil
}

func (s *ViewService[T]) load(ctx context.Context, v *view[T]) error {
	records, err := s.store.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || ctx.Err() != nil {
		s.logger.Debug("discarding load for closed view", zap.String("view_id", v.id))
		return ctx.Err()
	}
	if err != nil {
		v.status = models.ViewFailed
		v.loadErr = storeFailure(err, appErrors.ErrFetchFailed).Message
		return err
	}
	v.records = records
	v.options = s.schema.Options(records)
	v.status = models.ViewReady
	v.loadErr = ""
	return nil
}

func (s *ViewService[T]) lookup(id string) (*view[T], error) {
	s.mu.RLock()
	v, ok := s.views[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s view not found", s.schema.Singular))
	}
	return v, nil
}

// withView runs fn with the view locked and returns the derived page.
func (s *ViewService[T]) withView(id string, fn func(v *view[T]) error) (ViewPage[T], error) {
	v, err := s.lookup(id)
	if err != nil {
		return ViewPage[T]{}, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ViewPage[T]{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s view not found", s.schema.Singular))
	}
	v.touch(s.now())
	if fn != nil {
		if err := fn(v); err != nil {
			return ViewPage[T]{}, err
		}
	}
	return v.snapshot(s.schema, s.perPage), nil
}

// Get returns the current page of a view.
func (s *ViewService[T]) Get(id string) (ViewPage[T], error) {
	return s.withView(id, nil)
}

// SetFilters applies a partial filter update. The whole resulting state is
// validated; nothing changes when any value is unknown.
func (s *ViewService[T]) SetFilters(id string, patch listing.FilterPatch) (ViewPage[T], error) {
	return s.withView(id, func(v *view[T]) error {
		next := v.filters.Apply(patch)
		if err := s.schema.Validate(next, v.options); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		v.filters = next
		return nil
	})
}

// SetPage jumps to page. A page past the end falls back to 1 on derivation.
func (s *ViewService[T]) SetPage(id string, page int) (ViewPage[T], error) {
	if page < 1 {
		return ViewPage[T]{}, appErrors.Clone(appErrors.ErrValidation, "page must be at least 1")
	}
	return s.withView(id, func(v *view[T]) error {
		v.page = page
		return nil
	})
}

// Step moves one page in direction, staying within bounds.
func (s *ViewService[T]) Step(id, direction string) (ViewPage[T], error) {
	if direction != listing.StepNext && direction != listing.StepPrev {
		return ViewPage[T]{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown direction %q", direction))
	}
	return s.withView(id, func(v *view[T]) error {
		total := listing.TotalPages(len(s.schema.Filter(v.records, v.filters)), s.perPage)
		v.page = listing.Step(listing.ClampPage(v.page, total), total, direction)
		return nil
	})
}

// Visible returns the full filtered and sorted sequence of a ready view.
func (s *ViewService[T]) Visible(id string) ([]T, error) {
	var out []T
	_, err := s.withView(id, func(v *view[T]) error {
		if v.status != models.ViewReady {
			return s.notReady()
		}
		out = s.schema.Visible(v.records, v.filters)
		return nil
	})
	return out, err
}

// Dataset renders the visible sequence with the schema's display columns.
func (s *ViewService[T]) Dataset(id string) (export.Dataset, error) {
	records, err := s.Visible(id)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:   s.schema.Entity,
		Headers: make([]string, 0, len(s.schema.Columns)),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, col := range s.schema.Columns {
		data.Headers = append(data.Headers, col.Header)
	}
	for _, r := range records {
		row := make([]string, 0, len(s.schema.Columns))
		for _, col := range s.schema.Columns {
			row = append(row, col.Value(r))
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}

func (s *ViewService[T]) notReady() error {
	return appErrors.Clone(appErrors.ErrViewNotReady, fmt.Sprintf("%s view is not ready", s.schema.Singular))
}

// mutationContext checks the view is ready and scopes ctx to its lifetime.
func (s *ViewService[T]) mutationContext(ctx context.Context, id string) (*view[T], context.Context, context.CancelFunc, error) {
	v, err := s.lookup(id)
	if err != nil {
		return nil, nil, nil, err
	}
	v.mu.Lock()
	status, viewCtx := v.status, v.ctx
	v.touch(s.now())
	v.mu.Unlock()
	if status != models.ViewReady {
		return nil, nil, nil, s.notReady()
	}

	mctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(viewCtx, cancel)
	return v, mctx, func() {
		stop()
		cancel()
	}, nil
}

func (s *ViewService[T]) validate(payload T) error {
	if err := s.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("invalid %s payload", s.schema.Singular))
	}
	return nil
}

// apply reconciles a successful store response into the view.
func (s *ViewService[T]) apply(v *view[T], record T, reconcile func(records []T) []T) (MutationResult[T], error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return MutationResult[T]{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s view not found", s.schema.Singular))
	}
	v.records = reconcile(v.records)
	return MutationResult[T]{Record: record, View: v.snapshot(s.schema, s.perPage)}, nil
}

// Create adds a record through the store and appends the stored version.
func (s *ViewService[T]) Create(ctx context.Context, id string, payload T) (MutationResult[T], error) {
	if err := s.validate(payload); err != nil {
		return MutationResult[T]{}, err
	}
	v, mctx, done, err := s.mutationContext(ctx, id)
	if err != nil {
		return MutationResult[T]{}, err
	}
	defer done()

	created, err := s.store.Create(mctx, payload)
	if err != nil {
		return MutationResult[T]{}, storeFailure(err, appErrors.ErrMutationFailed)
	}
	s.logger.Info("record created", zap.String("view_id", id), zap.String("record_id", string(created.RecordID())))
	return s.apply(v, created, func(records []T) []T {
		return listing.Append(records, created)
	})
}

// Update replaces a record through the store. The stored version replaces
// the element with the same id; other elements keep their identity.
func (s *ViewService[T]) Update(ctx context.Context, id string, recordID models.ID, payload T) (MutationResult[T], error) {
	if err := s.validate(payload); err != nil {
		return MutationResult[T]{}, err
	}
	payload.AssignID(recordID)
	v, mctx, done, err := s.mutationContext(ctx, id)
	if err != nil {
		return MutationResult[T]{}, err
	}
	defer done()

	updated, err := s.store.Update(mctx, recordID, payload)
	if err != nil {
		return MutationResult[T]{}, storeFailure(err, appErrors.ErrMutationFailed)
	}
	s.cache.Evict(mctx, RecordKey(s.schema.Entity, recordID))
	if updated.RecordID() == "" {
		updated.AssignID(recordID)
	}
	return s.apply(v, updated, func(records []T) []T {
		out, ok := listing.Replace(records, updated)
		if !ok {
			s.logger.Warn("updated record is not in view", zap.String("view_id", id), zap.String("record_id", string(recordID)))
		}
		return out
	})
}

// Delete removes a record through the store. Unconfirmed deletes are
// rejected before any remote call.
func (s *ViewService[T]) Delete(ctx context.Context, id string, recordID models.ID, confirmed bool) (ViewPage[T], error) {
	if !confirmed {
		return ViewPage[T]{}, appErrors.Clone(appErrors.ErrPreconditionFailed,
			fmt.Sprintf("deleting a %s requires confirmation", s.schema.Singular))
	}
	v, mctx, done, err := s.mutationContext(ctx, id)
	if err != nil {
		return ViewPage[T]{}, err
	}
	defer done()

	if err := s.store.Remove(mctx, recordID); err != nil {
		return ViewPage[T]{}, storeFailure(err, appErrors.ErrMutationFailed)
	}
	s.cache.Evict(mctx, RecordKey(s.schema.Entity, recordID))
	var zero T
	result, err := s.apply(v, zero, func(records []T) []T {
		out, _ := listing.Remove(records, recordID)
		return out
	})
	return result.View, err
}

// Teardown closes a view. An in-flight load is cancelled and its result dropped.
func (s *ViewService[T]) Teardown(id string) bool {
	s.mu.Lock()
	v, ok := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()
	if !ok {
		return false
	}

	v.mu.Lock()
	v.closed = true
	v.records = nil
	v.mu.Unlock()
	v.cancel()
	s.metrics.ViewClosed(s.schema.Entity)
	return true
}

// Sweep tears down views idle for longer than the configured TTL.
func (s *ViewService[T]) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.RLock()
	idle := make([]string, 0)
	for id, v := range s.views {
		v.mu.Lock()
		if v.lastUsed.Before(cutoff) {
			idle = append(idle, id)
		}
		v.mu.Unlock()
	}
	s.mu.RUnlock()

	swept := 0
	for _, id := range idle {
		if s.Teardown(id) {
			swept++
		}
	}
	if swept > 0 {
		s.logger.Info("idle views swept", zap.Int("count", swept))
	}
	return swept
}

// RunSweeper sweeps on every tick until ctx is done.
func (s *ViewService[T]) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close tears down every view.
func (s *ViewService[T]) Close() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.views))
	for id := range s.views {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	for _, id := range ids {
		s.Teardown(id)
	}
}
