package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/noah-isme/school-dashboard-api/internal/listing"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/store"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// Entity is a record type a view can list and mutate.
type Entity interface {
	listing.Record
	RecordName() string
	AssignID(models.ID)
}

// ViewPage is what a client renders for a mounted view.
type ViewPage[T any] struct {
	ID         string              `json:"id"`
	Entity     string              `json:"entity"`
	Status     models.ViewStatus   `json:"status"`
	Error      string              `json:"error,omitempty"`
	Filters    listing.FilterState `json:"filters"`
	Options    map[string][]string `json:"options"`
	Items      []T                 `json:"items"`
	Pagination models.Pagination   `json:"-"`
}

// MutationResult pairs the record returned by the store with the re-derived page.
type MutationResult[T any] struct {
	Record T           `json:"record"`
	View   ViewPage[T] `json:"view"`
}

// view is one mounted list. Every field is guarded by mu. options are
// derived from the records of the last load and do not follow mutations.
type view[T Entity] struct {
	mu sync.Mutex

	id     string
	ctx    context.Context
	cancel context.CancelFunc

	status   models.ViewStatus
	loadErr  string
	records  []T
	options  map[string][]string
	filters  listing.FilterState
	page     int
	lastUsed time.Time
	closed   bool
}

func (v *view[T]) touch(now time.Time) {
	v.lastUsed = now
}

// snapshot derives the current page and stores the clamped page number.
// Callers hold v.mu.
func (v *view[T]) snapshot(schema *listing.Schema[T], perPage int) ViewPage[T] {
	window := schema.Derive(v.records, v.filters, v.page, perPage)
	v.page = window.Page

	return ViewPage[T]{
		ID:      v.id,
		Entity:  schema.Entity,
		Status:  v.status,
		Error:   v.loadErr,
		Filters: v.filters.Clone(),
		Options: cloneOptions(v.options),
		Items:   window.Items,
		Pagination: models.Pagination{
			Page:       window.Page,
			PageSize:   window.PerPage,
			TotalCount: window.TotalCount,
			TotalPages: window.TotalPages,
			From:       window.From,
			To:         window.To,
		},
	}
}

func cloneOptions(options map[string][]string) map[string][]string {
	out := make(map[string][]string, len(options))
	for key, values := range options {
		out[key] = slices.Clone(values)
	}
	return out
}

// storeFailure maps a store error onto the API error taxonomy, keeping the
// flat "failed to <op> <entity>" message.
func storeFailure(err error, kind *appErrors.Error) *appErrors.Error {
	var reqErr *store.RequestError
	if !errors.As(err, &reqErr) {
		return appErrors.Wrap(err, kind.Code, kind.Status, kind.Message)
	}
	if reqErr.NotFound() && kind.Code == appErrors.ErrFetchFailed.Code {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, reqErr.Error())
	}
	return appErrors.Wrap(err, kind.Code, kind.Status, reqErr.Error())
}
