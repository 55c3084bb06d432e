// Package listing derives the visible page of a record collection: it filters
// with an entity schema, sorts by rating, paginates, and reconciles the
// in-memory collection after store mutations.
package listing

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// All is the no-op value for every categorical criterion.
const All = "all"

// ErrInvalidFilter is returned when a filter value is not selectable.
var ErrInvalidFilter = errors.New("invalid filter")

// Record is satisfied by every entity a schema can list.
type Record interface {
	RecordID() models.ID
	RecordGender() models.Gender
	RecordRating() models.Rating
}

// Criterion is one entity-specific filter, such as a grade or an age bucket.
type Criterion[T Record] struct {
	Key string
	// Options are the fixed selectable values. When DeriveOptions is set the
	// options are computed from the collection instead.
	Options       []string
	DeriveOptions func(records []T) []string
	Match         func(record T, value string) bool
}

// Column renders one field of a record for exports.
type Column[T Record] struct {
	Header string
	Value  func(record T) string
}

// Schema describes how one entity is searched, filtered and displayed.
type Schema[T Record] struct {
	Entity       string
	Singular     string
	SearchFields func(record T) []string
	Criteria     []Criterion[T]
	Columns      []Column[T]
}

// NewFilterState returns the state a freshly mounted view starts with.
func (s *Schema[T]) NewFilterState() FilterState {
	criteria := make(map[string]string, len(s.Criteria))
	for _, c := range s.Criteria {
		criteria[c.Key] = All
	}
	return FilterState{Gender: All, Rating: SortNone, Criteria: criteria}
}

// Options returns the selectable values per criterion for the given collection.
func (s *Schema[T]) Options(records []T) map[string][]string {
	options := make(map[string][]string, len(s.Criteria))
	for _, c := range s.Criteria {
		if c.DeriveOptions != nil {
			options[c.Key] = c.DeriveOptions(records)
			continue
		}
		options[c.Key] = slices.Clone(c.Options)
	}
	return options
}

// Validate checks every value of state against the known selections.
func (s *Schema[T]) Validate(state FilterState, options map[string][]string) error {
	switch state.Gender {
	case All, string(models.GenderMale), string(models.GenderFemale):
	default:
		return fmt.Errorf("%w: gender %q", ErrInvalidFilter, state.Gender)
	}
	switch state.Rating {
	case SortNone, SortHighest, SortLowest:
	default:
		return fmt.Errorf("%w: rating %q", ErrInvalidFilter, state.Rating)
	}
	for key, value := range state.Criteria {
		if _, ok := s.criterion(key); !ok {
			return fmt.Errorf("%w: unknown criterion %q", ErrInvalidFilter, key)
		}
		if value == All {
			continue
		}
		if !slices.Contains(options[key], value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidFilter, key, value)
		}
	}
	return nil
}

// Matches reports whether record satisfies every active criterion of state.
func (s *Schema[T]) Matches(record T, state FilterState) bool {
	if state.Search != "" && !s.matchesSearch(record, state.Search) {
		return false
	}
	if state.Gender != "" && state.Gender != All &&
		string(models.NormalizeGender(record.RecordGender())) != state.Gender {
		return false
	}
	for _, c := range s.Criteria {
		value, ok := state.Criteria[c.Key]
		if !ok || value == "" || value == All {
			continue
		}
		if !c.Match(record, value) {
			return false
		}
	}
	return true
}

// Filter keeps the records matching state, preserving order.
func (s *Schema[T]) Filter(records []T, state FilterState) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if s.Matches(r, state) {
			out = append(out, r)
		}
	}
	return out
}

// Visible filters then sorts the collection.
func (s *Schema[T]) Visible(records []T, state FilterState) []T {
	return SortByRating(s.Filter(records, state), state.Rating)
}

// Derive runs the whole pipeline and returns the page to render. The page is
// reset to 1 when it lies beyond the last page of a non-empty result.
func (s *Schema[T]) Derive(records []T, state FilterState, page, perPage int) Window[T] {
	visible := s.Visible(records, state)
	page = ClampPage(page, TotalPages(len(visible), perPage))
	return Paginate(visible, page, perPage)
}

func (s *Schema[T]) matchesSearch(record T, search string) bool {
	if s.SearchFields == nil {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range s.SearchFields(record) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *Schema[T]) criterion(key string) (Criterion[T], bool) {
	for _, c := range s.Criteria {
		if c.Key == key {
			return c, true
		}
	}
	return Criterion[T]{}, false
}

// Bucket is an inclusive integer range selectable by label.
type Bucket struct {
	Label string
	Min   int
	Max   int
}

// AtLeast is a bucket without an upper bound.
func AtLeast(label string, min int) Bucket {
	return Bucket{Label: label, Min: min, Max: math.MaxInt}
}

// Contains reports whether v lies in the bucket.
func (b Bucket) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// BucketCriterion filters on an integer field falling inside a labelled range.
func BucketCriterion[T Record](key string, field func(T) int, buckets ...Bucket) Criterion[T] {
	labels := make([]string, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, b.Label)
	}
	return Criterion[T]{
		Key:     key,
		Options: labels,
		Match: func(record T, value string) bool {
			for _, b := range buckets {
				if b.Label == value {
					return b.Contains(field(record))
				}
			}
			return false
		},
	}
}

// IntCriterion filters on the stringified value of an integer field.
func IntCriterion[T Record](key string, field func(T) int, options []string) Criterion[T] {
	return Criterion[T]{
		Key:     key,
		Options: options,
		Match: func(record T, value string) bool {
			return strconv.Itoa(field(record)) == value
		},
	}
}

// DistinctCriterion filters on exact equality with a string field. Its
// options are the distinct values seen in the collection, in first-seen order.
func DistinctCriterion[T Record](key string, field func(T) string) Criterion[T] {
	return Criterion[T]{
		Key: key,
		DeriveOptions: func(records []T) []string {
			seen := make(map[string]struct{}, len(records))
			out := make([]string, 0)
			for _, r := range records {
				v := field(r)
				if _, ok := seen[v]; ok {
					continue
				}
				seen[v] = struct{}{}
				out = append(out, v)
			}
			return out
		},
		Match: func(record T, value string) bool {
			return field(record) == value
		},
	}
}
