package listing

import (
	"cmp"
	"slices"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// Rating sort selections.
const (
	SortNone    = All
	SortHighest = "highest"
	SortLowest  = "lowest"
)

// SortByRating returns a stably sorted copy of items ordered by normalized
// rating. Records with equal ratings keep their relative order.
func SortByRating[T Record](items []T, order string) []T {
	out := slices.Clone(items)
	key := func(r T) float64 { return models.NormalizeRating(r.RecordRating()) }
	switch order {
	case SortHighest:
		slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(key(b), key(a)) })
	case SortLowest:
		slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
	}
	return out
}
