package listing

import "github.com/noah-isme/school-dashboard-api/internal/models"

// The reconcilers never modify their input slice, so windows derived from an
// earlier collection stay valid.

// Append adds a record returned by the store after a create.
func Append[T Record](records []T, created T) []T {
	out := make([]T, 0, len(records)+1)
	out = append(out, records...)
	return append(out, created)
}

// Replace swaps in the record whose id matches updated. Every other element is
// carried over as is. It reports false when no record matched.
func Replace[T Record](records []T, updated T) ([]T, bool) {
	id := updated.RecordID()
	out := make([]T, len(records))
	copy(out, records)
	for i, r := range out {
		if r.RecordID() == id {
			out[i] = updated
			return out, true
		}
	}
	return records, false
}

// Remove drops the record with the given id.
func Remove[T Record](records []T, id models.ID) ([]T, bool) {
	out := make([]T, 0, len(records))
	found := false
	for _, r := range records {
		if r.RecordID() == id {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		return records, false
	}
	return out, true
}
