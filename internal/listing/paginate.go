package listing

// DefaultPerPage is the page size of the dashboard grids.
const DefaultPerPage = 8

// Page step directions.
const (
	StepNext = "next"
	StepPrev = "prev"
)

// Window is one page of a derived sequence.
type Window[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	TotalPages int
	TotalCount int
	// From and To are the 1-based positions shown as "Showing From-To of TotalCount".
	From int
	To   int
}

// TotalPages is ceil(count / perPage).
func TotalPages(count, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return (count + perPage - 1) / perPage
}

// ClampPage resets page to 1 when it lies past the last page. An empty result
// (zero pages) leaves the page untouched.
func ClampPage(page, totalPages int) int {
	if page > totalPages && totalPages > 0 {
		return 1
	}
	return page
}

// Step moves one page forward or back, staying within [1, totalPages].
func Step(page, totalPages int, direction string) int {
	switch direction {
	case StepNext:
		if page+1 > totalPages {
			return max(totalPages, 1)
		}
		return page + 1
	case StepPrev:
		return max(1, page-1)
	}
	return page
}

// Paginate slices items[(page-1)*perPage : page*perPage].
func Paginate[T any](items []T, page, perPage int) Window[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	w := Window[T]{
		Page:       page,
		PerPage:    perPage,
		TotalCount: len(items),
		TotalPages: TotalPages(len(items), perPage),
		Items:      []T{},
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return w
	}
	end := min(start+perPage, len(items))
	w.Items = items[start:end]
	w.From = start + 1
	w.To = end
	return w
}
