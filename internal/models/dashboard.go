package models

import "time"

// Pagination is attached to every paged response envelope.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// Theme is the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether the theme is one of the known values.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Preferences are the process-wide dashboard flags persisted between restarts.
type Preferences struct {
	Theme           Theme     `json:"theme"`
	IsAuthenticated bool      `json:"is_authenticated"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ViewStatus tracks the initial load of a list view.
type ViewStatus string

const (
	ViewLoading ViewStatus = "loading"
	ViewReady   ViewStatus = "ready"
	ViewFailed  ViewStatus = "failed"
)

// SystemMetrics is a lightweight snapshot of instrumentation counters.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	StoreRequestsTotal       uint64    `json:"store_requests_total"`
	StoreFailuresTotal       uint64    `json:"store_failures_total"`
	AverageStoreDurationMs   float64   `json:"average_store_duration_ms"`
	ActiveViews              int64     `json:"active_views"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
