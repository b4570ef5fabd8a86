package domain

import (
	"strings"
	"time"
)

// Product is a catalog entry. The catalog is owned by an external provider;
// from this service's perspective products are immutable snapshots.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	SafetyScore float64   `json:"safety_score"`
	RiskScore   float64   `json:"risk_score,omitempty"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sort options for catalog views.
const (
	SortRelevance = "relevance"
	SortName      = "name"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortSafety    = "safety"
)

// CategoryAll is the sentinel disabling the category filter.
const CategoryAll = "all"

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{SortRelevance, SortName, SortPriceAsc, SortPriceDesc, SortRating, SortSafety}
}

// IsValidSort checks whether the given sort string is a valid sort option.
// The empty string is valid and means relevance.
func IsValidSort(sort string) bool {
	if sort == "" {
		return true
	}
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// SearchCriteria holds all parameters for deriving a catalog view. Criteria
// are ephemeral: recomputed on every input change, never persisted.
type SearchCriteria struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	MinPrice *int64 `json:"min_price,omitempty"`
	MaxPrice *int64 `json:"max_price,omitempty"`
	SortBy   string `json:"sort_by"`
}

// HasCategory reports whether the category filter is active. "" and the
// "all" sentinel (any case) disable it.
func (c SearchCriteria) HasCategory() bool {
	return c.Category != "" && !strings.EqualFold(c.Category, CategoryAll)
}

// EmptyRange reports whether both price bounds are set and inverted. An
// inverted range yields an empty view rather than an error.
func (c SearchCriteria) EmptyRange() bool {
	return c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice
}
