package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/trustmarket/trustmarket/internal/domain"
)

// DeriveView derives the visible, ordered product list from a catalog
// snapshot and the current search criteria. It is a pure function: the input
// catalog is never mutated and identical inputs always produce identical
// output, so callers may memoize on (catalog, criteria).
//
// An inverted price range yields an empty view rather than an error.
func DeriveView(catalog []domain.Product, criteria domain.SearchCriteria) []domain.Product {
	if criteria.EmptyRange() {
		return []domain.Product{}
	}

	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	view := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if !matches(p, criteria, query) {
			continue
		}
		view = append(view, p)
	}

	sortView(view, criteria.SortBy)

	return view
}

// matches applies the category, text, and price filters to a single product.
func matches(p domain.Product, criteria domain.SearchCriteria, query string) bool {
	// Category filter: exact, case-sensitive match on catalog data.
	if criteria.HasCategory() && p.Category != criteria.Category {
		return false
	}

	// Text filter: case-insensitive substring over name, brand, description,
	// and category. Empty query matches everything.
	if query != "" {
		if !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Brand), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			return false
		}
	}

	// Price range filter: inclusive bounds.
	if criteria.MinPrice != nil && p.Price < *criteria.MinPrice {
		return false
	}
	if criteria.MaxPrice != nil && p.Price > *criteria.MaxPrice {
		return false
	}

	return true
}

// sortView orders the view in place by the sort key. Sorting is stable so
// ties keep catalog order, and relevance (or an unknown key) preserves
// catalog order entirely. Comparisons involving NaN scores report no
// ordering, which leaves malformed records where the stable sort found them.
func sortView(view []domain.Product, sortBy string) {
	switch sortBy {
	case domain.SortName:
		sort.SliceStable(view, func(i, j int) bool {
			return strings.ToLower(view[i].Name) < strings.ToLower(view[j].Name)
		})
	case domain.SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price < view[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price > view[j].Price
		})
	case domain.SortRating:
		sort.SliceStable(view, func(i, j int) bool {
			return descending(view[i].Rating, view[j].Rating)
		})
	case domain.SortSafety:
		sort.SliceStable(view, func(i, j int) bool {
			return descending(view[i].SafetyScore, view[j].SafetyScore)
		})
	default:
		// relevance or unknown: keep catalog order.
	}
}

func descending(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a > b
}
