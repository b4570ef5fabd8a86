package feedback

import (
	"strings"
)

// categoryCriteria binds a category to its ordered rating criteria.
type categoryCriteria struct {
	category string
	criteria []string
}

// ratingCriteria is the static category→criteria table. Order matters: it is
// the order the criteria are rendered and reported in.
var ratingCriteria = []categoryCriteria{
	{"Food & Beverages", []string{"Safety", "Freshness", "Taste/Nutrition"}},
	{"Cosmetics & Personal Care", []string{"Safety", "Skin Compatibility", "Effectiveness"}},
	{"Clothing & Apparel", []string{"Fabric Quality", "Fit", "Durability"}},
	{"Electronics & Gadgets", []string{"Safety", "Performance", "Build Quality"}},
	{"Home Appliances", []string{"Safety", "Energy Efficiency", "Reliability"}},
	{"Toys & Baby Products", []string{"Safety", "Material Quality", "Age Suitability"}},
	{"Furniture & Home Décor", []string{"Build Quality", "Finish", "Durability"}},
	{"Pharmaceuticals & Health Products", []string{"Safety", "Effectiveness", "Label Accuracy"}},
}

// CriteriaFor resolves the ordered rating criteria for a product category.
//
// Resolution is exact match first, then a normalized fuzzy match: the
// category is lowercased and compared as a substring against the portion of
// each table entry before any "&". An unresolved category returns nil so the
// caller renders no criteria section instead of failing.
func CriteriaFor(category string) []string {
	for _, entry := range ratingCriteria {
		if entry.category == category {
			return append([]string(nil), entry.criteria...)
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return nil
	}

	for _, entry := range ratingCriteria {
		head, _, _ := strings.Cut(strings.ToLower(entry.category), "&")
		head = strings.TrimSpace(head)
		if strings.Contains(head, normalized) || strings.Contains(normalized, head) {
			return append([]string(nil), entry.criteria...)
		}
	}

	return nil
}

// IsKnownCriterion reports whether the criterion belongs to the category's
// criteria set.
func IsKnownCriterion(category, criterion string) bool {
	for _, c := range CriteriaFor(category) {
		if c == criterion {
			return true
		}
	}
	return false
}
