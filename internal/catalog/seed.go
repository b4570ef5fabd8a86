package catalog

import (
	"time"

	"github.com/trustmarket/trustmarket/internal/domain"
)

// Categories returns the marketplace category taxonomy, in display order.
func Categories() []string {
	return []string{
		"Food & Beverages",
		"Cosmetics & Personal Care",
		"Clothing & Apparel",
		"Electronics & Gadgets",
		"Home Appliances",
		"Toys & Baby Products",
		"Furniture & Home Décor",
		"Pharmaceuticals & Health Products",
	}
}

// Seed returns the development catalog used when no external catalog
// provider is configured.
func Seed() []domain.Product {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	return []domain.Product{
		{
			ID:          "organic-almond-milk",
			Name:        "Organic Almond Milk",
			Brand:       "GreenHarvest",
			Category:    "Food & Beverages",
			Description: "Dairy-free, lactose-free almond milk with no added sugar. Great for smoothies and cereals.",
			Price:       199,
			Currency:    "INR",
			Rating:      4.5,
			ReviewCount: 124,
			SafetyScore: 92,
			Tags:        []string{"Eco-Friendly", "Made in India", "FSSAI Certified"},
			CreatedAt:   created,
		},
		{
			ID:          "herbal-face-cleanser",
			Name:        "Herbal Face Cleanser",
			Brand:       "PureLeaf",
			Category:    "Cosmetics & Personal Care",
			Description: "Gentle cleanser with natural extracts suitable for all skin types.",
			Price:       349,
			Currency:    "INR",
			Rating:      4.2,
			ReviewCount: 89,
			SafetyScore: 85,
			Tags:        []string{"Ethically Sourced", "Paraben Free"},
			CreatedAt:   created,
		},
		{
			ID:          "cotton-crew-tshirt",
			Name:        "Cotton Crew T-Shirt",
			Brand:       "WeaveWorks",
			Category:    "Clothing & Apparel",
			Description: "100% cotton, soft-touch, classic fit with durable stitching.",
			Price:       599,
			Currency:    "INR",
			Rating:      4.0,
			ReviewCount: 210,
			SafetyScore: 80,
			Tags:        []string{"Made in India", "Ethically Sourced"},
			CreatedAt:   created,
		},
		{
			ID:          "wireless-earbuds-pro",
			Name:        "Wireless Earbuds Pro",
			Brand:       "AudioTech",
			Category:    "Electronics & Gadgets",
			Description: "Noise cancellation, long battery life, and ergonomic design for all-day comfort.",
			Price:       2999,
			Currency:    "INR",
			Rating:      4.6,
			ReviewCount: 540,
			SafetyScore: 88,
			Tags:        []string{"Fast Charging", "1-Year Warranty"},
			CreatedAt:   created,
		},
		{
			ID:          "energy-efficient-mixer",
			Name:        "Energy Efficient Mixer",
			Brand:       "KitchenPro",
			Category:    "Home Appliances",
			Description: "Powerful motor, stainless steel blades, and multi-speed control for everyday kitchen tasks.",
			Price:       1899,
			Currency:    "INR",
			Rating:      4.1,
			ReviewCount: 62,
			SafetyScore: 83,
			Tags:        []string{"Energy Star", "2-Year Warranty"},
			CreatedAt:   created,
		},
		{
			ID:          "baby-soft-plush-toy",
			Name:        "Baby Soft Plush Toy",
			Brand:       "TinyTots",
			Category:    "Toys & Baby Products",
			Description: "Non-toxic materials, soft and safe for infants and toddlers.",
			Price:       499,
			Currency:    "INR",
			Rating:      4.7,
			ReviewCount: 155,
			SafetyScore: 94,
			Tags:        []string{"Non-toxic", "Durable"},
			CreatedAt:   created,
		},
		{
			ID:          "wooden-study-table",
			Name:        "Wooden Study Table",
			Brand:       "OakNest",
			Category:    "Furniture & Home Décor",
			Description: "Solid wood, minimalist design with rounded corners and cable management.",
			Price:       6499,
			Currency:    "INR",
			Rating:      4.3,
			ReviewCount: 34,
			SafetyScore: 86,
			Tags:        []string{"Sustainably Sourced", "Handcrafted"},
			CreatedAt:   created,
		},
		{
			ID:          "vitamin-c-tablets",
			Name:        "Vitamin C Tablets",
			Brand:       "VitaCare",
			Category:    "Pharmaceuticals & Health Products",
			Description: "Boost immunity with high-quality vitamin C. Lab-tested and label-accurate.",
			Price:       299,
			Currency:    "INR",
			Rating:      4.4,
			ReviewCount: 410,
			SafetyScore: 90,
			Tags:        []string{"Label Accurate", "GMP Certified"},
			CreatedAt:   created,
		},
	}
}
