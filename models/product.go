package models

import "time"

// Product categories are a fixed set; the storefront renders one
// navigation section per category.
const (
	CategoryMen         = "Men"
	CategoryWomen       = "Women"
	CategoryAccessories = "Accessories"
)

// ValidCategory reports whether s is one of the storefront categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryMen, CategoryWomen, CategoryAccessories:
		return true
	}
	return false
}

// Product is a catalog record. ID and the timestamps are assigned by the
// persistence layer on create; clients never send them.
type Product struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}
