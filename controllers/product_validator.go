package controllers

import (
	"github.com/montasssar/EcommerceSnazzyWear/models"
)

// ValidateProductPayload is a structural check on an inbound product body:
// name, description, imageUrl must be strings, price a number, category one
// of the three storefront categories, and all five keys present. It is shape
// only; business rules like a non-negative price are the form's concern.
func ValidateProductPayload(raw map[string]interface{}) (models.Product, bool) {
	var p models.Product

	name, ok := raw["name"].(string)
	if !ok {
		return p, false
	}
	description, ok := raw["description"].(string)
	if !ok {
		return p, false
	}
	price, ok := raw["price"].(float64)
	if !ok {
		return p, false
	}
	imageURL, ok := raw["imageUrl"].(string)
	if !ok {
		return p, false
	}
	category, ok := raw["category"].(string)
	if !ok || !models.ValidCategory(category) {
		return p, false
	}

	p = models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		Category:    category,
	}

	if sub, present := raw["subCategory"]; present {
		subStr, ok := sub.(string)
		if !ok {
			return models.Product{}, false
		}
		p.SubCategory = subStr
	}
	return p, true
}
