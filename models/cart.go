package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a shopper's cart. ID is the product id; there is
// at most one line per product id and Quantity never drops below 1.
type CartItem struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity" binding:"required,gte=1"`
}

// Cart holds the in-progress selection for one shopper.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddItem merges the incoming item into the cart: an existing line with the
// same product id has its quantity increased, otherwise the item is appended.
func (c *Cart) AddItem(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i, existing := range c.Items {
		if existing.ID == item.ID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the line with the given product id. Removing an absent
// id is a no-op.
func (c *Cart) RemoveItem(productID string) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
}

// Increment raises the quantity of the matching line by one.
func (c *Cart) Increment(productID string) {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			c.Items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of the matching line by one, clamped at 1.
// Dropping a line entirely is RemoveItem's job.
func (c *Cart) Decrement(productID string) {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			if c.Items[i].Quantity > 1 {
				c.Items[i].Quantity--
			}
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal returns the sum of price*quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// SubtotalCents returns the subtotal in the currency's minor unit, rounded
// half-up, as payment gateways expect.
func SubtotalCents(items []CartItem) int64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// UnitAmountCents converts a single item price to the currency's minor unit.
func UnitAmountCents(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
