package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartAddItem(t *testing.T) {
	cart := &Cart{UserID: "u1"}

	t.Run("Append New Line", func(t *testing.T) {
		cart.AddItem(CartItem{ID: "p1", Name: "Tee", Price: 10.00, Quantity: 1})
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("Merge Existing Line", func(t *testing.T) {
		cart.AddItem(CartItem{ID: "p1", Name: "Tee", Price: 10.00, Quantity: 2})
		assert.Len(t, cart.Items, 1, "same product id must not create a second line")
		assert.Equal(t, 3, cart.Items[0].Quantity)
	})

	t.Run("Quantity Floor", func(t *testing.T) {
		cart.AddItem(CartItem{ID: "p2", Name: "Cap", Price: 5.00, Quantity: 0})
		assert.Equal(t, 1, cart.Items[1].Quantity)
	})
}

func TestCartRemoveItem(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ID: "p1", Quantity: 2},
		{ID: "p2", Quantity: 1},
	}}

	cart.RemoveItem("p1")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ID)

	// Removing an absent id is a no-op
	cart.RemoveItem("missing")
	assert.Len(t, cart.Items, 1)

	// Re-adding after removal starts a fresh line, not the old quantity
	cart.AddItem(CartItem{ID: "p1", Quantity: 1})
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestCartIncrementDecrement(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ID: "p1", Quantity: 1}}}

	cart.Increment("p1")
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart.Decrement("p1")
	cart.Decrement("p1")
	cart.Decrement("p1")
	assert.Equal(t, 1, cart.Items[0].Quantity, "decrement clamps at 1, never removes the line")

	// Unknown ids are ignored
	cart.Increment("missing")
	cart.Decrement("missing")
	assert.Len(t, cart.Items, 1)
}

func TestCartClear(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ID: "p1", Quantity: 3}}}
	cart.Clear()
	assert.Empty(t, cart.Items)
}

func TestSubtotal(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ID: "p1", Price: 10.00, Quantity: 1},
		{ID: "p2", Price: 10.00, Quantity: 2},
	}}

	assert.Equal(t, "30", cart.Subtotal().String())
	assert.Equal(t, int64(3000), SubtotalCents(cart.Items))
}

func TestUnitAmountCents(t *testing.T) {
	assert.Equal(t, int64(1999), UnitAmountCents(19.99))
	// Float arithmetic must not shave a cent off
	assert.Equal(t, int64(29), UnitAmountCents(0.29))
}
