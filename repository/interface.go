package repository

import (
	"context"
	"errors"

	"github.com/montasssar/EcommerceSnazzyWear/models"
)

// ErrNotFound is returned when a record does not exist in the backing store.
var ErrNotFound = errors.New("record not found")

// ProductRepository abstracts the product document store.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// CartStore owns the shoppers' carts. Implementations must keep the cart
// invariants: one line per product id, quantity >= 1. Every mutation returns
// the full updated cart so callers can respond with the new state without a
// second read.
type CartStore interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error)
	IncrementItem(ctx context.Context, userID, productID string) (*models.Cart, error)
	DecrementItem(ctx context.Context, userID, productID string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) error
}
