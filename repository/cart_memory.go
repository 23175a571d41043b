package repository

import (
	"context"
	"sync"
	"time"

	"github.com/montasssar/EcommerceSnazzyWear/models"
)

// MemoryCartStore keeps carts in process memory. Carts live for the lifetime
// of the process only, which matches the session-bound cart semantics; use
// RedisCartStore when running more than one instance.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*models.Cart)}
}

// cart returns the stored cart for userID, creating an empty one if needed.
// Callers must hold mu.
func (s *MemoryCartStore) cart(userID string) *models.Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		s.carts[userID] = c
	}
	return c
}

// snapshot copies the cart so callers never share the store's slice.
func snapshot(c *models.Cart) *models.Cart {
	out := &models.Cart{UserID: c.UserID, UpdatedAt: c.UpdatedAt}
	out.Items = make([]models.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

func (s *MemoryCartStore) Get(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cart(userID)), nil
}

func (s *MemoryCartStore) AddItem(_ context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(userID)
	c.AddItem(item)
	c.UpdatedAt = time.Now().UTC()
	return snapshot(c), nil
}

func (s *MemoryCartStore) RemoveItem(_ context.Context, userID, productID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(userID)
	c.RemoveItem(productID)
	c.UpdatedAt = time.Now().UTC()
	return snapshot(c), nil
}

func (s *MemoryCartStore) IncrementItem(_ context.Context, userID, productID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(userID)
	c.Increment(productID)
	c.UpdatedAt = time.Now().UTC()
	return snapshot(c), nil
}

func (s *MemoryCartStore) DecrementItem(_ context.Context, userID, productID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(userID)
	c.Decrement(productID)
	c.UpdatedAt = time.Now().UTC()
	return snapshot(c), nil
}

func (s *MemoryCartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}
