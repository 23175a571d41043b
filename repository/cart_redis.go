package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/montasssar/EcommerceSnazzyWear/models"
)

// RedisCartStore keeps carts in Redis so multiple instances see the same
// cart. Carts expire after the configured TTL of shopper inactivity.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) key(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

func (s *RedisCartStore) load(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}
	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

func (s *RedisCartStore) save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(cart.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Get(ctx context.Context, userID string) (*models.Cart, error) {
	return s.load(ctx, userID)
}

func (s *RedisCartStore) AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(item)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) IncrementItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Increment(productID)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) DecrementItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Decrement(productID)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisCartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}
