package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCartStore keeps shopping carts in Redis with a sliding TTL.
// Carts are ephemeral; an expired cart simply reads back as empty.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a cart store backed by Redis
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(tenantID, customerID uuid.UUID) string {
	return fmt.Sprintf("cart:%s:%s", tenantID, customerID)
}

// Get loads a customer's cart, returning a new empty cart when none is
// stored
func (s *RedisCartStore) Get(ctx context.Context, tenantID, customerID uuid.UUID) (*trade.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(tenantID, customerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return trade.NewCart(tenantID, customerID), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart trade.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

// Put stores a cart and refreshes its TTL
func (s *RedisCartStore) Put(ctx context.Context, cart *trade.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(cart.TenantID, cart.CustomerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// Delete removes a customer's cart
func (s *RedisCartStore) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(tenantID, customerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
