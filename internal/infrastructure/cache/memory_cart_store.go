package cache

import (
	"context"
	"sync"

	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// MemoryCartStore keeps carts in process memory. Used when Redis is
// disabled; carts do not survive a restart.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*trade.Cart
}

// NewMemoryCartStore creates an in-memory cart store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*trade.Cart)}
}

// Get loads a customer's cart, returning a new empty cart when none is
// stored
func (s *MemoryCartStore) Get(_ context.Context, tenantID, customerID uuid.UUID) (*trade.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[cartKey(tenantID, customerID)]
	if !ok {
		return trade.NewCart(tenantID, customerID), nil
	}

	// Copy so callers cannot mutate the stored cart without Put
	clone := *cart
	clone.Items = make([]trade.CartItem, len(cart.Items))
	copy(clone.Items, cart.Items)
	return &clone, nil
}

// Put stores a cart
func (s *MemoryCartStore) Put(_ context.Context, cart *trade.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *cart
	clone.Items = make([]trade.CartItem, len(cart.Items))
	copy(clone.Items, cart.Items)
	s.carts[cartKey(cart.TenantID, cart.CustomerID)] = &clone
	return nil
}

// Delete removes a customer's cart
func (s *MemoryCartStore) Delete(_ context.Context, tenantID, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartKey(tenantID, customerID))
	return nil
}
