package trade

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[Order], error)
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[Order], error)
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists the order with an optimistic version check.
	// Returns CONCURRENT_MODIFICATION when the stored version differs.
	SaveWithLock(ctx context.Context, order *Order, expectedVersion int) error
	// GenerateOrderNumber produces the next sequential order number for
	// the given day, formatted ORD-YYYYMMDD-NNNN.
	GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus) (int64, error)
}

// CartStore defines the cache operations for shopping carts
type CartStore interface {
	Get(ctx context.Context, tenantID, customerID uuid.UUID) (*Cart, error)
	Put(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}
