package persistence

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var orderSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"total":        true,
	"status":       true,
}

// GormOrderRepository is the GORM implementation of
// trade.OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates an order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber loads an order by its human-readable number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*trade.Order, error) {
	var order trade.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) findPage(ctx context.Context, base *gorm.DB, filter shared.Filter) (shared.Paginated[trade.Order], error) {
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		base = base.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"].(uuid.UUID); ok {
		base = base.Where("customer_id = ?", customerID)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok {
		base = base.Where("created_at >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok {
		base = base.Where("created_at < ?", to)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("order_number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[trade.Order]{}, err
	}

	offset, limit := paging(filter)
	var orders []trade.Order
	err := base.
		Preload("Items").
		Order(applySort(filter, orderSortColumns)).
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return shared.Paginated[trade.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, limit), nil
}

// FindAll returns a filtered, paginated order list
func (r *GormOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[trade.Order], error) {
	base := r.db.WithContext(ctx).Model(&trade.Order{}).Where("tenant_id = ?", tenantID)
	return r.findPage(ctx, base, filter)
}

// FindByCustomer returns a customer's orders
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[trade.Order], error) {
	base := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	return r.findPage(ctx, base, filter)
}

// Save persists an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock persists the order only if the stored version matches
// expectedVersion, then bumps the version. A zero-row update means a
// concurrent writer got there first.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *trade.Order, expectedVersion int) error {
	order.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("id = ? AND tenant_id = ? AND version = ?", order.ID, order.TenantID, expectedVersion).
		Updates(map[string]interface{}{
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"subtotal":       order.Subtotal,
			"tax":            order.Tax,
			"shipping_cost":  order.ShippingCost,
			"total":          order.Total,
			"notes":          order.Notes,
			"shipped_at":     order.ShippedAt,
			"delivered_at":   order.DeliveredAt,
			"cancelled_at":   order.CancelledAt,
			"cancel_reason":  order.CancelReason,
			"version":        order.Version,
			"updated_at":     order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "Order was modified by another process")
	}
	return nil
}

// GenerateOrderNumber produces the next ORD-YYYYMMDD-NNNN number for
// the day. Must be called inside the checkout transaction.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error) {
	prefix := fmt.Sprintf("ORD-%s-", day.Format("20060102"))

	// Postgres runs writers concurrently, so two checkouts that touch
	// disjoint product sets could both count N and both build N+1. A
	// transaction-scoped advisory lock serializes the per-tenant daily
	// counter; it releases on commit or rollback. SQLite has a single
	// writer and needs none.
	if r.db.Dialector.Name() == "postgres" {
		err := r.db.WithContext(ctx).
			Exec("SELECT pg_advisory_xact_lock(?)", orderNumberLockKey(tenantID, prefix)).Error
		if err != nil {
			return "", fmt.Errorf("failed to lock order number counter: %w", err)
		}
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("failed to count orders for number generation: %w", err)
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// orderNumberLockKey derives a stable advisory lock key from the
// tenant and day prefix
func orderNumberLockKey(tenantID uuid.UUID, prefix string) int64 {
	h := fnv.New64a()
	h.Write(tenantID[:])
	h.Write([]byte(prefix))
	return int64(h.Sum64())
}

// CountByStatus counts a tenant's orders in a given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status trade.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error
	return count, err
}
