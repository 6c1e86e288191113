package trade

import (
	"context"

	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order queries and lifecycle operations
type OrderService struct {
	scope  TransactionScope
	orders trade.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates an order service
func NewOrderService(scope TransactionScope, orders trade.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{scope: scope, orders: orders, logger: logger}
}

// GetOrder loads a single order
func (s *OrderService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResult, error) {
	order, err := s.orders.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResult(order), nil
}

// GetOrderByNumber loads an order by its human-readable number
func (s *OrderService) GetOrderByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderResult, error) {
	order, err := s.orders.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	return ToOrderResult(order), nil
}

// ListOrders returns a filtered, paginated order list
func (s *OrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[OrderResult], error) {
	page, err := s.orders.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[OrderResult]{}, err
	}
	return mapOrderPage(page), nil
}

// ListCustomerOrders returns one customer's orders
func (s *OrderService) ListCustomerOrders(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[OrderResult], error) {
	page, err := s.orders.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return shared.Paginated[OrderResult]{}, err
	}
	return mapOrderPage(page), nil
}

// GetCustomerOrder loads one order and verifies it belongs to the
// customer. Used for customer self-service access.
func (s *OrderService) GetCustomerOrder(ctx context.Context, tenantID, customerID, orderID uuid.UUID) (*OrderResult, error) {
	order, err := s.orders.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		// Hide the order's existence from other customers
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	return ToOrderResult(order), nil
}

// UpdateStatus advances an order through its lifecycle state machine
func (s *OrderService) UpdateStatus(ctx context.Context, cmd UpdateOrderStatusCommand) (*OrderResult, error) {
	if cmd.Status == trade.OrderStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Use the cancel operation to cancel an order")
	}

	var result *OrderResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByID(ctx, cmd.TenantID, cmd.OrderID)
		if err != nil {
			return err
		}
		expectedVersion := order.Version

		if err := order.TransitionTo(cmd.Status); err != nil {
			return err
		}

		if err := repos.Orders().SaveWithLock(ctx, order, expectedVersion); err != nil {
			return err
		}

		result = ToOrderResult(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", cmd.OrderID.String()),
		zap.String("status", cmd.Status.String()))

	return result, nil
}

// MarkPaid records payment received for an order
func (s *OrderService) MarkPaid(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResult, error) {
	var result *OrderResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		expectedVersion := order.Version

		if err := order.MarkPaid(); err != nil {
			return err
		}

		if err := repos.Orders().SaveWithLock(ctx, order, expectedVersion); err != nil {
			return err
		}

		result = ToOrderResult(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order paid", zap.String("order_id", orderID.String()))

	return result, nil
}

// Cancel cancels an order and restores its stock. Restoration happens
// in the same transaction as the status change, with row locks on the
// affected products.
func (s *OrderService) Cancel(ctx context.Context, cmd CancelOrderCommand) (*OrderResult, error) {
	var result *OrderResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByID(ctx, cmd.TenantID, cmd.OrderID)
		if err != nil {
			return err
		}
		expectedVersion := order.Version

		if err := order.Cancel(cmd.Reason); err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(order.Items))
		for _, item := range order.Items {
			productIDs = append(productIDs, item.ProductID)
		}

		products, err := repos.Products().FindByIDsForUpdate(ctx, cmd.TenantID, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]int, len(products))
		for idx := range products {
			byID[products[idx].ID] = idx
		}

		ledger := make([]*inventory.Transaction, 0, len(order.Items))
		for _, item := range order.Items {
			idx, ok := byID[item.ProductID]
			if !ok {
				// Product row was hard-deleted; nothing to restore
				continue
			}
			product := &products[idx]
			if err := product.RestoreStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}

			entry, err := inventory.NewTransaction(cmd.TenantID, product.ID, product.SKU,
				inventory.TransactionTypeCancellation, item.Quantity, product.Stock)
			if err != nil {
				return err
			}
			ledger = append(ledger, entry.WithOrder(order.ID, order.OrderNumber).WithPerformer(cmd.PerformedBy))
		}
		if err := repos.InventoryTransactions().SaveAll(ctx, ledger); err != nil {
			return err
		}

		if err := repos.Orders().SaveWithLock(ctx, order, expectedVersion); err != nil {
			return err
		}

		result = ToOrderResult(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", cmd.OrderID.String()),
		zap.String("reason", cmd.Reason))

	return result, nil
}

func mapOrderPage(page shared.Paginated[trade.Order]) shared.Paginated[OrderResult] {
	items := make([]OrderResult, 0, len(page.Items))
	for idx := range page.Items {
		items = append(items, *ToOrderResult(&page.Items[idx]))
	}
	return shared.Paginated[OrderResult]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
