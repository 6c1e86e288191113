package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/shared/valueobject"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutService converts carts into orders. The whole operation runs
// in one database transaction with row locks on the affected products:
// either the order, all stock deductions and all ledger entries commit,
// or nothing does.
type CheckoutService struct {
	scope     TransactionScope
	cartStore trade.CartStore
	pricing   config.CheckoutConfig
	logger    *zap.Logger
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(scope TransactionScope, cartStore trade.CartStore, pricing config.CheckoutConfig, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		scope:     scope,
		cartStore: cartStore,
		pricing:   pricing,
		logger:    logger,
	}
}

// Checkout places an order from the customer's cart
func (s *CheckoutService) Checkout(ctx context.Context, cmd CheckoutCommand) (*OrderResult, error) {
	if cmd.PaymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is required")
	}

	cart, err := s.cartStore.Get(ctx, cmd.TenantID, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	var order *trade.Order
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.Customers().FindByID(ctx, cmd.TenantID, cmd.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsActive {
			return shared.NewDomainError("CUSTOMER_INACTIVE", "Customer account is deactivated")
		}

		productIDs := make([]uuid.UUID, 0, len(cart.Items))
		for _, item := range cart.Items {
			productIDs = append(productIDs, item.ProductID)
		}

		// Lock all products for the duration of the transaction
		products, err := repos.Products().FindByIDsForUpdate(ctx, cmd.TenantID, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]int, len(products))
		for idx := range products {
			byID[products[idx].ID] = idx
		}

		// Validate everything before touching any stock
		var shortages []string
		for _, item := range cart.Items {
			idx, ok := byID[item.ProductID]
			if !ok {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %s no longer exists", item.ProductSKU))
			}
			product := &products[idx]
			if !product.IsActive {
				return shared.NewDomainError("PRODUCT_UNAVAILABLE", fmt.Sprintf("Product %s is no longer available", product.SKU))
			}
			if !product.HasStock(item.Quantity) {
				shortages = append(shortages, fmt.Sprintf("%s (requested %d, available %d)", product.SKU, item.Quantity, product.Stock))
			}
		}
		if len(shortages) > 0 {
			return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock: "+strings.Join(shortages, ", "))
		}

		orderNumber, err := repos.Orders().GenerateOrderNumber(ctx, cmd.TenantID, time.Now())
		if err != nil {
			return err
		}

		order, err = trade.NewOrder(cmd.TenantID, orderNumber, customer.ID, customer.Name, cmd.PaymentMethod)
		if err != nil {
			return err
		}
		order.SetCreatedBy(cmd.PerformedBy)

		if err := s.applyShippingAddress(order, customer, cmd); err != nil {
			return err
		}
		if cmd.Notes != "" {
			order.SetNotes(cmd.Notes)
		}

		// Build line items at current catalog prices, not the cart's
		// display snapshots
		for _, item := range cart.Items {
			product := &products[byID[item.ProductID]]
			if _, err := order.AddItem(product.ID, product.Name, product.SKU, item.Quantity, valueobject.NewMoneyUSD(product.Price)); err != nil {
				return err
			}
		}

		subtotal := order.ItemSubtotal()
		tax := subtotal.Mul(s.pricing.TaxRate).Round(2)
		shipping := s.pricing.ShippingFee
		if subtotal.GreaterThanOrEqual(s.pricing.FreeShippingThreshold) {
			shipping = decimal.Zero
		}
		if err := order.ApplyTotals(subtotal, tax, shipping); err != nil {
			return err
		}

		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		// Deduct stock and write the ledger under the same locks
		ledger := make([]*inventory.Transaction, 0, len(cart.Items))
		for _, item := range cart.Items {
			product := &products[byID[item.ProductID]]
			if err := product.DeductStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}

			entry, err := inventory.NewTransaction(cmd.TenantID, product.ID, product.SKU,
				inventory.TransactionTypeSale, -item.Quantity, product.Stock)
			if err != nil {
				return err
			}
			ledger = append(ledger, entry.WithOrder(order.ID, order.OrderNumber).WithPerformer(cmd.PerformedBy))
		}
		if err := repos.InventoryTransactions().SaveAll(ctx, ledger); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is committed; a failed cart cleanup only leaves a stale
	// cart behind
	if err := s.cartStore.Delete(ctx, cmd.TenantID, cmd.CustomerID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_id", cmd.CustomerID.String()),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("items", order.ItemCount()))

	return ToOrderResult(order), nil
}

func (s *CheckoutService) applyShippingAddress(order *trade.Order, customer *partner.Customer, cmd CheckoutCommand) error {
	if cmd.ShippingLine != "" {
		addr, err := valueobject.NewAddress(cmd.ShippingLine, cmd.ShippingCity, cmd.ShippingState, cmd.ShippingZip)
		if err != nil {
			return shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		order.SetShippingAddress(addr)
		return nil
	}

	if customer.HasAddress() {
		addr, err := customer.Address()
		if err != nil {
			return err
		}
		order.SetShippingAddress(addr)
	}
	return nil
}
