package trade

import (
	"context"
	"testing"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPricing() config.CheckoutConfig {
	return config.CheckoutConfig{
		TaxRate:               decimal.RequireFromString("0.08"),
		ShippingFee:           decimal.RequireFromString("5.00"),
		FreeShippingThreshold: decimal.RequireFromString("50.00"),
	}
}

type checkoutFixture struct {
	svc        *CheckoutService
	repos      *testRepos
	cartStore  *MockCartStore
	tenantID   uuid.UUID
	customerID uuid.UUID
	customer   *partner.Customer
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	tenantID := uuid.New()

	customer, err := partner.NewCustomer(tenantID, "Alice Smith", "alice@example.com", "")
	require.NoError(t, err)

	repos := newTestRepos()
	cartStore := new(MockCartStore)
	scope := &NoOpTransactionScope{Repos: repos}

	return &checkoutFixture{
		svc:        NewCheckoutService(scope, cartStore, testPricing(), zap.NewNop()),
		repos:      repos,
		cartStore:  cartStore,
		tenantID:   tenantID,
		customerID: customer.ID,
		customer:   customer,
	}
}

func makeProduct(t *testing.T, tenantID uuid.UUID, sku, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(tenantID, sku, "Product "+sku, decimal.RequireFromString(price), decimal.Zero, stock, 5)
	require.NoError(t, err)
	return p
}

func TestCheckout_TotalsWorkedExample(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	product := makeProduct(t, f.tenantID, "WID-001", "12.50", 10)

	cart := trade.NewCart(f.tenantID, f.customerID)
	require.NoError(t, cart.AddItem(product.ID, product.Name, product.SKU, product.Price, 2))

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(cart, nil)
	f.cartStore.On("Delete", ctx, f.tenantID, f.customerID).Return(nil)
	f.repos.customers.On("FindByID", ctx, f.tenantID, f.customerID).Return(f.customer, nil)
	f.repos.products.On("FindByIDsForUpdate", ctx, f.tenantID, mock.Anything).Return([]catalog.Product{*product}, nil)
	f.repos.orders.On("GenerateOrderNumber", ctx, f.tenantID, mock.Anything).Return("ORD-20260830-0001", nil)
	f.repos.orders.On("Save", ctx, mock.Anything).Return(nil)
	f.repos.products.On("Save", ctx, mock.Anything).Return(nil)

	var savedLedger []*inventory.Transaction
	f.repos.ledger.On("SaveAll", ctx, mock.Anything).Run(func(args mock.Arguments) {
		savedLedger = args.Get(1).([]*inventory.Transaction)
	}).Return(nil)

	result, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	// 2 x 12.50 = 25.00 subtotal, 8% tax = 2.00, shipping 5.00
	assert.Equal(t, "25.00", result.Subtotal)
	assert.Equal(t, "2.00", result.Tax)
	assert.Equal(t, "5.00", result.ShippingCost)
	assert.Equal(t, "32.00", result.Total)
	assert.Equal(t, "ORD-20260830-0001", result.OrderNumber)
	assert.Equal(t, "pending", result.Status)

	// Stock deducted and recorded in the ledger
	require.Len(t, savedLedger, 1)
	assert.Equal(t, inventory.TransactionTypeSale, savedLedger[0].Type)
	assert.Equal(t, -2, savedLedger[0].Delta)
	assert.Equal(t, 8, savedLedger[0].StockAfter)
	assert.Equal(t, "ORD-20260830-0001", savedLedger[0].Reference)

	f.cartStore.AssertCalled(t, "Delete", ctx, f.tenantID, f.customerID)
}

func TestCheckout_FreeShippingAtThreshold(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	// Exactly 50.00 qualifies for free shipping
	product := makeProduct(t, f.tenantID, "WID-001", "25.00", 10)

	cart := trade.NewCart(f.tenantID, f.customerID)
	require.NoError(t, cart.AddItem(product.ID, product.Name, product.SKU, product.Price, 2))

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(cart, nil)
	f.cartStore.On("Delete", ctx, f.tenantID, f.customerID).Return(nil)
	f.repos.customers.On("FindByID", ctx, f.tenantID, f.customerID).Return(f.customer, nil)
	f.repos.products.On("FindByIDsForUpdate", ctx, f.tenantID, mock.Anything).Return([]catalog.Product{*product}, nil)
	f.repos.orders.On("GenerateOrderNumber", ctx, f.tenantID, mock.Anything).Return("ORD-20260830-0002", nil)
	f.repos.orders.On("Save", ctx, mock.Anything).Return(nil)
	f.repos.products.On("Save", ctx, mock.Anything).Return(nil)
	f.repos.ledger.On("SaveAll", ctx, mock.Anything).Return(nil)

	result, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	assert.Equal(t, "50.00", result.Subtotal)
	assert.Equal(t, "0.00", result.ShippingCost)
	assert.Equal(t, "54.00", result.Total)
}

func TestCheckout_InsufficientStockWritesNothing(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	inStock := makeProduct(t, f.tenantID, "WID-001", "10.00", 50)
	scarce := makeProduct(t, f.tenantID, "WID-002", "10.00", 1)

	cart := trade.NewCart(f.tenantID, f.customerID)
	require.NoError(t, cart.AddItem(inStock.ID, inStock.Name, inStock.SKU, inStock.Price, 2))
	require.NoError(t, cart.AddItem(scarce.ID, scarce.Name, scarce.SKU, scarce.Price, 5))

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(cart, nil)
	f.repos.customers.On("FindByID", ctx, f.tenantID, f.customerID).Return(f.customer, nil)
	f.repos.products.On("FindByIDsForUpdate", ctx, f.tenantID, mock.Anything).Return([]catalog.Product{*inStock, *scarce}, nil)

	_, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "WID-002")

	// No order, stock or ledger writes, and the cart survives
	f.repos.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.repos.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.repos.ledger.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	f.cartStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(trade.NewCart(f.tenantID, f.customerID), nil)

	_, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
}

func TestCheckout_InactiveCustomer(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.customer.Deactivate()

	product := makeProduct(t, f.tenantID, "WID-001", "10.00", 10)
	cart := trade.NewCart(f.tenantID, f.customerID)
	require.NoError(t, cart.AddItem(product.ID, product.Name, product.SKU, product.Price, 1))

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(cart, nil)
	f.repos.customers.On("FindByID", ctx, f.tenantID, f.customerID).Return(f.customer, nil)

	_, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CUSTOMER_INACTIVE", domainErr.Code)
}

func TestCheckout_DeactivatedProduct(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	product := makeProduct(t, f.tenantID, "WID-001", "10.00", 10)
	cart := trade.NewCart(f.tenantID, f.customerID)
	require.NoError(t, cart.AddItem(product.ID, product.Name, product.SKU, product.Price, 1))
	product.Deactivate()

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(cart, nil)
	f.repos.customers.On("FindByID", ctx, f.tenantID, f.customerID).Return(f.customer, nil)
	f.repos.products.On("FindByIDsForUpdate", ctx, f.tenantID, mock.Anything).Return([]catalog.Product{*product}, nil)

	_, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
}

func TestCheckout_UsesCurrentCatalogPrice(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	product := makeProduct(t, f.tenantID, "WID-001", "20.00", 10)

	// Cart snapshotted an older, lower price
	cart := trade.NewCart(f.tenantID, f.customerID)
	require.NoError(t, cart.AddItem(product.ID, product.Name, product.SKU, decimal.RequireFromString("15.00"), 1))

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(cart, nil)
	f.cartStore.On("Delete", ctx, f.tenantID, f.customerID).Return(nil)
	f.repos.customers.On("FindByID", ctx, f.tenantID, f.customerID).Return(f.customer, nil)
	f.repos.products.On("FindByIDsForUpdate", ctx, f.tenantID, mock.Anything).Return([]catalog.Product{*product}, nil)
	f.repos.orders.On("GenerateOrderNumber", ctx, f.tenantID, mock.Anything).Return("ORD-20260830-0003", nil)
	f.repos.orders.On("Save", ctx, mock.Anything).Return(nil)
	f.repos.products.On("Save", ctx, mock.Anything).Return(nil)
	f.repos.ledger.On("SaveAll", ctx, mock.Anything).Return(nil)

	result, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	assert.Equal(t, "20.00", result.Subtotal, "checkout charges the catalog price")
	require.Len(t, result.Items, 1)
	assert.Equal(t, "20.00", result.Items[0].UnitPrice)
}

func TestCheckout_ShippingAddressOverride(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	product := makeProduct(t, f.tenantID, "WID-001", "10.00", 10)
	cart := trade.NewCart(f.tenantID, f.customerID)
	require.NoError(t, cart.AddItem(product.ID, product.Name, product.SKU, product.Price, 1))

	f.cartStore.On("Get", ctx, f.tenantID, f.customerID).Return(cart, nil)
	f.cartStore.On("Delete", ctx, f.tenantID, f.customerID).Return(nil)
	f.repos.customers.On("FindByID", ctx, f.tenantID, f.customerID).Return(f.customer, nil)
	f.repos.products.On("FindByIDsForUpdate", ctx, f.tenantID, mock.Anything).Return([]catalog.Product{*product}, nil)
	f.repos.orders.On("GenerateOrderNumber", ctx, f.tenantID, mock.Anything).Return("ORD-20260830-0004", nil)
	f.repos.orders.On("Save", ctx, mock.Anything).Return(nil)
	f.repos.products.On("Save", ctx, mock.Anything).Return(nil)
	f.repos.ledger.On("SaveAll", ctx, mock.Anything).Return(nil)

	result, err := f.svc.Checkout(ctx, CheckoutCommand{
		TenantID:      f.tenantID,
		CustomerID:    f.customerID,
		PaymentMethod: "credit_card",
		ShippingLine:  "456 Oak Ave",
		ShippingCity:  "Portland",
		ShippingState: "OR",
		ShippingZip:   "97201",
	})
	require.NoError(t, err)
	assert.Equal(t, "456 Oak Ave", result.ShippingLine)
	assert.Equal(t, "97201", result.ShippingZip)
}
