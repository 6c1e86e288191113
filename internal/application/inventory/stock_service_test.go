package inventory

import (
	"context"
	"testing"

	apptrade "github.com/commerce/backend/internal/application/trade"
	"github.com/commerce/backend/internal/domain/catalog"
	domaininv "github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProducts struct {
	mock.Mock
}

func (m *mockProducts) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProducts) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProducts) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *mockProducts) FindByIDsForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProducts) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProducts) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProducts) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *mockProducts) Categories(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Save(ctx context.Context, tx *domaininv.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockLedger) SaveAll(ctx context.Context, txs []*domaininv.Transaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *mockLedger) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) (shared.Paginated[domaininv.Transaction], error) {
	args := m.Called(ctx, tenantID, productID, filter)
	return args.Get(0).(shared.Paginated[domaininv.Transaction]), args.Error(1)
}

func (m *mockLedger) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[domaininv.Transaction], error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(shared.Paginated[domaininv.Transaction]), args.Error(1)
}

type stubRepos struct {
	products *mockProducts
	ledger   *mockLedger
}

func (r *stubRepos) Products() catalog.ProductRepository                    { return r.products }
func (r *stubRepos) Orders() trade.OrderRepository                          { return nil }
func (r *stubRepos) Customers() partner.CustomerRepository                  { return nil }
func (r *stubRepos) InventoryTransactions() domaininv.TransactionRepository { return r.ledger }

func newStockFixture() (*StockService, *stubRepos) {
	repos := &stubRepos{products: new(mockProducts), ledger: new(mockLedger)}
	scope := &apptrade.NoOpTransactionScope{Repos: repos}
	return NewStockService(scope, repos.ledger, zap.NewNop()), repos
}

func makeStockProduct(t *testing.T, tenantID uuid.UUID, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(tenantID, "WID-001", "Widget", decimal.NewFromInt(10), decimal.Zero, stock, 5)
	require.NoError(t, err)
	return p
}

func TestStockService_AdjustSet(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, repos := newStockFixture()

	product := makeStockProduct(t, tenantID, 10)
	repos.products.On("FindByIDsForUpdate", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	repos.products.On("Save", ctx, mock.Anything).Return(nil)

	var saved *domaininv.Transaction
	repos.ledger.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domaininv.Transaction)
	}).Return(nil)

	result, err := svc.Adjust(ctx, AdjustStockCommand{
		TenantID:  tenantID,
		ProductID: product.ID,
		Mode:      AdjustModeSet,
		Quantity:  25,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, result.Stock)
	assert.Equal(t, 15, result.Delta)
	require.NotNil(t, saved)
	assert.Equal(t, domaininv.TransactionTypeAdjustment, saved.Type)
	assert.Equal(t, 15, saved.Delta)
}

func TestStockService_AdjustAddRecordsRestock(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, repos := newStockFixture()

	product := makeStockProduct(t, tenantID, 10)
	repos.products.On("FindByIDsForUpdate", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	repos.products.On("Save", ctx, mock.Anything).Return(nil)

	var saved *domaininv.Transaction
	repos.ledger.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domaininv.Transaction)
	}).Return(nil)

	result, err := svc.Adjust(ctx, AdjustStockCommand{
		TenantID:  tenantID,
		ProductID: product.ID,
		Mode:      AdjustModeAdd,
		Quantity:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, result.Stock)
	require.NotNil(t, saved)
	assert.Equal(t, domaininv.TransactionTypeRestock, saved.Type)
	assert.Equal(t, 5, saved.Delta)
}

func TestStockService_AdjustRemoveFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, repos := newStockFixture()

	product := makeStockProduct(t, tenantID, 3)
	repos.products.On("FindByIDsForUpdate", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	repos.products.On("Save", ctx, mock.Anything).Return(nil)

	var saved *domaininv.Transaction
	repos.ledger.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domaininv.Transaction)
	}).Return(nil)

	result, err := svc.Adjust(ctx, AdjustStockCommand{
		TenantID:  tenantID,
		ProductID: product.ID,
		Mode:      AdjustModeRemove,
		Quantity:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stock)
	assert.Equal(t, -3, result.Delta, "only the available stock is removed")
	require.NotNil(t, saved)
	assert.Equal(t, -3, saved.Delta)
}

func TestStockService_AdjustNoOpSkipsLedger(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, repos := newStockFixture()

	product := makeStockProduct(t, tenantID, 10)
	repos.products.On("FindByIDsForUpdate", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	repos.products.On("Save", ctx, mock.Anything).Return(nil)

	result, err := svc.Adjust(ctx, AdjustStockCommand{
		TenantID:  tenantID,
		ProductID: product.ID,
		Mode:      AdjustModeSet,
		Quantity:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Delta)
	repos.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStockService_AdjustValidation(t *testing.T) {
	svc, _ := newStockFixture()
	ctx := context.Background()

	_, err := svc.Adjust(ctx, AdjustStockCommand{Mode: AdjustMode("recount"), Quantity: 1})
	require.Error(t, err)

	_, err = svc.Adjust(ctx, AdjustStockCommand{Mode: AdjustModeAdd, Quantity: 0})
	require.Error(t, err)

	_, err = svc.Adjust(ctx, AdjustStockCommand{Mode: AdjustModeSet, Quantity: -1})
	require.Error(t, err)
}

func TestStockService_AdjustUnknownProduct(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, repos := newStockFixture()
	productID := uuid.New()

	repos.products.On("FindByIDsForUpdate", ctx, tenantID, []uuid.UUID{productID}).Return([]catalog.Product{}, nil)

	_, err := svc.Adjust(ctx, AdjustStockCommand{
		TenantID:  tenantID,
		ProductID: productID,
		Mode:      AdjustModeAdd,
		Quantity:  1,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}
