package partner

import (
	"context"
	"testing"

	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCustomerRepository struct {
	mock.Mock
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[partner.Customer], error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(shared.Paginated[partner.Customer]), args.Error(1)
}

func (m *mockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func TestCustomerService_CreateWithAddress(t *testing.T) {
	tenantID := uuid.New()
	repo := new(mockCustomerRepository)
	repo.On("ExistsByEmail", mock.Anything, tenantID, "jo@example.com").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	svc := NewCustomerService(repo, zap.NewNop())
	result, err := svc.Create(context.Background(), CreateCustomerCommand{
		TenantID:     tenantID,
		Name:         "Jo Smith",
		Email:        "JO@example.com",
		Phone:        "+1 555 0100",
		AddressLine:  "1 Main St",
		AddressCity:  "Springfield",
		AddressState: "IL",
		AddressZip:   "62704",
	})
	require.NoError(t, err)

	assert.Equal(t, "jo@example.com", result.Email)
	assert.Equal(t, "1 Main St", result.AddressLine)
	assert.True(t, result.IsActive)
	repo.AssertExpectations(t)
}

func TestCustomerService_CreateDuplicateEmail(t *testing.T) {
	tenantID := uuid.New()
	repo := new(mockCustomerRepository)
	repo.On("ExistsByEmail", mock.Anything, tenantID, "jo@example.com").Return(true, nil)

	svc := NewCustomerService(repo, zap.NewNop())
	_, err := svc.Create(context.Background(), CreateCustomerCommand{
		TenantID: tenantID,
		Name:     "Jo Smith",
		Email:    "jo@example.com",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_UpdateToTakenEmail(t *testing.T) {
	tenantID := uuid.New()
	customer, err := partner.NewCustomer(tenantID, "Jo Smith", "jo@example.com", "")
	require.NoError(t, err)

	repo := new(mockCustomerRepository)
	repo.On("FindByID", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	repo.On("ExistsByEmail", mock.Anything, tenantID, "taken@example.com").Return(true, nil)

	svc := NewCustomerService(repo, zap.NewNop())
	_, err = svc.Update(context.Background(), UpdateCustomerCommand{
		TenantID:   tenantID,
		CustomerID: customer.ID,
		Name:       "Jo Smith",
		Email:      "taken@example.com",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
	assert.Equal(t, "jo@example.com", customer.Email)
}

func TestCustomerService_DeactivateKeepsRecord(t *testing.T) {
	tenantID := uuid.New()
	customer, err := partner.NewCustomer(tenantID, "Jo Smith", "jo@example.com", "")
	require.NoError(t, err)

	repo := new(mockCustomerRepository)
	repo.On("FindByID", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, customer).Return(nil)

	svc := NewCustomerService(repo, zap.NewNop())
	require.NoError(t, svc.Deactivate(context.Background(), tenantID, customer.ID))

	assert.False(t, customer.IsActive)
	assert.Equal(t, "Jo Smith", customer.Name)
	repo.AssertExpectations(t)
}
