package identity

import (
	"context"
	"testing"
	"time"

	"github.com/commerce/backend/internal/domain/identity"
	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[identity.User], error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(shared.Paginated[identity.User]), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error) {
	args := m.Called(ctx, tenantID, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[partner.Customer], error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(shared.Paginated[partner.Customer]), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func newAuthFixture() (*AuthService, *MockUserRepository, *MockCustomerRepository) {
	users := new(MockUserRepository)
	customers := new(MockCustomerRepository)
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		Issuer:          "commerce-backend",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	return NewAuthService(users, customers, tokens, zap.NewNop()), users, customers
}

func TestAuthService_Register_CustomerGetsCustomerRecord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, customers := newAuthFixture()

	users.On("ExistsByUsername", ctx, tenantID, "alice").Return(false, nil)
	users.On("ExistsByEmail", ctx, tenantID, "alice@example.com").Return(false, nil)
	customers.On("Save", ctx, mock.Anything).Return(nil)

	var savedUser *identity.User
	users.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
		savedUser = args.Get(1).(*identity.User)
	}).Return(nil)

	result, err := svc.Register(ctx, RegisterCommand{
		TenantID: tenantID,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice Smith",
		Role:     identity.RoleCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, "customer", result.Role)
	require.NotNil(t, result.CustomerID)
	require.NotNil(t, savedUser)
	assert.NotNil(t, savedUser.CustomerID)
	customers.AssertCalled(t, "Save", ctx, mock.Anything)
}

func TestAuthService_Register_StaffSkipsCustomerRecord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, customers := newAuthFixture()

	users.On("ExistsByUsername", ctx, tenantID, "bob").Return(false, nil)
	users.On("ExistsByEmail", ctx, tenantID, "bob@example.com").Return(false, nil)
	users.On("Save", ctx, mock.Anything).Return(nil)

	result, err := svc.Register(ctx, RegisterCommand{
		TenantID: tenantID,
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
		Role:     identity.RoleStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, "staff", result.Role)
	assert.Nil(t, result.CustomerID)
	customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, _ := newAuthFixture()

	users.On("ExistsByUsername", ctx, tenantID, "alice").Return(true, nil)

	_, err := svc.Register(ctx, RegisterCommand{
		TenantID: tenantID,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     identity.RoleCustomer,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_USERNAME", domainErr.Code)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, _ := newAuthFixture()

	user, err := identity.NewUser(tenantID, "alice", "alice@example.com", "password123", identity.RoleStaff)
	require.NoError(t, err)

	users.On("FindByUsername", ctx, tenantID, "alice").Return(user, nil)
	users.On("Save", ctx, mock.Anything).Return(nil)

	result, err := svc.Login(ctx, LoginCommand{TenantID: tenantID, Username: "alice", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotNil(t, result.User.LastLoginAt)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, _ := newAuthFixture()

	user, err := identity.NewUser(tenantID, "alice", "alice@example.com", "password123", identity.RoleStaff)
	require.NoError(t, err)

	users.On("FindByUsername", ctx, tenantID, "alice").Return(user, nil)
	users.On("Save", ctx, mock.Anything).Return(nil)

	_, err = svc.Login(ctx, LoginCommand{TenantID: tenantID, Username: "alice", Password: "wrong"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, _ := newAuthFixture()

	users.On("FindByUsername", ctx, tenantID, "ghost").Return(nil, shared.NewDomainError("USER_NOT_FOUND", "User not found"))

	_, err := svc.Login(ctx, LoginCommand{TenantID: tenantID, Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code, "unknown user and bad password are indistinguishable")
}

func TestAuthService_Login_LockedAccount(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, _ := newAuthFixture()

	user, err := identity.NewUser(tenantID, "alice", "alice@example.com", "password123", identity.RoleStaff)
	require.NoError(t, err)
	for i := 0; i < identity.MaxFailedLoginAttempts; i++ {
		user.RecordFailedLogin()
	}

	users.On("FindByUsername", ctx, tenantID, "alice").Return(user, nil)

	_, err = svc.Login(ctx, LoginCommand{TenantID: tenantID, Username: "alice", Password: "password123"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, users, _ := newAuthFixture()

	user, err := identity.NewUser(tenantID, "alice", "alice@example.com", "password123", identity.RoleStaff)
	require.NoError(t, err)

	users.On("FindByUsername", ctx, tenantID, "alice").Return(user, nil)
	users.On("FindByID", ctx, tenantID, user.ID).Return(user, nil)
	users.On("Save", ctx, mock.Anything).Return(nil)

	login, err := svc.Login(ctx, LoginCommand{TenantID: tenantID, Username: "alice", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	_, err = svc.Refresh(ctx, login.Tokens.AccessToken)
	require.Error(t, err, "access token cannot be used for refresh")
}

func TestAuthService_ChangeRole_SelfRejected(t *testing.T) {
	svc, _, _ := newAuthFixture()
	userID := uuid.New()

	_, err := svc.ChangeRole(context.Background(), uuid.New(), userID, userID, identity.RoleStaff)
	require.Error(t, err)
}
