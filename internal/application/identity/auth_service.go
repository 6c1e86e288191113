package identity

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/identity"
	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterCommand creates a new user account. Customer registrations
// also create a linked customer record.
type RegisterCommand struct {
	TenantID uuid.UUID
	Username string
	Email    string
	Password string
	Name     string
	Role     identity.Role
}

// LoginCommand authenticates a user
type LoginCommand struct {
	TenantID uuid.UUID
	Username string
	Password string
}

// ChangePasswordCommand changes a user's own password
type ChangePasswordCommand struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UserResult is the application-level view of a user
type UserResult struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	CustomerID  *uuid.UUID `json:"customer_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResult carries the issued tokens and the authenticated user
type LoginResult struct {
	User   *UserResult     `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResult maps a user aggregate to its result view
func ToUserResult(user *identity.User) *UserResult {
	return &UserResult{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role.String(),
		Status:      string(user.Status),
		CustomerID:  user.CustomerID,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// AuthService handles registration, login and token refresh
type AuthService struct {
	users     identity.UserRepository
	customers partner.CustomerRepository
	tokens    *auth.JWTService
	logger    *zap.Logger
}

// NewAuthService creates an auth service
func NewAuthService(users identity.UserRepository, customers partner.CustomerRepository, tokens *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, customers: customers, tokens: tokens, logger: logger}
}

// Register creates a new user account. Self-service registration is
// always a customer account; staff and admin accounts are created by an
// admin through the same path.
func (s *AuthService) Register(ctx context.Context, cmd RegisterCommand) (*UserResult, error) {
	taken, err := s.users.ExistsByUsername(ctx, cmd.TenantID, cmd.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("DUPLICATE_USERNAME", "Username is already taken")
	}

	taken, err = s.users.ExistsByEmail(ctx, cmd.TenantID, cmd.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "Email is already registered")
	}

	user, err := identity.NewUser(cmd.TenantID, cmd.Username, cmd.Email, cmd.Password, cmd.Role)
	if err != nil {
		return nil, err
	}
	if cmd.Name != "" {
		if err := user.SetDisplayName(cmd.Name); err != nil {
			return nil, err
		}
	}

	// Customer accounts get a customer record so they can place orders
	if cmd.Role == identity.RoleCustomer {
		name := cmd.Name
		if name == "" {
			name = cmd.Username
		}
		customer, err := partner.NewCustomer(cmd.TenantID, name, cmd.Email, "")
		if err != nil {
			return nil, err
		}
		if err := s.customers.Save(ctx, customer); err != nil {
			return nil, err
		}
		user.LinkCustomer(customer.ID)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()))

	return ToUserResult(user), nil
}

// Login verifies credentials and issues a token pair. Failed attempts
// count toward the account lockout; the error message never reveals
// whether the username exists.
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	invalidCredentials := shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

	user, err := s.users.FindByUsername(ctx, cmd.TenantID, cmd.Username)
	if err != nil {
		return nil, invalidCredentials
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if !user.CheckPassword(cmd.Password) {
		user.RecordFailedLogin()
		if saveErr := s.users.Save(ctx, user); saveErr != nil {
			s.logger.Error("failed to record failed login", zap.Error(saveErr))
		}
		s.logger.Warn("failed login attempt",
			zap.String("username", cmd.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, invalidCredentials
	}

	user.RecordSuccessfulLogin()
	user.AddDomainEvent(identity.NewUserLoggedInEvent(user))
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))

	return &LoginResult{User: ToUserResult(user), Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	user, err := s.users.FindByID(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}
	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	tokens, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: ToUserResult(user), Tokens: tokens}, nil
}

// ChangePassword changes the caller's password
func (s *AuthService) ChangePassword(ctx context.Context, cmd ChangePasswordCommand) error {
	user, err := s.users.FindByID(ctx, cmd.TenantID, cmd.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(cmd.OldPassword, cmd.NewPassword); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}

// GetUser loads a single user
func (s *AuthService) GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResult, error) {
	user, err := s.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResult(user), nil
}

// ListUsers returns a filtered, paginated user list
func (s *AuthService) ListUsers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[UserResult], error) {
	page, err := s.users.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[UserResult]{}, err
	}

	items := make([]UserResult, 0, len(page.Items))
	for idx := range page.Items {
		items = append(items, *ToUserResult(&page.Items[idx]))
	}
	return shared.Paginated[UserResult]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// ChangeRole updates a user's role. Admins cannot demote themselves.
func (s *AuthService) ChangeRole(ctx context.Context, tenantID, actorID, userID uuid.UUID, role identity.Role) (*UserResult, error) {
	if actorID == userID {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Cannot change your own role")
	}

	user, err := s.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user role changed",
		zap.String("user_id", userID.String()),
		zap.String("role", role.String()))

	return ToUserResult(user), nil
}

// SetActive enables or disables a user account
func (s *AuthService) SetActive(ctx context.Context, tenantID, actorID, userID uuid.UUID, active bool) (*UserResult, error) {
	if actorID == userID && !active {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Cannot deactivate your own account")
	}

	user, err := s.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResult(user), nil
}
