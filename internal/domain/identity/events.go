package identity

import (
	"github.com/commerce/backend/internal/domain/shared"
)

const (
	EventTypeUserRegistered = "identity.user.registered"
	EventTypeUserLoggedIn   = "identity.user.logged_in"
)

// UserRegisteredEvent is raised when a new user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, "User", user.ID, user.TenantID),
		Username:        user.Username,
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserLoggedInEvent is raised on a successful login
type UserLoggedInEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserLoggedInEvent creates a new UserLoggedInEvent
func NewUserLoggedInEvent(user *User) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLoggedIn, "User", user.ID, user.TenantID),
		Username:        user.Username,
	}
}
