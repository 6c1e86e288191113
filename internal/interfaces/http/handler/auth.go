package handler

import (
	appidentity "github.com/commerce/backend/internal/application/identity"
	"github.com/commerce/backend/internal/domain/identity"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/commerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest is the self-service registration payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"omitempty,max=100"`
}

// CreateUserRequest is the admin user-creation payload
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Role     string `json:"role" binding:"required,oneof=admin staff customer"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ChangeRoleRequest is the admin role change payload
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin staff customer"`
}

// SetActiveRequest enables or disables a user account
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// AuthHandler serves authentication and user management endpoints
type AuthHandler struct {
	BaseHandler
	auth *appidentity.AuthService
	// Tenant used for unauthenticated registration and login. A
	// multi-tenant deployment resolves this per hostname instead.
	defaultTenant uuid.UUID
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *appidentity.AuthService, defaultTenant uuid.UUID, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{BaseHandler: NewBaseHandler(logger), auth: auth, defaultTenant: defaultTenant}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), appidentity.RegisterCommand{
		TenantID: h.defaultTenant,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     identity.RoleCustomer,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), appidentity.LoginCommand{
		TenantID: h.defaultTenant,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout
// just confirms; clients discard their token pair.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.NoContent(c)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.auth.GetUser(c.Request.Context(), h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// ChangePassword handles POST /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), appidentity.ChangePasswordCommand{
		TenantID:    h.TenantID(c),
		UserID:      h.UserID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateUser handles POST /users (admin)
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), appidentity.RegisterCommand{
		TenantID: h.TenantID(c),
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListUsers handles GET /users (admin)
func (h *AuthHandler) ListUsers(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := h.BuildFilter(q)
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}

	result, err := h.auth.ListUsers(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// ChangeRole handles PUT /users/:id/role (admin)
func (h *AuthHandler) ChangeRole(c *gin.Context) {
	userID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.auth.ChangeRole(c.Request.Context(), h.TenantID(c), middleware.UserID(c), userID, identity.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// SetActive handles PUT /users/:id/active (admin)
func (h *AuthHandler) SetActive(c *gin.Context) {
	userID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.auth.SetActive(c.Request.Context(), h.TenantID(c), middleware.UserID(c), userID, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}
