package handler

import (
	apppartner "github.com/commerce/backend/internal/application/partner"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateCustomerRequest is the customer creation payload
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"omitempty,max=20"`
	AddressLine  string `json:"address_line" binding:"omitempty,max=500"`
	AddressCity  string `json:"address_city" binding:"omitempty,max=100"`
	AddressState string `json:"address_state" binding:"omitempty,max=100"`
	AddressZip   string `json:"address_zip" binding:"omitempty,max=20"`
	Notes        string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateCustomerRequest is the customer update payload
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerHandler serves customer record endpoints
type CustomerHandler struct {
	BaseHandler
	customers *apppartner.CustomerService
}

// NewCustomerHandler creates a customer handler
func NewCustomerHandler(customers *apppartner.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{BaseHandler: NewBaseHandler(logger), customers: customers}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.customers.Create(c.Request.Context(), apppartner.CreateCustomerCommand{
		TenantID:     h.TenantID(c),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine:  req.AddressLine,
		AddressCity:  req.AddressCity,
		AddressState: req.AddressState,
		AddressZip:   req.AddressZip,
		Notes:        req.Notes,
		CreatedBy:    h.UserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.customers.Update(c.Request.Context(), apppartner.UpdateCustomerCommand{
		TenantID:     h.TenantID(c),
		CustomerID:   customerID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine:  req.AddressLine,
		AddressCity:  req.AddressCity,
		AddressState: req.AddressState,
		AddressZip:   req.AddressZip,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.customers.Get(c.Request.Context(), h.TenantID(c), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := h.BuildFilter(q)
	if c.Query("include_inactive") == "true" {
		filter.Filters["include_inactive"] = true
	}

	result, err := h.customers.List(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Delete handles DELETE /customers/:id (soft delete)
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customers.Deactivate(c.Request.Context(), h.TenantID(c), customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate handles POST /customers/:id/activate
func (h *CustomerHandler) Activate(c *gin.Context) {
	customerID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customers.Activate(c.Request.Context(), h.TenantID(c), customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
