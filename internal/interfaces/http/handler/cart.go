package handler

import (
	"context"

	apptrade "github.com/commerce/backend/internal/application/trade"
	"github.com/commerce/backend/internal/domain/identity"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest changes a cart line quantity; zero removes it
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// CheckoutRequest is the checkout payload
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card paypal bank_transfer cash_on_delivery"`
	ShippingLine  string `json:"shipping_line" binding:"omitempty,max=500"`
	ShippingCity  string `json:"shipping_city" binding:"omitempty,max=100"`
	ShippingState string `json:"shipping_state" binding:"omitempty,max=100"`
	ShippingZip   string `json:"shipping_zip" binding:"omitempty,max=20"`
	Notes         string `json:"notes" binding:"omitempty,max=2000"`
}

// CartHandler serves the customer's own cart and checkout
type CartHandler struct {
	BaseHandler
	carts    *apptrade.CartService
	checkout *apptrade.CheckoutService
	users    identity.UserRepository
}

// NewCartHandler creates a cart handler
func NewCartHandler(carts *apptrade.CartService, checkout *apptrade.CheckoutService, users identity.UserRepository, logger *zap.Logger) *CartHandler {
	return &CartHandler{BaseHandler: NewBaseHandler(logger), carts: carts, checkout: checkout, users: users}
}

// customerID resolves the customer record linked to the authenticated
// user account
func customerID(ctx context.Context, users identity.UserRepository, tenantID, userID uuid.UUID) (uuid.UUID, error) {
	user, err := users.FindByID(ctx, tenantID, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if user.CustomerID == nil {
		return uuid.Nil, shared.NewDomainError("NO_CUSTOMER_PROFILE", "Account has no customer profile")
	}
	return *user.CustomerID, nil
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.carts.GetCart(ctx, h.TenantID(c), custID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	productID, _ := uuid.Parse(req.ProductID)

	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.carts.AddItem(ctx, apptrade.AddCartItemCommand{
		TenantID:   h.TenantID(c),
		CustomerID: custID,
		ProductID:  productID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// UpdateItem handles PUT /cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "productId")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.carts.UpdateItem(ctx, apptrade.UpdateCartItemCommand{
		TenantID:   h.TenantID(c),
		CustomerID: custID,
		ProductID:  productID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "productId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.carts.RemoveItem(ctx, h.TenantID(c), custID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.carts.ClearCart(ctx, h.TenantID(c), custID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Checkout handles POST /cart/checkout. It converts the cart into an
// order at current catalog prices and clears the cart on success.
func (h *CartHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.checkout.Checkout(ctx, apptrade.CheckoutCommand{
		TenantID:      h.TenantID(c),
		CustomerID:    custID,
		PaymentMethod: req.PaymentMethod,
		ShippingLine:  req.ShippingLine,
		ShippingCity:  req.ShippingCity,
		ShippingState: req.ShippingState,
		ShippingZip:   req.ShippingZip,
		Notes:         req.Notes,
		PerformedBy:   h.UserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
