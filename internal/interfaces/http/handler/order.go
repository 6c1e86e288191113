package handler

import (
	"time"

	apptrade "github.com/commerce/backend/internal/application/trade"
	"github.com/commerce/backend/internal/domain/identity"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateOrderStatusRequest advances an order through its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered refunded"`
}

// CancelOrderRequest cancels an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// OrderHandler serves order management and self-service endpoints
type OrderHandler struct {
	BaseHandler
	orders *apptrade.OrderService
	users  identity.UserRepository
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orders *apptrade.OrderService, users identity.UserRepository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{BaseHandler: NewBaseHandler(logger), orders: orders, users: users}
}

// List handles GET /orders (staff)
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := h.BuildFilter(q)
	if status := c.Query("status"); status != "" {
		if !trade.OrderStatus(status).IsValid() {
			h.BadRequest(c, shared.NewDomainError("VALIDATION_ERROR", "Unknown order status"))
			return
		}
		filter.Filters["status"] = status
	}
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid customer_id"))
			return
		}
		filter.Filters["customer_id"] = customerID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid from date, expected YYYY-MM-DD"))
			return
		}
		filter.Filters["from"] = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, shared.NewDomainError("VALIDATION_ERROR", "Invalid to date, expected YYYY-MM-DD"))
			return
		}
		// Make the range inclusive of the whole end day
		filter.Filters["to"] = to.AddDate(0, 0, 1)
	}

	result, err := h.orders.ListOrders(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get handles GET /orders/:id (staff)
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.orders.GetOrder(c.Request.Context(), h.TenantID(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// GetByNumber handles GET /orders/number/:number (staff)
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	result, err := h.orders.GetOrderByNumber(c.Request.Context(), h.TenantID(c), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// UpdateStatus handles PUT /orders/:id/status (staff). Cancellation has
// its own endpoint because it restores stock.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orders.UpdateStatus(c.Request.Context(), apptrade.UpdateOrderStatusCommand{
		TenantID: h.TenantID(c),
		OrderID:  orderID,
		Status:   trade.OrderStatus(req.Status),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// MarkPaid handles POST /orders/:id/pay (staff)
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.orders.MarkPaid(c.Request.Context(), h.TenantID(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Cancel handles POST /orders/:id/cancel (staff)
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orders.Cancel(c.Request.Context(), apptrade.CancelOrderCommand{
		TenantID:    h.TenantID(c),
		OrderID:     orderID,
		Reason:      req.Reason,
		PerformedBy: h.UserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// ListMine handles GET /orders/my (customer self-service)
func (h *OrderHandler) ListMine(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.orders.ListCustomerOrders(ctx, h.TenantID(c), custID, h.BuildFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// GetMine handles GET /orders/my/:id (customer self-service). Orders
// belonging to other customers are indistinguishable from missing ones.
func (h *OrderHandler) GetMine(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	custID, err := customerID(ctx, h.users, h.TenantID(c), h.UserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.orders.GetCustomerOrder(ctx, h.TenantID(c), custID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}
