package trade

import (
	"time"

	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// CheckoutCommand is the input to the checkout operation
type CheckoutCommand struct {
	TenantID      uuid.UUID
	CustomerID    uuid.UUID
	PaymentMethod string
	// Optional shipping address override; the customer's address on
	// file is used when empty
	ShippingLine  string
	ShippingCity  string
	ShippingState string
	ShippingZip   string
	Notes         string
	PerformedBy   uuid.UUID
}

// AddCartItemCommand adds a product to a customer's cart
type AddCartItemCommand struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
}

// UpdateCartItemCommand changes the quantity of a cart line
type UpdateCartItemCommand struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
}

// CancelOrderCommand cancels an order and restores its stock
type CancelOrderCommand struct {
	TenantID    uuid.UUID
	OrderID     uuid.UUID
	Reason      string
	PerformedBy uuid.UUID
}

// UpdateOrderStatusCommand advances an order through its lifecycle
type UpdateOrderStatusCommand struct {
	TenantID uuid.UUID
	OrderID  uuid.UUID
	Status   trade.OrderStatus
}

// OrderItemResult is a line item in an order result
type OrderItemResult struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSKU  string    `json:"product_sku"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
}

// OrderResult is the application-level view of an order
type OrderResult struct {
	ID            uuid.UUID         `json:"id"`
	OrderNumber   string            `json:"order_number"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	Items         []OrderItemResult `json:"items"`
	Subtotal      string            `json:"subtotal"`
	Tax           string            `json:"tax"`
	ShippingCost  string            `json:"shipping_cost"`
	Total         string            `json:"total"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	PaymentStatus string            `json:"payment_status"`
	ShippingLine  string            `json:"shipping_line,omitempty"`
	ShippingCity  string            `json:"shipping_city,omitempty"`
	ShippingState string            `json:"shipping_state,omitempty"`
	ShippingZip   string            `json:"shipping_zip,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	CancelReason  string            `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	ShippedAt     *time.Time        `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time        `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
}

// CartItemResult is a line in a cart result
type CartItemResult struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSKU  string    `json:"product_sku"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// CartResult is the application-level view of a cart
type CartResult struct {
	CustomerID    uuid.UUID        `json:"customer_id"`
	Items         []CartItemResult `json:"items"`
	Subtotal      string           `json:"subtotal"`
	TotalQuantity int              `json:"total_quantity"`
}

// ToOrderResult maps an order aggregate to its result view
func ToOrderResult(order *trade.Order) *OrderResult {
	items := make([]OrderItemResult, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResult{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
		})
	}

	return &OrderResult{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		Items:         items,
		Subtotal:      order.Subtotal.StringFixed(2),
		Tax:           order.Tax.StringFixed(2),
		ShippingCost:  order.ShippingCost.StringFixed(2),
		Total:         order.Total.StringFixed(2),
		Status:        order.Status.String(),
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: string(order.PaymentStatus),
		ShippingLine:  order.ShippingLine,
		ShippingCity:  order.ShippingCity,
		ShippingState: order.ShippingState,
		ShippingZip:   order.ShippingZip,
		Notes:         order.Notes,
		CancelReason:  order.CancelReason,
		CreatedAt:     order.CreatedAt,
		ShippedAt:     order.ShippedAt,
		DeliveredAt:   order.DeliveredAt,
		CancelledAt:   order.CancelledAt,
	}
}

// ToCartResult maps a cart to its result view
func ToCartResult(cart *trade.Cart) *CartResult {
	items := make([]CartItemResult, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResult{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
		})
	}

	return &CartResult{
		CustomerID:    cart.CustomerID,
		Items:         items,
		Subtotal:      cart.Subtotal().StringFixed(2),
		TotalQuantity: cart.TotalQuantity(),
	}
}
