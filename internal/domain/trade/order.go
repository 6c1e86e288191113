package trade

import (
	"fmt"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered:
		return target == OrderStatusRefunded
	case OrderStatusCancelled, OrderStatusRefunded:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderItem is a line item in an order. Product name, SKU and unit price
// are snapshotted at order time so later product edits do not alter
// historical orders.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductSKU  string          `gorm:"type:varchar(50);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order item with a product snapshot
func NewOrderItem(orderID, productID uuid.UUID, productName, productSKU string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	qty := decimal.NewFromInt(int64(quantity))

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Subtotal:    unitPrice.Amount().Mul(qty),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Order represents a customer order aggregate root. Orders are created
// only via checkout and manage their own status lifecycle.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	ShippingLine  string          `gorm:"type:varchar(500)"`
	ShippingCity  string          `gorm:"type:varchar(100)"`
	ShippingState string          `gorm:"type:varchar(100)"`
	ShippingZip   string          `gorm:"type:varchar(20)"`
	Notes         string          `gorm:"type:text"`
	ShippedAt     *time.Time      `gorm:"index"`
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order without items. Items and totals
// are set by the checkout operation.
func NewOrder(tenantID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName, paymentMethod string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Items:               make([]OrderItem, 0),
		Subtotal:            decimal.Zero,
		Tax:                 decimal.Zero,
		ShippingCost:        decimal.Zero,
		Total:               decimal.Zero,
		Status:              OrderStatusPending,
		PaymentMethod:       paymentMethod,
		PaymentStatus:       PaymentStatusUnpaid,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line item to the order. Only allowed while pending.
func (o *Order) AddItem(productID uuid.UUID, productName, productSKU string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order")
		}
	}

	item, err := NewOrderItem(o.ID, productID, productName, productSKU, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()

	return item, nil
}

// SetShippingAddress sets the shipping address snapshot
func (o *Order) SetShippingAddress(addr valueobject.Address) {
	o.ShippingLine = addr.Line()
	o.ShippingCity = addr.City()
	o.ShippingState = addr.State()
	o.ShippingZip = addr.Zip()
	o.UpdatedAt = time.Now()
}

// SetNotes sets the order notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// ApplyTotals sets the computed order totals. The invariant
// total == subtotal + tax + shipping is enforced here.
func (o *Order) ApplyTotals(subtotal, tax, shipping decimal.Decimal) error {
	if subtotal.IsNegative() || tax.IsNegative() || shipping.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order amounts cannot be negative")
	}

	o.Subtotal = subtotal
	o.Tax = tax
	o.ShippingCost = shipping
	o.Total = subtotal.Add(tax).Add(shipping)
	o.UpdatedAt = time.Now()

	return nil
}

// ItemSubtotal returns the sum of all line subtotals
func (o *Order) ItemSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// TransitionTo moves the order to the target status, validating the
// transition against the status state machine
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	now := time.Now()
	switch target {
	case OrderStatusShipped:
		o.ShippedAt = &now
		o.AddDomainEvent(NewOrderShippedEvent(o))
	case OrderStatusDelivered:
		o.DeliveredAt = &now
		o.AddDomainEvent(NewOrderDeliveredEvent(o))
	case OrderStatusRefunded:
		o.PaymentStatus = PaymentStatusRefunded
	case OrderStatusCancelled:
		// Use Cancel so a reason is recorded and stock is restored.
		return shared.NewDomainError("INVALID_STATE", "Use the cancel operation to cancel an order")
	}

	o.Status = target
	o.UpdatedAt = now

	return nil
}

// CanCancel returns true while cancellation is still allowed
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// Cancel cancels the order. Allowed from pending or processing; stock
// restoration is handled by the application service in the same
// transaction.
func (o *Order) Cancel(reason string) error {
	if !o.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// MarkPaid records a successful payment
func (o *Order) MarkPaid() error {
	if o.Status == OrderStatusCancelled || o.Status == OrderStatusRefunded {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay for a cancelled or refunded order")
	}
	if o.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}

	o.PaymentStatus = PaymentStatusPaid
	o.UpdatedAt = time.Now()

	return nil
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// IsTerminal returns true if the order is cancelled or refunded
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusRefunded
}

// CountsTowardRevenue reports whether the order is included in revenue
// aggregations. Cancelled and refunded orders are excluded.
func (o *Order) CountsTowardRevenue() bool {
	return !o.IsTerminal()
}

// GetItemByProduct returns the line item for a product, or nil
func (o *Order) GetItemByProduct(productID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetTotalMoney returns the order total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}
