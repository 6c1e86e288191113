package trade

import (
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxCartQuantityPerItem caps the quantity of a single cart line
const MaxCartQuantityPerItem = 999

// CartItem is a single line in a shopping cart. Price is a display
// snapshot only; checkout re-reads the current product price.
type CartItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	AddedAt     time.Time       `json:"added_at"`
}

// Cart is a customer's shopping cart. Carts live in the cache layer,
// not the database, and are keyed by tenant and customer.
type Cart struct {
	TenantID   uuid.UUID  `json:"tenant_id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a customer
func NewCart(tenantID, customerID uuid.UUID) *Cart {
	return &Cart{
		TenantID:   tenantID,
		CustomerID: customerID,
		Items:      make([]CartItem, 0),
		UpdatedAt:  time.Now(),
	}
}

// AddItem adds a product to the cart, or increases the quantity if the
// product is already present
func (c *Cart) AddItem(productID uuid.UUID, productName, productSKU string, unitPrice decimal.Decimal, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			newQty := c.Items[idx].Quantity + quantity
			if newQty > MaxCartQuantityPerItem {
				return shared.NewDomainError("INVALID_QUANTITY", "Quantity exceeds the per-item limit")
			}
			c.Items[idx].Quantity = newQty
			c.Items[idx].UnitPrice = unitPrice
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	if quantity > MaxCartQuantityPerItem {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity exceeds the per-item limit")
	}

	c.Items = append(c.Items, CartItem{
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		AddedAt:     time.Now(),
	})
	c.UpdatedAt = time.Now()

	return nil
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero
// removes the line.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if quantity > MaxCartQuantityPerItem {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity exceeds the per-item limit")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			if quantity == 0 {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			} else {
				c.Items[idx].Quantity = quantity
			}
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
}

// RemoveItem removes a product from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
}

// Clear removes all items from the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true when the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the sum of line subtotals at the snapshotted prices
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
