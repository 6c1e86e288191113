package catalog

import (
	"strings"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product aggregate root. Stock moves
// only through checkout, cancellation and explicit adjustments; every
// movement is recorded as an inventory transaction.
type Product struct {
	shared.TenantAggregateRoot
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_sku,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100);index"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	ReorderLevel int             `gorm:"not null;default:10"`
	IsActive     bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product. SKUs are stored uppercase.
func NewProduct(tenantID uuid.UUID, sku, name string, price, cost decimal.Decimal, stock, reorderLevel int) (*Product, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	name = strings.TrimSpace(name)

	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if reorderLevel < 0 {
		return nil, shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		Name:                name,
		Price:               price,
		Cost:                cost,
		Stock:               stock,
		ReorderLevel:        reorderLevel,
		IsActive:            true,
	}, nil
}

// Update modifies the editable product fields. SKU is immutable after
// creation.
func (p *Product) Update(name, description, category string, price, cost decimal.Decimal, reorderLevel int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	if reorderLevel < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Price = price
	p.Cost = cost
	p.ReorderLevel = reorderLevel
	p.UpdatedAt = time.Now()

	return nil
}

// HasStock checks whether the requested quantity is available
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// DeductStock removes quantity from stock for a sale
func (p *Product) DeductStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for product "+p.SKU)
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// RestoreStock adds quantity back to stock after a cancellation
func (p *Product) RestoreStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// AdjustStock applies a signed stock delta. Negative adjustments floor
// at zero rather than failing; the applied delta is returned so the
// caller can record the actual movement.
func (p *Product) AdjustStock(delta int) int {
	applied := delta
	if delta < 0 && p.Stock+delta < 0 {
		applied = -p.Stock
	}
	p.Stock += applied
	p.UpdatedAt = time.Now()
	return applied
}

// SetStock replaces the stock level with an absolute value and returns
// the resulting delta
func (p *Product) SetStock(stock int) (int, error) {
	if stock < 0 {
		return 0, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	delta := stock - p.Stock
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return delta, nil
}

// IsLowStock returns true when stock is at or below the reorder level
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.ReorderLevel
}

// Deactivate soft-deletes the product. Existing orders keep their
// snapshots; the product disappears from the browsable catalog.
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Activate restores a soft-deleted product
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// Margin returns price minus cost
func (p *Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}
