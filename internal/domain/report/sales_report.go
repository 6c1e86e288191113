package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary aggregates revenue over a date range. Cancelled and
// refunded orders are excluded.
type SalesSummary struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	OrderCount        int64           `json:"order_count"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	TotalUnits        int64           `json:"total_units"`
}

// DailySales is one row of a per-day revenue breakdown
type DailySales struct {
	Day        string          `json:"day"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopProduct is one row of the best-sellers report
type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// TopCustomer is one row of the top-customers report
type TopCustomer struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	OrderCount   int64           `json:"order_count"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}

// CategorySales is one row of the revenue-by-category report. Items
// are attributed to the product's current category.
type CategorySales struct {
	Category  string          `json:"category"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// InventorySummary aggregates the current stock position
type InventorySummary struct {
	ProductCount  int64           `json:"product_count"`
	TotalUnits    int64           `json:"total_units"`
	StockValue    decimal.Decimal `json:"stock_value"`
	LowStockCount int64           `json:"low_stock_count"`
}

// StatusBreakdown is one row of the order-status distribution
type StatusBreakdown struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// LowStockItem is one row of the low-stock report
type LowStockItem struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductSKU   string    `json:"product_sku"`
	Stock        int       `json:"stock"`
	ReorderLevel int       `json:"reorder_level"`
}

// Repository defines the read-model queries behind the reporting
// endpoints. Implementations aggregate directly in SQL.
type Repository interface {
	SalesSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*SalesSummary, error)
	DailySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]DailySales, error)
	TopProducts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]TopProduct, error)
	TopCustomers(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]TopCustomer, error)
	CategorySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]CategorySales, error)
	StatusBreakdown(ctx context.Context, tenantID uuid.UUID) ([]StatusBreakdown, error)
	InventorySummary(ctx context.Context, tenantID uuid.UUID) (*InventorySummary, error)
	LowStock(ctx context.Context, tenantID uuid.UUID) ([]LowStockItem, error)
}
