package persistence

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/report"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// revenueStatuses are the order statuses included in revenue figures
var revenueStatuses = []trade.OrderStatus{
	trade.OrderStatusPending,
	trade.OrderStatusProcessing,
	trade.OrderStatusShipped,
	trade.OrderStatusDelivered,
}

// GormReportRepository implements report.Repository with SQL
// aggregations over the orders tables
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// SalesSummary aggregates revenue over a date range
func (r *GormReportRepository) SalesSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*report.SalesSummary, error) {
	var row struct {
		OrderCount int64
		Revenue    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Select("COUNT(*) as order_count, COALESCE(SUM(total), 0) as revenue").
		Where("tenant_id = ? AND status IN ? AND created_at >= ? AND created_at < ?",
			tenantID, revenueStatuses, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	var units struct {
		TotalUnits int64
	}
	err = r.db.WithContext(ctx).Table("order_items").
		Select("COALESCE(SUM(order_items.quantity), 0) as total_units").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.tenant_id = ? AND orders.status IN ? AND orders.created_at >= ? AND orders.created_at < ?",
			tenantID, revenueStatuses, from, to).
		Scan(&units).Error
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if row.OrderCount > 0 {
		avg = row.Revenue.Div(decimal.NewFromInt(row.OrderCount)).Round(2)
	}

	return &report.SalesSummary{
		From:              from,
		To:                to,
		OrderCount:        row.OrderCount,
		TotalRevenue:      row.Revenue,
		AverageOrderValue: avg,
		TotalUnits:        units.TotalUnits,
	}, nil
}

// DailySales returns a per-day revenue breakdown
func (r *GormReportRepository) DailySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.DailySales, error) {
	var rows []report.DailySales
	err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Select("DATE(created_at) as day, COUNT(*) as order_count, COALESCE(SUM(total), 0) as revenue").
		Where("tenant_id = ? AND status IN ? AND created_at >= ? AND created_at < ?",
			tenantID, revenueStatuses, from, to).
		Group("DATE(created_at)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProducts returns the best-selling products by units sold
func (r *GormReportRepository) TopProducts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]report.TopProduct, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []report.TopProduct
	err := r.db.WithContext(ctx).Table("order_items").
		Select(`order_items.product_id,
			order_items.product_name,
			order_items.product_sku,
			SUM(order_items.quantity) as units_sold,
			COALESCE(SUM(order_items.subtotal), 0) as revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.tenant_id = ? AND orders.status IN ? AND orders.created_at >= ? AND orders.created_at < ?",
			tenantID, revenueStatuses, from, to).
		Group("order_items.product_id, order_items.product_name, order_items.product_sku").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopCustomers returns the highest-spending customers
func (r *GormReportRepository) TopCustomers(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]report.TopCustomer, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []report.TopCustomer
	err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Select("customer_id, customer_name, COUNT(*) as order_count, COALESCE(SUM(total), 0) as total_spent").
		Where("tenant_id = ? AND status IN ? AND created_at >= ? AND created_at < ?",
			tenantID, revenueStatuses, from, to).
		Group("customer_id, customer_name").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategorySales returns revenue per product category. Order items keep
// no category snapshot, so items join to the product's current
// category; rows from since-deleted products land in "uncategorized".
func (r *GormReportRepository) CategorySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.CategorySales, error) {
	var rows []report.CategorySales
	err := r.db.WithContext(ctx).Table("order_items").
		Select(`COALESCE(NULLIF(products.category, ''), 'uncategorized') as category,
			SUM(order_items.quantity) as units_sold,
			COALESCE(SUM(order_items.subtotal), 0) as revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("orders.tenant_id = ? AND orders.status IN ? AND orders.created_at >= ? AND orders.created_at < ?",
			tenantID, revenueStatuses, from, to).
		Group("category").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StatusBreakdown returns the count of orders per status
func (r *GormReportRepository) StatusBreakdown(ctx context.Context, tenantID uuid.UUID) ([]report.StatusBreakdown, error) {
	var rows []report.StatusBreakdown
	err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InventorySummary aggregates the current stock position of active
// products, valued at cost
func (r *GormReportRepository) InventorySummary(ctx context.Context, tenantID uuid.UUID) (*report.InventorySummary, error) {
	var row struct {
		ProductCount  int64
		TotalUnits    int64
		StockValue    decimal.Decimal
		LowStockCount int64
	}
	err := r.db.WithContext(ctx).Table("products").
		Select(`COUNT(*) as product_count,
			COALESCE(SUM(stock), 0) as total_units,
			COALESCE(SUM(stock * cost), 0) as stock_value,
			COALESCE(SUM(CASE WHEN stock <= reorder_level THEN 1 ELSE 0 END), 0) as low_stock_count`).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &report.InventorySummary{
		ProductCount:  row.ProductCount,
		TotalUnits:    row.TotalUnits,
		StockValue:    row.StockValue,
		LowStockCount: row.LowStockCount,
	}, nil
}

// LowStock returns active products at or below their reorder level
func (r *GormReportRepository) LowStock(ctx context.Context, tenantID uuid.UUID) ([]report.LowStockItem, error) {
	var rows []report.LowStockItem
	err := r.db.WithContext(ctx).Table("products").
		Select("id as product_id, name as product_name, sku as product_sku, stock, reorder_level").
		Where("tenant_id = ? AND is_active = ? AND stock <= reorder_level", tenantID, true).
		Order("stock asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
