package report

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/report"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultRangeDays is the reporting window used when no range is given
const DefaultRangeDays = 30

// ReportService exposes the reporting read models
type ReportService struct {
	reports report.Repository
}

// NewReportService creates a report service
func NewReportService(reports report.Repository) *ReportService {
	return &ReportService{reports: reports}
}

// normalizeRange fills in a default window and makes the range
// end-exclusive at day granularity
func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	now := time.Now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -DefaultRangeDays)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_RANGE", "Range start must not be after range end")
	}
	// Include the whole end day
	to = to.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	return from.Truncate(24 * time.Hour), to, nil
}

// SalesSummary returns aggregate revenue for a date range
func (s *ReportService) SalesSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*report.SalesSummary, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.SalesSummary(ctx, tenantID, from, to)
}

// DailySales returns a per-day revenue breakdown
func (s *ReportService) DailySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.DailySales, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.DailySales(ctx, tenantID, from, to)
}

// TopProducts returns the best-selling products for a date range
func (s *ReportService) TopProducts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]report.TopProduct, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.TopProducts(ctx, tenantID, from, to, limit)
}

// TopCustomers returns the highest-spending customers for a date range
func (s *ReportService) TopCustomers(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]report.TopCustomer, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.TopCustomers(ctx, tenantID, from, to, limit)
}

// CategorySales returns revenue per product category for a date range
func (s *ReportService) CategorySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.CategorySales, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.reports.CategorySales(ctx, tenantID, from, to)
}

// StatusBreakdown returns the order count per status
func (s *ReportService) StatusBreakdown(ctx context.Context, tenantID uuid.UUID) ([]report.StatusBreakdown, error) {
	return s.reports.StatusBreakdown(ctx, tenantID)
}

// InventorySummary returns the current stock position
func (s *ReportService) InventorySummary(ctx context.Context, tenantID uuid.UUID) (*report.InventorySummary, error) {
	return s.reports.InventorySummary(ctx, tenantID)
}

// LowStock returns products at or below their reorder level
func (s *ReportService) LowStock(ctx context.Context, tenantID uuid.UUID) ([]report.LowStockItem, error) {
	return s.reports.LowStock(ctx, tenantID)
}
