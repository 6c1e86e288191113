package inventory

import (
	"context"

	apptrade "github.com/commerce/backend/internal/application/trade"
	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdjustMode selects how an adjustment value is interpreted
type AdjustMode string

const (
	// AdjustModeSet replaces the stock level with an absolute value
	AdjustModeSet AdjustMode = "set"
	// AdjustModeAdd increases stock by the given amount
	AdjustModeAdd AdjustMode = "add"
	// AdjustModeRemove decreases stock, flooring at zero
	AdjustModeRemove AdjustMode = "remove"
)

// IsValid checks if the mode is a known AdjustMode
func (m AdjustMode) IsValid() bool {
	switch m {
	case AdjustModeSet, AdjustModeAdd, AdjustModeRemove:
		return true
	}
	return false
}

// AdjustStockCommand changes a product's stock level outside the order
// flow (recounts, damage, restocks)
type AdjustStockCommand struct {
	TenantID    uuid.UUID
	ProductID   uuid.UUID
	Mode        AdjustMode
	Quantity    int
	Notes       string
	PerformedBy uuid.UUID
}

// AdjustResult reports the outcome of a stock adjustment
type AdjustResult struct {
	ProductID  uuid.UUID `json:"product_id"`
	ProductSKU string    `json:"product_sku"`
	Delta      int       `json:"delta"`
	Stock      int       `json:"stock"`
}

// TransactionResult is the application-level view of a ledger entry
type TransactionResult struct {
	ID         uuid.UUID  `json:"id"`
	ProductID  uuid.UUID  `json:"product_id"`
	ProductSKU string     `json:"product_sku"`
	Type       string     `json:"type"`
	Delta      int        `json:"delta"`
	StockAfter int        `json:"stock_after"`
	OrderID    *uuid.UUID `json:"order_id,omitempty"`
	Reference  string     `json:"reference,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  string     `json:"created_at"`
}

// StockService handles manual stock adjustments and ledger queries
type StockService struct {
	scope  apptrade.TransactionScope
	ledger inventory.TransactionRepository
	logger *zap.Logger
}

// NewStockService creates a stock service
func NewStockService(scope apptrade.TransactionScope, ledger inventory.TransactionRepository, logger *zap.Logger) *StockService {
	return &StockService{scope: scope, ledger: ledger, logger: logger}
}

// Adjust changes a product's stock level and records the movement. The
// product row stays locked until the ledger entry commits.
func (s *StockService) Adjust(ctx context.Context, cmd AdjustStockCommand) (*AdjustResult, error) {
	if !cmd.Mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_ADJUST_MODE", "Adjust mode must be set, add or remove")
	}
	if cmd.Quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if cmd.Mode != AdjustModeSet && cmd.Quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	var result *AdjustResult
	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		products, err := repos.Products().FindByIDsForUpdate(ctx, cmd.TenantID, []uuid.UUID{cmd.ProductID})
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		product := &products[0]

		var delta int
		switch cmd.Mode {
		case AdjustModeSet:
			if delta, err = product.SetStock(cmd.Quantity); err != nil {
				return err
			}
		case AdjustModeAdd:
			delta = product.AdjustStock(cmd.Quantity)
		case AdjustModeRemove:
			delta = product.AdjustStock(-cmd.Quantity)
		}

		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		// A no-op adjustment (set to current level, or remove from an
		// already empty shelf) leaves no ledger entry
		if delta != 0 {
			txType := inventory.TransactionTypeAdjustment
			if cmd.Mode == AdjustModeAdd {
				txType = inventory.TransactionTypeRestock
			}
			entry, err := inventory.NewTransaction(cmd.TenantID, product.ID, product.SKU, txType, delta, product.Stock)
			if err != nil {
				return err
			}
			entry.WithNotes(cmd.Notes).WithPerformer(cmd.PerformedBy)
			if err := repos.InventoryTransactions().Save(ctx, entry); err != nil {
				return err
			}
		}

		result = &AdjustResult{
			ProductID:  product.ID,
			ProductSKU: product.SKU,
			Delta:      delta,
			Stock:      product.Stock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", cmd.ProductID.String()),
		zap.String("mode", string(cmd.Mode)),
		zap.Int("delta", result.Delta),
		zap.Int("stock", result.Stock))

	return result, nil
}

// History returns the ledger entries for one product
func (s *StockService) History(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) (shared.Paginated[TransactionResult], error) {
	page, err := s.ledger.FindByProduct(ctx, tenantID, productID, filter)
	if err != nil {
		return shared.Paginated[TransactionResult]{}, err
	}
	return mapTransactionPage(page), nil
}

// List returns all ledger entries for a tenant
func (s *StockService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[TransactionResult], error) {
	page, err := s.ledger.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[TransactionResult]{}, err
	}
	return mapTransactionPage(page), nil
}

func mapTransactionPage(page shared.Paginated[inventory.Transaction]) shared.Paginated[TransactionResult] {
	items := make([]TransactionResult, 0, len(page.Items))
	for _, tx := range page.Items {
		items = append(items, TransactionResult{
			ID:         tx.ID,
			ProductID:  tx.ProductID,
			ProductSKU: tx.ProductSKU,
			Type:       tx.Type.String(),
			Delta:      tx.Delta,
			StockAfter: tx.StockAfter,
			OrderID:    tx.OrderID,
			Reference:  tx.Reference,
			Notes:      tx.Notes,
			CreatedAt:  tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return shared.Paginated[TransactionResult]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
