package persistence

import (
	"context"

	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var transactionSortColumns = map[string]bool{
	"created_at": true,
	"delta":      true,
	"type":       true,
}

// GormTransactionRepository is the GORM implementation of
// inventory.TransactionRepository
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates an inventory transaction
// repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save appends a single ledger entry
func (r *GormTransactionRepository) Save(ctx context.Context, tx *inventory.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// SaveAll appends multiple ledger entries in one statement
func (r *GormTransactionRepository) SaveAll(ctx context.Context, txs []*inventory.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(txs).Error
}

func (r *GormTransactionRepository) findPage(base *gorm.DB, filter shared.Filter) (shared.Paginated[inventory.Transaction], error) {
	if txType, ok := filter.Filters["type"].(string); ok && txType != "" {
		base = base.Where("type = ?", txType)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[inventory.Transaction]{}, err
	}

	offset, limit := paging(filter)
	var txs []inventory.Transaction
	err := base.
		Order(applySort(filter, transactionSortColumns)).
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return shared.Paginated[inventory.Transaction]{}, err
	}

	return shared.NewPaginated(txs, total, filter.Page, limit), nil
}

// FindByProduct returns the ledger entries for one product
func (r *GormTransactionRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.Transaction], error) {
	base := r.db.WithContext(ctx).Model(&inventory.Transaction{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID)
	return r.findPage(base, filter)
}

// FindAll returns all ledger entries for a tenant
func (r *GormTransactionRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.Transaction], error) {
	base := r.db.WithContext(ctx).Model(&inventory.Transaction{}).
		Where("tenant_id = ?", tenantID)
	return r.findPage(base, filter)
}
