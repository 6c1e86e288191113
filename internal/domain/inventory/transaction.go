package inventory

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionType classifies an inventory movement
type TransactionType string

const (
	TransactionTypeSale         TransactionType = "sale"
	TransactionTypeCancellation TransactionType = "cancellation"
	TransactionTypeRestock      TransactionType = "restock"
	TransactionTypeAdjustment   TransactionType = "adjustment"
)

// IsValid checks if the type is a known TransactionType
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeCancellation, TransactionTypeRestock, TransactionTypeAdjustment:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// Transaction is an immutable inventory ledger entry. Delta is signed:
// negative for sales, positive for cancellations and restocks,
// either sign for adjustments.
type Transaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductSKU   string          `gorm:"type:varchar(50);not null"`
	Type         TransactionType `gorm:"type:varchar(20);not null;index"`
	Delta        int             `gorm:"not null"`
	StockAfter   int             `gorm:"not null"`
	OrderID      *uuid.UUID      `gorm:"type:uuid;index"`
	Reference    string          `gorm:"type:varchar(100)"`
	Notes        string          `gorm:"type:varchar(500)"`
	PerformedBy  uuid.UUID       `gorm:"type:uuid"`
	CreatedAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "inventory_transactions"
}

// NewTransaction creates a new inventory ledger entry
func NewTransaction(tenantID, productID uuid.UUID, productSKU string, txType TransactionType, delta, stockAfter int) (*Transaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown transaction type")
	}
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_DELTA", "Transaction delta cannot be zero")
	}
	if stockAfter < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Resulting stock cannot be negative")
	}

	switch txType {
	case TransactionTypeSale:
		if delta >= 0 {
			return nil, shared.NewDomainError("INVALID_DELTA", "Sale delta must be negative")
		}
	case TransactionTypeCancellation, TransactionTypeRestock:
		if delta <= 0 {
			return nil, shared.NewDomainError("INVALID_DELTA", "Cancellation and restock deltas must be positive")
		}
	}

	return &Transaction{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ProductID:  productID,
		ProductSKU: productSKU,
		Type:       txType,
		Delta:      delta,
		StockAfter: stockAfter,
		CreatedAt:  time.Now(),
	}, nil
}

// WithOrder links the transaction to an order
func (t *Transaction) WithOrder(orderID uuid.UUID, orderNumber string) *Transaction {
	t.OrderID = &orderID
	t.Reference = orderNumber
	return t
}

// WithNotes attaches a free-form note
func (t *Transaction) WithNotes(notes string) *Transaction {
	t.Notes = notes
	return t
}

// WithPerformer records the user who caused the movement
func (t *Transaction) WithPerformer(userID uuid.UUID) *Transaction {
	t.PerformedBy = userID
	return t
}

// TransactionRepository defines the persistence operations for the
// inventory ledger. Entries are append-only.
type TransactionRepository interface {
	Save(ctx context.Context, tx *Transaction) error
	SaveAll(ctx context.Context, txs []*Transaction) error
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) (shared.Paginated[Transaction], error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[Transaction], error)
}
