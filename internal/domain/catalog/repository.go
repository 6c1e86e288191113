package catalog

import (
	"context"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[Product], error)
	// FindByIDsForUpdate loads products by ID with row locks held for
	// the duration of the surrounding transaction. IDs are fetched in a
	// stable order to avoid lock cycles between concurrent checkouts.
	FindByIDsForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
	Categories(ctx context.Context, tenantID uuid.UUID) ([]string, error)
}
