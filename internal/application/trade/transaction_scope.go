package trade

import (
	"context"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/trade"
)

// TransactionalRepositories exposes the repositories bound to one
// database transaction
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Orders() trade.OrderRepository
	Customers() partner.CustomerRepository
	InventoryTransactions() inventory.TransactionRepository
}

// TransactionScope runs a function within a database transaction. All
// repository calls made through the provided repositories commit or
// roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope executes the function without transactional
// guarantees. Used in tests with mock repositories.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs fn directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}
