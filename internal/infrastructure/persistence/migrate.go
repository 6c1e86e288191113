package persistence

import (
	"fmt"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/identity"
	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the database schema for all aggregates
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&identity.User{},
		&partner.Customer{},
		&catalog.Product{},
		&trade.Order{},
		&trade.OrderItem{},
		&inventory.Transaction{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
