package trade

import (
	"context"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService manages customer shopping carts. Carts only hold intent;
// stock is not reserved until checkout.
type CartService struct {
	cartStore trade.CartStore
	products  catalog.ProductRepository
	logger    *zap.Logger
}

// NewCartService creates a cart service
func NewCartService(cartStore trade.CartStore, products catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{cartStore: cartStore, products: products, logger: logger}
}

// GetCart returns the customer's cart
func (s *CartService) GetCart(ctx context.Context, tenantID, customerID uuid.UUID) (*CartResult, error) {
	cart, err := s.cartStore.Get(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	return ToCartResult(cart), nil
}

// AddItem adds a product to the cart. The product must exist, be
// active, and have any stock at all; exact availability is checked at
// checkout.
func (s *CartService) AddItem(ctx context.Context, cmd AddCartItemCommand) (*CartResult, error) {
	product, err := s.products.FindByID(ctx, cmd.TenantID, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is no longer available")
	}
	if product.Stock == 0 {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Product is out of stock")
	}

	cart, err := s.cartStore.Get(ctx, cmd.TenantID, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddItem(product.ID, product.Name, product.SKU, product.Price, cmd.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}

	return ToCartResult(cart), nil
}

// UpdateItem changes the quantity of a cart line; zero removes it
func (s *CartService) UpdateItem(ctx context.Context, cmd UpdateCartItemCommand) (*CartResult, error) {
	cart, err := s.cartStore.Get(ctx, cmd.TenantID, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(cmd.ProductID, cmd.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}

	return ToCartResult(cart), nil
}

// RemoveItem removes a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, tenantID, customerID, productID uuid.UUID) (*CartResult, error) {
	cart, err := s.cartStore.Get(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}

	return ToCartResult(cart), nil
}

// ClearCart empties the customer's cart
func (s *CartService) ClearCart(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return s.cartStore.Delete(ctx, tenantID, customerID)
}
