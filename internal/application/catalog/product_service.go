package catalog

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductCommand creates a new catalog product
type CreateProductCommand struct {
	TenantID     uuid.UUID
	SKU          string
	Name         string
	Description  string
	Category     string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	Stock        int
	ReorderLevel int
	CreatedBy    uuid.UUID
}

// UpdateProductCommand updates an existing product. SKU and stock are
// not editable here; stock moves through the inventory operations.
type UpdateProductCommand struct {
	TenantID     uuid.UUID
	ProductID    uuid.UUID
	Name         string
	Description  string
	Category     string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	ReorderLevel int
}

// ProductResult is the application-level view of a product
type ProductResult struct {
	ID           uuid.UUID `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Price        string    `json:"price"`
	Cost         string    `json:"cost"`
	Stock        int       `json:"stock"`
	ReorderLevel int       `json:"reorder_level"`
	LowStock     bool      `json:"low_stock"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToProductResult maps a product aggregate to its result view
func ToProductResult(p *catalog.Product) *ProductResult {
	return &ProductResult{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price.StringFixed(2),
		Cost:         p.Cost.StringFixed(2),
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
		LowStock:     p.IsLowStock(),
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductService handles catalog management and browsing
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a product service
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, cmd CreateProductCommand) (*ProductResult, error) {
	exists, err := s.products.ExistsBySKU(ctx, cmd.TenantID, cmd.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_SKU", "A product with this SKU already exists")
	}

	product, err := catalog.NewProduct(cmd.TenantID, cmd.SKU, cmd.Name, cmd.Price, cmd.Cost, cmd.Stock, cmd.ReorderLevel)
	if err != nil {
		return nil, err
	}
	product.Description = cmd.Description
	product.Category = cmd.Category
	product.SetCreatedBy(cmd.CreatedBy)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("sku", product.SKU),
		zap.String("product_id", product.ID.String()))

	return ToProductResult(product), nil
}

// Update modifies a product's editable fields
func (s *ProductService) Update(ctx context.Context, cmd UpdateProductCommand) (*ProductResult, error) {
	product, err := s.products.FindByID(ctx, cmd.TenantID, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(cmd.Name, cmd.Description, cmd.Category, cmd.Price, cmd.Cost, cmd.ReorderLevel); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResult(product), nil
}

// Get loads a single product
func (s *ProductService) Get(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResult, error) {
	product, err := s.products.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResult(product), nil
}

// GetBySKU loads a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductResult, error) {
	product, err := s.products.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}
	return ToProductResult(product), nil
}

// List returns a filtered, paginated product list
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[ProductResult], error) {
	page, err := s.products.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ProductResult]{}, err
	}

	items := make([]ProductResult, 0, len(page.Items))
	for idx := range page.Items {
		items = append(items, *ToProductResult(&page.Items[idx]))
	}
	return shared.Paginated[ProductResult]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// LowStock returns active products at or below their reorder level
func (s *ProductService) LowStock(ctx context.Context, tenantID uuid.UUID) ([]ProductResult, error) {
	products, err := s.products.FindLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	results := make([]ProductResult, 0, len(products))
	for idx := range products {
		results = append(results, *ToProductResult(&products[idx]))
	}
	return results, nil
}

// Categories returns the distinct categories in use
func (s *ProductService) Categories(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	return s.products.Categories(ctx, tenantID)
}

// Deactivate soft-deletes a product
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, tenantID, productID)
	if err != nil {
		return err
	}

	product.Deactivate()
	if err := s.products.Save(ctx, product); err != nil {
		return err
	}

	s.logger.Info("product deactivated", zap.String("sku", product.SKU))
	return nil
}

// Activate restores a soft-deleted product
func (s *ProductService) Activate(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, tenantID, productID)
	if err != nil {
		return err
	}

	product.Activate()
	return s.products.Save(ctx, product)
}
