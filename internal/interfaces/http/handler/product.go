package handler

import (
	appcatalog "github.com/commerce/backend/internal/application/catalog"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest is the product creation payload
type CreateProductRequest struct {
	SKU          string `json:"sku" binding:"required,max=50,sku"`
	Name         string `json:"name" binding:"required,max=200"`
	Description  string `json:"description" binding:"omitempty,max=2000"`
	Category     string `json:"category" binding:"omitempty,max=100"`
	Price        string `json:"price" binding:"required"`
	Cost         string `json:"cost" binding:"omitempty"`
	Stock        int    `json:"stock" binding:"omitempty,min=0"`
	ReorderLevel int    `json:"reorder_level" binding:"omitempty,min=0"`
}

// UpdateProductRequest is the product update payload
type UpdateProductRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Description  string `json:"description" binding:"omitempty,max=2000"`
	Category     string `json:"category" binding:"omitempty,max=100"`
	Price        string `json:"price" binding:"required"`
	Cost         string `json:"cost" binding:"omitempty"`
	ReorderLevel int    `json:"reorder_level" binding:"omitempty,min=0"`
}

// ProductHandler serves catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(products *appcatalog.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{BaseHandler: NewBaseHandler(logger), products: products}
}

func parseAmount(c *gin.Context, field, raw string, required bool) (decimal.Decimal, bool) {
	if raw == "" {
		if required {
			c.JSON(400, dto.Fail(dto.CodeValidation, field+" is required"))
			return decimal.Zero, false
		}
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(400, dto.Fail(dto.CodeValidation, "Invalid "+field))
		return decimal.Zero, false
	}
	return d, true
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	price, ok := parseAmount(c, "price", req.Price, true)
	if !ok {
		return
	}
	cost, ok := parseAmount(c, "cost", req.Cost, false)
	if !ok {
		return
	}

	result, err := h.products.Create(c.Request.Context(), appcatalog.CreateProductCommand{
		TenantID:     h.TenantID(c),
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        price,
		Cost:         cost,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		CreatedBy:    h.UserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	price, ok := parseAmount(c, "price", req.Price, true)
	if !ok {
		return
	}
	cost, ok := parseAmount(c, "cost", req.Cost, false)
	if !ok {
		return
	}

	result, err := h.products.Update(c.Request.Context(), appcatalog.UpdateProductCommand{
		TenantID:     h.TenantID(c),
		ProductID:    productID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        price,
		Cost:         cost,
		ReorderLevel: req.ReorderLevel,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.products.Get(c.Request.Context(), h.TenantID(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := h.BuildFilter(q)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}
	if c.Query("include_inactive") == "true" {
		filter.Filters["include_inactive"] = true
	}

	result, err := h.products.List(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// GetBySKU handles GET /products/sku/:sku
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	result, err := h.products.GetBySKU(c.Request.Context(), h.TenantID(c), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// LowStock handles GET /products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	result, err := h.products.LowStock(c.Request.Context(), h.TenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Categories handles GET /products/categories
func (h *ProductHandler) Categories(c *gin.Context) {
	result, err := h.products.Categories(c.Request.Context(), h.TenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Delete handles DELETE /products/:id (soft delete)
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.Deactivate(c.Request.Context(), h.TenantID(c), productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate handles POST /products/:id/activate
func (h *ProductHandler) Activate(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.Activate(c.Request.Context(), h.TenantID(c), productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
