package handlers

import (
	"net/http"
	"strconv"

	"vendora/internal/common"
	"vendora/internal/models"
	"vendora/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductServiceInterface
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductServiceInterface) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type productRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description *string `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"min_stock"`
	Active      *bool   `json:"active"`
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Active:      true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.productService.CreateProduct(ctx, product); err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusCreated, product, "Product created successfully")
}

// GetProducts handles GET /products
func (h *ProductHandlers) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.ProductSearchFilter{
		Query:     c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			filter.Offset = o
		}
	}
	if activeParam := c.QueryParam("active"); activeParam != "" {
		active := activeParam == "true"
		filter.Active = &active
	}

	products, err := h.productService.SearchProducts(ctx, filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	product, err := h.productService.GetProductByID(ctx, productID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, product, "Product retrieved successfully")
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	product := &models.Product{
		ID:          productID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Active:      true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.productService.UpdateProduct(ctx, product); err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, nil, "Product deleted successfully")
}

// GetLowStockProducts handles GET /products/low-stock
func (h *ProductHandlers) GetLowStockProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.LowStockProducts(ctx)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, products, "Low stock products retrieved successfully")
}
