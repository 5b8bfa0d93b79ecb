package handlers

import (
	"net/http"
	"strconv"
	"time"

	"vendora/internal/common"
	"vendora/internal/models"
	"vendora/internal/services"

	"github.com/labstack/echo/v4"
)

// SaleHandlers handles HTTP requests for sales
type SaleHandlers struct {
	saleService    services.SaleServiceInterface
	receiptService services.ReceiptServiceInterface
}

// NewSaleHandlers creates a new sale handlers instance
func NewSaleHandlers(saleService services.SaleServiceInterface, receiptService services.ReceiptServiceInterface) *SaleHandlers {
	return &SaleHandlers{
		saleService:    saleService,
		receiptService: receiptService,
	}
}

// parseSaleDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates
func parseSaleDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// CreateSale handles POST /sales
func (h *SaleHandlers) CreateSale(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CustomerEmail string                    `json:"customer_email"`
		Products      []services.CreateSaleLine `json:"products"`
		SaleDate      *string                   `json:"sale_date"`
		Status        string                    `json:"status"`
		PaymentMethod string                    `json:"payment_method"`
		Notes         *string                   `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	if err := common.ValidateEmail(req.CustomerEmail, "customer_email"); err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if req.Status != "" && !models.ValidSaleStatus(req.Status) {
		return common.SendValidationError(c, "status must be one of: pending, completed, cancelled, refunded")
	}
	if req.PaymentMethod == "" || !models.ValidPaymentMethod(req.PaymentMethod) {
		return common.SendValidationError(c, "payment_method must be one of: cash, card, transfer, other")
	}
	if err := common.SanitizeHTMLField(req.Notes, "notes"); err != nil {
		return common.SendValidationError(c, err.Error())
	}

	createReq := &services.CreateSaleRequest{
		CustomerEmail: req.CustomerEmail,
		Products:      req.Products,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.SaleDate != nil && *req.SaleDate != "" {
		saleDate, err := parseSaleDate(*req.SaleDate)
		if err != nil {
			return common.SendValidationError(c, "sale_date must be RFC3339 or YYYY-MM-DD")
		}
		createReq.SaleDate = saleDate
	}

	sale, err := h.saleService.CreateSale(ctx, createReq)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusCreated, sale, "Sale created successfully")
}

// GetSales handles GET /sales
func (h *SaleHandlers) GetSales(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.SaleSearchFilter{
		Query: c.QueryParam("search"),
	}
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if status := c.QueryParam("status"); status != "" {
		if !models.ValidSaleStatus(status) {
			return common.SendValidationError(c, "invalid status filter")
		}
		filter.Status = &status
	}
	if method := c.QueryParam("paymentMethod"); method != "" {
		if !models.ValidPaymentMethod(method) {
			return common.SendValidationError(c, "invalid paymentMethod filter")
		}
		filter.PaymentMethod = &method
	}
	if from := c.QueryParam("dateFrom"); from != "" {
		t, err := parseSaleDate(from)
		if err != nil {
			return common.SendValidationError(c, "dateFrom must be RFC3339 or YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}
	if to := c.QueryParam("dateTo"); to != "" {
		t, err := parseSaleDate(to)
		if err != nil {
			return common.SendValidationError(c, "dateTo must be RFC3339 or YYYY-MM-DD")
		}
		filter.DateTo = &t
	}
	if minParam := c.QueryParam("minAmount"); minParam != "" {
		v, err := strconv.ParseFloat(minParam, 64)
		if err != nil {
			return common.SendValidationError(c, "minAmount must be a number")
		}
		filter.MinAmount = &v
	}
	if maxParam := c.QueryParam("maxAmount"); maxParam != "" {
		v, err := strconv.ParseFloat(maxParam, 64)
		if err != nil {
			return common.SendValidationError(c, "maxAmount must be a number")
		}
		filter.MaxAmount = &v
	}

	page, err := h.saleService.FindAll(ctx, filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, page, "Sales retrieved successfully")
}

// GetSale handles GET /sales/:id
func (h *SaleHandlers) GetSale(c echo.Context) error {
	ctx := c.Request().Context()

	saleID, err := common.ValidateUUID(c.Param("id"), "sale_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	sale, err := h.saleService.FindOne(ctx, saleID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, sale, "Sale retrieved successfully")
}

// UpdateSale handles PATCH /sales/:id
func (h *SaleHandlers) UpdateSale(c echo.Context) error {
	ctx := c.Request().Context()

	saleID, err := common.ValidateUUID(c.Param("id"), "sale_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		Status        *string `json:"status"`
		PaymentMethod *string `json:"payment_method"`
		Notes         *string `json:"notes"`
		SaleDate      *string `json:"sale_date"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	patch := &services.UpdateSaleRequest{
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.SaleDate != nil && *req.SaleDate != "" {
		saleDate, err := parseSaleDate(*req.SaleDate)
		if err != nil {
			return common.SendValidationError(c, "sale_date must be RFC3339 or YYYY-MM-DD")
		}
		patch.SaleDate = &saleDate
	}

	sale, err := h.saleService.Update(ctx, saleID, patch)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, sale, "Sale updated successfully")
}

// CancelSale handles POST /sales/:id/cancel
func (h *SaleHandlers) CancelSale(c echo.Context) error {
	ctx := c.Request().Context()

	saleID, err := common.ValidateUUID(c.Param("id"), "sale_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	sale, err := h.saleService.CancelSale(ctx, saleID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, sale, "Sale cancelled and stock restored")
}

// DeleteSale handles DELETE /sales/:id
func (h *SaleHandlers) DeleteSale(c echo.Context) error {
	ctx := c.Request().Context()

	saleID, err := common.ValidateUUID(c.Param("id"), "sale_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.saleService.Remove(ctx, saleID); err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, nil, "Sale deleted and stock restored")
}

// GetSaleStats handles GET /sales/stats
func (h *SaleHandlers) GetSaleStats(c echo.Context) error {
	ctx := c.Request().Context()

	to := time.Now()
	from := to.AddDate(0, -1, 0)
	if fromParam := c.QueryParam("dateFrom"); fromParam != "" {
		t, err := parseSaleDate(fromParam)
		if err != nil {
			return common.SendValidationError(c, "dateFrom must be RFC3339 or YYYY-MM-DD")
		}
		from = t
	}
	if toParam := c.QueryParam("dateTo"); toParam != "" {
		t, err := parseSaleDate(toParam)
		if err != nil {
			return common.SendValidationError(c, "dateTo must be RFC3339 or YYYY-MM-DD")
		}
		to = t
	}

	stats, err := h.saleService.Stats(ctx, from, to)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, stats, "Sale stats retrieved successfully")
}

// GenerateReceipt handles POST /sales/:id/receipt
func (h *SaleHandlers) GenerateReceipt(c echo.Context) error {
	ctx := c.Request().Context()

	saleID, err := common.ValidateUUID(c.Param("id"), "sale_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	sale, err := h.saleService.FindOne(ctx, saleID)
	if err != nil {
		return handleServiceError(c, err)
	}

	url, err := h.receiptService.GenerateReceipt(ctx, sale)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, map[string]string{"receipt_url": url}, "Receipt generated successfully")
}
