package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"vendora/internal/caching"
	"vendora/internal/common"
	"vendora/internal/models"
	"vendora/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// maxLineQuantity bounds a single sale line; larger requests are almost
// certainly client bugs.
const maxLineQuantity = 1000000

// CreateSaleLine is one requested product line. Unit and total price are
// supplied by the caller and recorded as-is; the service validates the line
// against current product state but does not recompute prices.
type CreateSaleLine struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
}

type CreateSaleRequest struct {
	CustomerEmail string           `json:"customer_email"`
	Products      []CreateSaleLine `json:"products"`
	SaleDate      time.Time        `json:"sale_date"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"payment_method"`
	Notes         *string          `json:"notes"`
}

// UpdateSaleRequest patches header fields only. Amount is never recomputed
// and stock is never touched here; cancelling through this path does NOT
// restore inventory. Use CancelSale for a stock-restoring cancellation.
type UpdateSaleRequest struct {
	Status        *string    `json:"status"`
	PaymentMethod *string    `json:"payment_method"`
	Notes         *string    `json:"notes"`
	SaleDate      *time.Time `json:"sale_date"`
}

// SaleServiceInterface defines the interface for sale service operations
type SaleServiceInterface interface {
	CreateSale(ctx context.Context, req *CreateSaleRequest) (*models.Sale, error)
	FindAll(ctx context.Context, filter *models.SaleSearchFilter) (*models.SalePage, error)
	FindOne(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	Update(ctx context.Context, id uuid.UUID, patch *UpdateSaleRequest) (*models.Sale, error)
	Remove(ctx context.Context, id uuid.UUID) error
	CancelSale(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	Stats(ctx context.Context, from, to time.Time) (*models.SaleStats, error)
}

type saleService struct {
	db           repositories.Database
	saleRepo     repositories.SaleRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	cacheSvc     caching.CacheService
}

// NewSaleService creates a new sale service instance. The database handle is
// used only to open transactions; every read and write inside a transaction
// goes through the tx value threaded into the repositories.
func NewSaleService(db repositories.Database, saleRepo repositories.SaleRepository, customerRepo repositories.CustomerRepository, productRepo repositories.ProductRepository, cacheSvc caching.CacheService) SaleServiceInterface {
	return &saleService{
		db:           db,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		cacheSvc:     cacheSvc,
	}
}

// CreateSale validates the request and commits sale header, line items and
// stock decrements as one transaction. Any failure rolls back the whole
// unit; no partial sale or stock mutation survives.
func (s *saleService) CreateSale(ctx context.Context, req *CreateSaleRequest) (*models.Sale, error) {
	if len(req.Products) == 0 {
		return nil, validationErrorf("sale must contain at least one product")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Printf("sale transaction rollback failed: %v", rbErr)
		}
	}()

	customer, err := s.customerRepo.GetByEmail(ctx, tx, req.CustomerEmail)
	if err != nil {
		return nil, fmt.Errorf("look up customer: %w", err)
	}
	if customer == nil {
		return nil, notFoundErrorf("customer with email %s not found", req.CustomerEmail)
	}

	// Validate every line against current product state before writing
	// anything. Caller-supplied line totals are trusted by design.
	amount := 0.0
	for _, line := range req.Products {
		if err := common.ValidatePositiveInteger(line.Quantity, fmt.Sprintf("quantity for product %s", line.ProductID), maxLineQuantity); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		product, err := s.productRepo.GetForSale(ctx, tx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("look up product %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, notFoundErrorf("product with id %s not found", line.ProductID)
		}
		if !product.Active {
			return nil, validationErrorf("product %q is not active", product.Name)
		}
		if product.Stock < line.Quantity {
			return nil, conflictErrorf("insufficient stock for product %q. Available: %d, Requested: %d", product.Name, product.Stock, line.Quantity)
		}
		amount += line.TotalPrice
	}

	sale := &models.Sale{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		Amount:        amount,
		SaleDate:      req.SaleDate,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}
	if sale.Status == "" {
		sale.Status = models.SaleStatusPending
	}

	if err := s.saleRepo.Insert(ctx, tx, sale); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	for _, line := range req.Products {
		// Re-fetch inside the transaction so the decrement is based on the
		// stock the transaction actually sees.
		product, err := s.productRepo.GetForSale(ctx, tx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("re-read product %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, notFoundErrorf("product with id %s not found", line.ProductID)
		}

		item := &models.SaleItem{
			ID:         uuid.New(),
			SaleID:     sale.ID,
			ProductID:  product.ID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		}
		if err := s.saleRepo.InsertItem(ctx, tx, item); err != nil {
			return nil, fmt.Errorf("insert sale item: %w", err)
		}
		if err := s.productRepo.UpdateStock(ctx, tx, product.ID, product.Stock-line.Quantity); err != nil {
			return nil, fmt.Errorf("decrement stock for product %s: %w", product.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sale transaction: %w", err)
	}
	committed = true

	s.invalidateCaches(ctx, req.Products)

	created, err := s.saleRepo.GetByID(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("re-read created sale: %w", err)
	}
	return created, nil
}

// FindAll is a read-only projection over persisted sales
func (s *saleService) FindAll(ctx context.Context, filter *models.SaleSearchFilter) (*models.SalePage, error) {
	if filter == nil {
		filter = &models.SaleSearchFilter{}
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	limit, _, err := common.ValidatePaginationParams(filter.Limit, 0)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	filter.Limit = limit
	if filter.Query != "" {
		filter.Query = common.SanitizeSearchQuery(filter.Query)
	}
	if filter.DateFrom != nil && filter.DateTo != nil {
		if err := common.ValidateDateRange(*filter.DateFrom, *filter.DateTo); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
	}

	sales, total, err := s.saleRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search sales: %w", err)
	}
	return &models.SalePage{
		Sales:      sales,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *saleService) FindOne(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale == nil {
		return nil, notFoundErrorf("sale with id %s not found", id)
	}
	return sale, nil
}

// Update patches status, payment method, notes and sale date on the header
// row. It deliberately does not recompute the amount or touch stock or
// items; a status change to cancelled here leaves inventory as-is.
func (s *saleService) Update(ctx context.Context, id uuid.UUID, patch *UpdateSaleRequest) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale == nil {
		return nil, notFoundErrorf("sale with id %s not found", id)
	}

	if patch.Status != nil {
		if !models.ValidSaleStatus(*patch.Status) {
			return nil, validationErrorf("invalid sale status %q", *patch.Status)
		}
		sale.Status = *patch.Status
	}
	if patch.PaymentMethod != nil {
		if !models.ValidPaymentMethod(*patch.PaymentMethod) {
			return nil, validationErrorf("invalid payment method %q", *patch.PaymentMethod)
		}
		sale.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Notes != nil {
		if err := common.SanitizeHTMLField(patch.Notes, "sale notes"); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		sale.Notes = patch.Notes
	}
	if patch.SaleDate != nil {
		sale.SaleDate = *patch.SaleDate
	}

	if err := s.saleRepo.UpdateHeader(ctx, sale); err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}
	s.invalidateStats(ctx)
	return s.saleRepo.GetByID(ctx, id)
}

// Remove deletes a sale and restores every touched product's stock by the
// item's quantity, the exact inverse of the decrement performed at
// creation, all inside one transaction. Cancelled sales already had their
// stock restored by CancelSale, so deleting one removes the rows only.
func (s *saleService) Remove(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get sale: %w", err)
	}
	if sale == nil {
		return notFoundErrorf("sale with id %s not found", id)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin sale deletion transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Printf("sale deletion rollback failed: %v", rbErr)
		}
	}()

	items, err := s.saleRepo.GetItems(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	if sale.Status != models.SaleStatusCancelled {
		if err := s.restoreStock(ctx, tx, items); err != nil {
			return err
		}
	}
	if err := s.saleRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit sale deletion: %w", err)
	}
	committed = true

	s.invalidateItemCaches(ctx, items)
	return nil
}

// CancelSale marks the sale cancelled AND restores stock for its items,
// transactionally. This is the consistency-preserving alternative to
// Update(status=cancelled), which leaves inventory untouched.
func (s *saleService) CancelSale(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale == nil {
		return nil, notFoundErrorf("sale with id %s not found", id)
	}
	if sale.Status == models.SaleStatusCancelled {
		return nil, validationErrorf("sale is already cancelled")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale cancellation transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Printf("sale cancellation rollback failed: %v", rbErr)
		}
	}()

	items, err := s.saleRepo.GetItems(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	if err := s.restoreStock(ctx, tx, items); err != nil {
		return nil, err
	}
	if err := s.saleRepo.UpdateStatus(ctx, tx, id, models.SaleStatusCancelled); err != nil {
		return nil, fmt.Errorf("mark sale cancelled: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sale cancellation: %w", err)
	}
	committed = true

	s.invalidateItemCaches(ctx, items)
	return s.saleRepo.GetByID(ctx, id)
}

// restoreStock increments each item's product stock by its quantity inside
// the supplied transaction. A product that no longer exists is skipped;
// referential integrity normally prevents that case.
func (s *saleService) restoreStock(ctx context.Context, tx pgx.Tx, items []*models.SaleItem) error {
	for _, item := range items {
		product, err := s.productRepo.GetForSale(ctx, tx, item.ProductID)
		if err != nil {
			return fmt.Errorf("look up product %s: %w", item.ProductID, err)
		}
		if product == nil {
			log.Printf("product %s missing while restoring stock for sale %s", item.ProductID, item.SaleID)
			continue
		}
		if err := s.productRepo.UpdateStock(ctx, tx, product.ID, product.Stock+item.Quantity); err != nil {
			return fmt.Errorf("restore stock for product %s: %w", product.ID, err)
		}
	}
	return nil
}

// Stats aggregates sales over a validated date range, cached in Redis
func (s *saleService) Stats(ctx context.Context, from, to time.Time) (*models.SaleStats, error) {
	if err := common.ValidateDateRange(from, to); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetSaleStats(ctx, from, to); err == nil && cached != nil {
			return cached, nil
		}
	}

	sales, err := s.saleRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales for stats: %w", err)
	}

	stats := &models.SaleStats{
		TotalSales:      len(sales),
		ByStatus:        map[string]int{},
		ByPaymentMethod: map[string]int{},
		DateFrom:        from,
		DateTo:          to,
	}
	for _, sale := range sales {
		stats.TotalRevenue += sale.Amount
		stats.ByStatus[sale.Status]++
		stats.ByPaymentMethod[sale.PaymentMethod]++
	}
	if stats.TotalSales > 0 {
		stats.AverageSale = stats.TotalRevenue / float64(stats.TotalSales)
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetSaleStats(ctx, from, to, stats, 5*time.Minute); err != nil {
			log.Printf("failed to cache sale stats: %v", err)
		}
	}
	return stats, nil
}

func (s *saleService) invalidateCaches(ctx context.Context, lines []CreateSaleLine) {
	if s.cacheSvc == nil {
		return
	}
	for _, line := range lines {
		if err := s.cacheSvc.DeleteProduct(ctx, line.ProductID); err != nil {
			log.Printf("failed to invalidate product cache %s: %v", line.ProductID, err)
		}
	}
	s.invalidateStats(ctx)
}

func (s *saleService) invalidateItemCaches(ctx context.Context, items []*models.SaleItem) {
	if s.cacheSvc == nil {
		return
	}
	for _, item := range items {
		if err := s.cacheSvc.DeleteProduct(ctx, item.ProductID); err != nil {
			log.Printf("failed to invalidate product cache %s: %v", item.ProductID, err)
		}
	}
	s.invalidateStats(ctx)
}

func (s *saleService) invalidateStats(ctx context.Context) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateSaleStats(ctx); err != nil {
		log.Printf("failed to invalidate sale stats cache: %v", err)
	}
}
