package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"vendora/internal/caching"
	"vendora/internal/common"
	"vendora/internal/models"
	"vendora/internal/repositories"

	"github.com/google/uuid"
)

// ProductServiceInterface defines the interface for product service operations
type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SearchProducts(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
	LowStockProducts(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	cacheSvc    caching.CacheService
}

// NewProductService creates a new product service instance
func NewProductService(productRepo repositories.ProductRepository, cacheSvc caching.CacheService) ProductServiceInterface {
	return &productService{
		productRepo: productRepo,
		cacheSvc:    cacheSvc,
	}
}

func (s *productService) validateProduct(product *models.Product) error {
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if err := common.ValidateRequiredString(product.SKU, "sku"); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if err := common.ValidatePositiveFloat(product.UnitPrice, "unit_price", 1000000.0); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if product.Stock < 0 {
		return validationErrorf("stock cannot be negative")
	}
	if product.MinStock < 0 {
		return validationErrorf("min_stock cannot be negative")
	}
	if err := common.SanitizeHTMLField(product.Description, "description"); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}

	existing, err := s.productRepo.GetBySKU(ctx, product.SKU)
	if err != nil {
		return fmt.Errorf("check SKU uniqueness: %w", err)
	}
	if existing != nil {
		return conflictErrorf("product with SKU %q already exists", product.SKU)
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetProduct(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, notFoundErrorf("product with id %s not found", id)
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetProduct(ctx, product, 10*time.Minute); err != nil {
			log.Printf("failed to cache product %s: %v", id, err)
		}
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}

	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if existing == nil {
		return notFoundErrorf("product with id %s not found", product.ID)
	}
	if existing.SKU != product.SKU {
		other, err := s.productRepo.GetBySKU(ctx, product.SKU)
		if err != nil {
			return fmt.Errorf("check SKU uniqueness: %w", err)
		}
		if other != nil {
			return conflictErrorf("product with SKU %q already exists", product.SKU)
		}
	}

	product.CreatedAt = existing.CreatedAt
	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.DeleteProduct(ctx, product.ID); err != nil {
			log.Printf("failed to invalidate product cache %s: %v", product.ID, err)
		}
	}
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if existing == nil {
		return notFoundErrorf("product with id %s not found", id)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.DeleteProduct(ctx, id); err != nil {
			log.Printf("failed to invalidate product cache %s: %v", id, err)
		}
	}
	return nil
}

func (s *productService) SearchProducts(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter == nil {
		filter = &models.ProductSearchFilter{}
	}
	if filter.Query != "" {
		filter.Query = common.SanitizeSearchQuery(filter.Query)
	}
	limit, offset, err := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	filter.Limit = limit
	filter.Offset = offset

	products, err := s.productRepo.AdvancedSearch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// LowStockProducts lists active products at or below their min_stock
// threshold. Reporting only; nothing here blocks a sale.
func (s *productService) LowStockProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.LowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	return products, nil
}
