package jobs

import (
	"context"
	"log"

	"vendora/internal/models"
	"vendora/internal/repositories"

	"github.com/google/uuid"
)

// StockAlertService finds products whose stock has fallen to or below
// their configured minimum.
type StockAlertService struct {
	productRepo repositories.ProductRepository
}

type StockAlert struct {
	ProductID    uuid.UUID
	ProductName  string
	SKU          string
	CurrentStock int
	MinStock     int
}

func NewStockAlertService(productRepo repositories.ProductRepository) *StockAlertService {
	return &StockAlertService{productRepo: productRepo}
}

func (a *StockAlertService) CheckLowStock(ctx context.Context) ([]StockAlert, error) {
	products, err := a.productRepo.LowStock(ctx)
	if err != nil {
		log.Printf("Failed to list low stock products: %v", err)
		return nil, err
	}

	alerts := make([]StockAlert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, newAlert(p))
	}
	return alerts, nil
}

func newAlert(p *models.Product) StockAlert {
	return StockAlert{
		ProductID:    p.ID,
		ProductName:  p.Name,
		SKU:          p.SKU,
		CurrentStock: p.Stock,
		MinStock:     p.MinStock,
	}
}

func (a *StockAlertService) LogLowStockAlerts(alerts []StockAlert) {
	if len(alerts) == 0 {
		return
	}

	log.Printf("Low stock alerts (%d products):", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Product %q (SKU %s) has %d units (minimum: %d)",
			alert.ProductName, alert.SKU, alert.CurrentStock, alert.MinStock)
	}
}
