package services

import (
	"testing"
	"time"

	"vendora/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func receiptSale(notes *string) *models.Sale {
	productID := uuid.New()
	return &models.Sale{
		ID:            uuid.New(),
		Amount:        20.0,
		SaleDate:      time.Now(),
		PaymentMethod: models.PaymentMethodCash,
		Notes:         notes,
		Customer: &models.Customer{
			ID:        uuid.New(),
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
		Items: []*models.SaleItem{
			{
				ID:         uuid.New(),
				ProductID:  productID,
				Quantity:   2,
				UnitPrice:  10.0,
				TotalPrice: 20.0,
				Product:    &models.Product{ID: productID, Name: "Widget"},
			},
		},
	}
}

func TestBuildReceiptPDF_WithNotes(t *testing.T) {
	notes := "deliver after 5pm"
	svc := NewReceiptService(nil)

	pdfBytes, err := svc.BuildReceiptPDF(receiptSale(&notes))
	assert.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}

func TestBuildReceiptPDF_NilNotes(t *testing.T) {
	svc := NewReceiptService(nil)

	pdfBytes, err := svc.BuildReceiptPDF(receiptSale(nil))
	assert.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}
