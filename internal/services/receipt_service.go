package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"vendora/internal/common"
	"vendora/internal/models"

	"github.com/jung-kurt/gofpdf"
)

const receiptBucket = "vendora-receipts"

// ReceiptServiceInterface renders and stores PDF receipts for sales
type ReceiptServiceInterface interface {
	// GenerateReceipt builds the PDF for a sale, uploads it to object
	// storage and returns a presigned download URL.
	GenerateReceipt(ctx context.Context, sale *models.Sale) (string, error)
	BuildReceiptPDF(sale *models.Sale) ([]byte, error)
}

type receiptService struct {
	storage StorageService
}

// NewReceiptService creates a new receipt service instance
func NewReceiptService(storage StorageService) ReceiptServiceInterface {
	return &receiptService{storage: storage}
}

func (s *receiptService) GenerateReceipt(ctx context.Context, sale *models.Sale) (string, error) {
	pdfBytes, err := s.BuildReceiptPDF(sale)
	if err != nil {
		return "", fmt.Errorf("build receipt PDF: %w", err)
	}

	if err := s.storage.EnsureBucketExists(ctx, receiptBucket); err != nil {
		return "", fmt.Errorf("ensure receipt bucket: %w", err)
	}

	objectName := fmt.Sprintf("receipts/%s.pdf", sale.ID.String())
	if err := s.storage.UploadObject(ctx, receiptBucket, objectName, "application/pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}

	url, err := s.storage.GetPresignedURL(receiptBucket, objectName, 24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("presign receipt URL: %w", err)
	}
	return url, nil
}

func (s *receiptService) BuildReceiptPDF(sale *models.Sale) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "SALE RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receipt Number: %s", sale.ID.String()))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Sale Date: %s", sale.SaleDate.Format("02-Jan-2006")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Payment Method: %s", sale.PaymentMethod))
	pdf.Ln(8)

	if sale.Customer != nil {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "SOLD TO:")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, sale.Customer.FullName())
		pdf.Ln(6)
		pdf.Cell(0, 6, sale.Customer.Email)
		pdf.Ln(10)
	}

	// Line item table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 8, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range sale.Items {
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		pdf.CellFormat(80, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.TotalPrice), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(135, 8, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", sale.Amount), "1", 1, "R", false, 0, "")

	if notes := common.SafeString(sale.Notes); notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf("Notes: %s", notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
