package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SaleRepository interface {
	// Insert and InsertItem write through the supplied querier; sale
	// creation passes its transaction so header, items and stock updates
	// commit or roll back as one unit.
	Insert(ctx context.Context, q Querier, sale *models.Sale) error
	InsertItem(ctx context.Context, q Querier, item *models.SaleItem) error
	// GetByID loads the sale with its customer, items and item products
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	GetItems(ctx context.Context, q Querier, saleID uuid.UUID) ([]*models.SaleItem, error)
	Search(ctx context.Context, filter *models.SaleSearchFilter) ([]*models.Sale, int, error)
	UpdateHeader(ctx context.Context, sale *models.Sale) error
	// UpdateStatus writes through the supplied querier so cancellation can
	// flip the status inside the same transaction that restores stock.
	UpdateStatus(ctx context.Context, q Querier, id uuid.UUID, status string) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error)
}

type saleRepo struct {
	db Database
}

func NewSaleRepo(db Database) SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) Insert(ctx context.Context, q Querier, sale *models.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, amount, sale_date, status, payment_method, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := q.Exec(ctx, query, sale.ID, sale.CustomerID, sale.Amount, sale.SaleDate, sale.Status, sale.PaymentMethod, sale.Notes)
	return err
}

func (r *saleRepo) InsertItem(ctx context.Context, q Querier, item *models.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := q.Exec(ctx, query, item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice)
	return err
}

func (r *saleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	sale := &models.Sale{Customer: &models.Customer{}}
	query := `
		SELECT s.id, s.customer_id, s.amount, s.sale_date, s.status, s.payment_method, s.notes, s.created_at, s.updated_at,
		       c.id, c.first_name, c.last_name, c.email, c.phone, c.active, c.deleted_at, c.created_at, c.updated_at
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sale.ID, &sale.CustomerID, &sale.Amount, &sale.SaleDate, &sale.Status, &sale.PaymentMethod, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt,
		&sale.Customer.ID, &sale.Customer.FirstName, &sale.Customer.LastName, &sale.Customer.Email, &sale.Customer.Phone, &sale.Customer.Active, &sale.Customer.DeletedAt, &sale.Customer.CreatedAt, &sale.Customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.itemsWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *saleRepo) itemsWithProducts(ctx context.Context, saleID uuid.UUID) ([]*models.SaleItem, error) {
	query := `
		SELECT i.id, i.sale_id, i.product_id, i.quantity, i.unit_price, i.total_price, i.created_at,
		       p.id, p.name, p.sku, p.description, p.unit_price, p.stock, p.min_stock, p.active, p.created_at, p.updated_at
		FROM sale_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY i.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SaleItem
	for rows.Next() {
		item := &models.SaleItem{Product: &models.Product{}}
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.CreatedAt,
			&item.Product.ID, &item.Product.Name, &item.Product.SKU, &item.Product.Description, &item.Product.UnitPrice, &item.Product.Stock, &item.Product.MinStock, &item.Product.Active, &item.Product.CreatedAt, &item.Product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *saleRepo) GetItems(ctx context.Context, q Querier, saleID uuid.UUID) ([]*models.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price, created_at
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY created_at ASC
	`
	rows, err := q.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SaleItem
	for rows.Next() {
		item := &models.SaleItem{}
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// buildSearchWhere composes the WHERE clause shared by the count and page
// queries of Search. Conditions are purely additive.
func buildSearchWhere(filter *models.SaleSearchFilter) (string, []interface{}) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Query != "" {
		n++
		where += fmt.Sprintf(` AND (c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.email ILIKE $%d OR COALESCE(s.notes, '') ILIKE $%d)`, n, n, n, n)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.Status != nil {
		n++
		where += fmt.Sprintf(` AND s.status = $%d`, n)
		args = append(args, *filter.Status)
	}
	if filter.PaymentMethod != nil {
		n++
		where += fmt.Sprintf(` AND s.payment_method = $%d`, n)
		args = append(args, *filter.PaymentMethod)
	}
	if filter.DateFrom != nil {
		n++
		where += fmt.Sprintf(` AND s.sale_date >= $%d`, n)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		n++
		where += fmt.Sprintf(` AND s.sale_date <= $%d`, n)
		args = append(args, *filter.DateTo)
	}
	if filter.MinAmount != nil {
		n++
		where += fmt.Sprintf(` AND s.amount >= $%d`, n)
		args = append(args, *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		n++
		where += fmt.Sprintf(` AND s.amount <= $%d`, n)
		args = append(args, *filter.MaxAmount)
	}

	return where, args
}

func (r *saleRepo) Search(ctx context.Context, filter *models.SaleSearchFilter) ([]*models.Sale, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	where, args := buildSearchWhere(filter)
	joined := ` FROM sales s JOIN customers c ON c.id = s.customer_id` + where

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+joined, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT s.id, s.customer_id, s.amount, s.sale_date, s.status, s.payment_method, s.notes, s.created_at, s.updated_at,
		       c.id, c.first_name, c.last_name, c.email, c.phone, c.active, c.deleted_at, c.created_at, c.updated_at` +
		joined + ` ORDER BY s.sale_date DESC`
	n := len(args)
	n++
	query += fmt.Sprintf(` LIMIT $%d`, n)
	args = append(args, filter.Limit)
	n++
	query += fmt.Sprintf(` OFFSET $%d`, n)
	args = append(args, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale := &models.Sale{Customer: &models.Customer{}}
		if err := rows.Scan(
			&sale.ID, &sale.CustomerID, &sale.Amount, &sale.SaleDate, &sale.Status, &sale.PaymentMethod, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt,
			&sale.Customer.ID, &sale.Customer.FirstName, &sale.Customer.LastName, &sale.Customer.Email, &sale.Customer.Phone, &sale.Customer.Active, &sale.Customer.DeletedAt, &sale.Customer.CreatedAt, &sale.Customer.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		sales = append(sales, sale)
	}
	return sales, total, rows.Err()
}

func (r *saleRepo) UpdateHeader(ctx context.Context, sale *models.Sale) error {
	query := `
		UPDATE sales
		SET status = $1, payment_method = $2, notes = $3, sale_date = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, sale.Status, sale.PaymentMethod, sale.Notes, sale.SaleDate, sale.ID)
	return err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, q Querier, id uuid.UUID, status string) error {
	query := `
		UPDATE sales
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := q.Exec(ctx, query, status, id)
	return err
}

// Delete removes the sale; sale_items cascade at the schema level
func (r *saleRepo) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	query := `DELETE FROM sales WHERE id = $1`
	_, err := q.Exec(ctx, query, id)
	return err
}

func (r *saleRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error) {
	query := `
		SELECT id, customer_id, amount, sale_date, status, payment_method, notes, created_at, updated_at
		FROM sales
		WHERE sale_date >= $1 AND sale_date <= $2
		ORDER BY sale_date DESC
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale := &models.Sale{}
		if err := rows.Scan(&sale.ID, &sale.CustomerID, &sale.Amount, &sale.SaleDate, &sale.Status, &sale.PaymentMethod, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
