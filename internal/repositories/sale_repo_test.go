package repositories

import (
	"context"
	"testing"
	"time"

	"vendora/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SaleRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       SaleRepository
	saleID     uuid.UUID
	customerID uuid.UUID
	ctx        context.Context
}

func (suite *SaleRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSaleRepo(mock)
	suite.saleID = uuid.New()
	suite.customerID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *SaleRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestSaleRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SaleRepoTestSuite))
}

func (suite *SaleRepoTestSuite) saleWithCustomerRows(status string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "customer_id", "amount", "sale_date", "status", "payment_method", "notes", "created_at", "updated_at",
		"c_id", "first_name", "last_name", "email", "phone", "active", "deleted_at", "c_created_at", "c_updated_at",
	}).AddRow(suite.saleID, suite.customerID, 42.0, now, status, "cash", nil, now, now,
		suite.customerID, "Ada", "Lovelace", "ada@example.com", nil, true, nil, now, now)
}

func (suite *SaleRepoTestSuite) TestInsert() {
	sale := &models.Sale{
		ID:            suite.saleID,
		CustomerID:    suite.customerID,
		Amount:        42.0,
		SaleDate:      time.Now(),
		Status:        models.SaleStatusPending,
		PaymentMethod: models.PaymentMethodCash,
	}

	suite.mock.ExpectExec(`INSERT INTO sales \(`).
		WithArgs(sale.ID, sale.CustomerID, sale.Amount, sale.SaleDate, sale.Status, sale.PaymentMethod, sale.Notes).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Insert(suite.ctx, suite.mock, sale)
	assert.NoError(suite.T(), err)
}

func (suite *SaleRepoTestSuite) TestSearch_DefaultPagination() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sales s JOIN customers c ON c\.id = s\.customer_id WHERE 1=1`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectQuery(`(?s)SELECT s\..+FROM sales s JOIN customers c.+ORDER BY s\.sale_date DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(suite.saleWithCustomerRows(models.SaleStatusCompleted))

	sales, total, err := suite.repo.Search(suite.ctx, &models.SaleSearchFilter{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
	assert.Len(suite.T(), sales, 1)
	assert.Equal(suite.T(), "ada@example.com", sales[0].Customer.Email)
}

func (suite *SaleRepoTestSuite) TestSearch_StatusAndDateFilters() {
	status := models.SaleStatusCompleted
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now()
	filter := &models.SaleSearchFilter{
		Status:   &status,
		DateFrom: &from,
		DateTo:   &to,
		Page:     2,
		Limit:    20,
	}

	suite.mock.ExpectQuery(`(?s)SELECT COUNT\(\*\).+WHERE 1=1 AND s\.status = \$1 AND s\.sale_date >= \$2 AND s\.sale_date <= \$3`).
		WithArgs(status, from, to).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(25))
	suite.mock.ExpectQuery(`(?s)SELECT s\..+AND s\.status = \$1.+LIMIT \$4 OFFSET \$5`).
		WithArgs(status, from, to, 20, 20).
		WillReturnRows(suite.saleWithCustomerRows(status))

	sales, total, err := suite.repo.Search(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 25, total)
	assert.Len(suite.T(), sales, 1)
}

func (suite *SaleRepoTestSuite) TestSearch_FreeTextMatchesCustomerAndNotes() {
	filter := &models.SaleSearchFilter{Query: "ada"}

	suite.mock.ExpectQuery(`(?s)SELECT COUNT\(\*\).+c\.first_name ILIKE \$1 OR c\.last_name ILIKE \$1 OR c\.email ILIKE \$1 OR COALESCE\(s\.notes, ''\) ILIKE \$1`).
		WithArgs("%ada%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectQuery(`(?s)SELECT s\..+LIMIT \$2 OFFSET \$3`).
		WithArgs("%ada%", 10, 0).
		WillReturnRows(suite.saleWithCustomerRows(models.SaleStatusPending))

	_, total, err := suite.repo.Search(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
}

func (suite *SaleRepoTestSuite) TestUpdateStatus() {
	suite.mock.ExpectExec(`(?s)UPDATE sales\s+SET status = \$1, updated_at = NOW\(\)\s+WHERE id = \$2`).
		WithArgs(models.SaleStatusCancelled, suite.saleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStatus(suite.ctx, suite.mock, suite.saleID, models.SaleStatusCancelled)
	assert.NoError(suite.T(), err)
}

func (suite *SaleRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM sales WHERE id = \$1`).
		WithArgs(suite.saleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, suite.mock, suite.saleID)
	assert.NoError(suite.T(), err)
}

func (suite *SaleRepoTestSuite) TestGetByID_NotFoundReturnsNil() {
	suite.mock.ExpectQuery(`(?s)SELECT s\..+FROM sales s\s+JOIN customers c`).
		WithArgs(suite.saleID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "customer_id", "amount", "sale_date", "status", "payment_method", "notes", "created_at", "updated_at",
			"c_id", "first_name", "last_name", "email", "phone", "active", "deleted_at", "c_created_at", "c_updated_at",
		}))

	sale, err := suite.repo.GetByID(suite.ctx, suite.saleID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), sale)
}
