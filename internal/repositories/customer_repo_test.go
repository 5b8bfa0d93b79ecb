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

type CustomerRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       CustomerRepository
	customerID uuid.UUID
	ctx        context.Context
}

func (suite *CustomerRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCustomerRepo(mock)
	suite.customerID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *CustomerRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestCustomerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepoTestSuite))
}

func (suite *CustomerRepoTestSuite) customerRow() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "active", "deleted_at", "created_at", "updated_at"}).
		AddRow(suite.customerID, "Ada", "Lovelace", "ada@example.com", nil, true, nil, now, now)
}

func (suite *CustomerRepoTestSuite) TestGetByEmail_ExcludesSoftDeleted() {
	// The soft-delete predicate lives in the query itself
	suite.mock.ExpectQuery(`(?s)SELECT .+FROM customers\s+WHERE email = \$1 AND deleted_at IS NULL`).
		WithArgs("ada@example.com").
		WillReturnRows(suite.customerRow())

	customer, err := suite.repo.GetByEmail(suite.ctx, suite.mock, "ada@example.com")
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), customer)
	assert.Equal(suite.T(), "ada@example.com", customer.Email)
}

func (suite *CustomerRepoTestSuite) TestGetByEmail_NoMatchReturnsNil() {
	suite.mock.ExpectQuery(`(?s)SELECT .+FROM customers\s+WHERE email = \$1 AND deleted_at IS NULL`).
		WithArgs("gone@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "active", "deleted_at", "created_at", "updated_at"}))

	customer, err := suite.repo.GetByEmail(suite.ctx, suite.mock, "gone@example.com")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), customer)
}

func (suite *CustomerRepoTestSuite) TestGetByID_ExcludesSoftDeleted() {
	suite.mock.ExpectQuery(`(?s)SELECT .+FROM customers\s+WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(suite.customerID).
		WillReturnRows(suite.customerRow())

	customer, err := suite.repo.GetByID(suite.ctx, suite.customerID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), customer)
}

func (suite *CustomerRepoTestSuite) TestSoftDelete_SetsDeletedAt() {
	suite.mock.ExpectExec(`(?s)UPDATE customers\s+SET deleted_at = NOW\(\), updated_at = NOW\(\)\s+WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(suite.customerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SoftDelete(suite.ctx, suite.customerID)
	assert.NoError(suite.T(), err)
}

func (suite *CustomerRepoTestSuite) TestCreate() {
	customer := &models.Customer{
		ID:        suite.customerID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Active:    true,
	}

	suite.mock.ExpectExec(`INSERT INTO customers \(`).
		WithArgs(customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.Phone, customer.Active).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, customer)
	assert.NoError(suite.T(), err)
}

func (suite *CustomerRepoTestSuite) TestSearch_QueryAndActiveFilter() {
	active := true
	suite.mock.ExpectQuery(`(?s)SELECT .+FROM customers\s+WHERE deleted_at IS NULL.+ILIKE \$1.+active = \$2.+LIMIT \$3`).
		WithArgs("%ada%", active, 50).
		WillReturnRows(suite.customerRow())

	customers, err := suite.repo.Search(suite.ctx, &models.CustomerSearchFilter{Query: "ada", Active: &active})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), customers, 1)
}
