package services

import (
	"context"
	"fmt"

	"vendora/internal/common"
	"vendora/internal/models"
	"vendora/internal/repositories"

	"github.com/google/uuid"
)

// CustomerServiceInterface defines the interface for customer service operations
type CustomerServiceInterface interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	// DeleteCustomer soft-deletes: the row is retained for historical sales
	// but excluded from every lookup from then on.
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	SearchCustomers(ctx context.Context, filter *models.CustomerSearchFilter) ([]*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	db           repositories.Database
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(customerRepo repositories.CustomerRepository, db repositories.Database) CustomerServiceInterface {
	return &customerService{
		customerRepo: customerRepo,
		db:           db,
	}
}

func (s *customerService) validateCustomer(customer *models.Customer) error {
	if err := common.ValidateRequiredString(customer.FirstName, "first_name"); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if err := common.ValidateRequiredString(customer.LastName, "last_name"); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if err := common.ValidateEmail(customer.Email, "email"); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := s.validateCustomer(customer); err != nil {
		return err
	}

	existing, err := s.customerRepo.GetByEmail(ctx, s.db, customer.Email)
	if err != nil {
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if existing != nil {
		return conflictErrorf("customer with email %s already exists", customer.Email)
	}

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, notFoundErrorf("customer with id %s not found", id)
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := s.validateCustomer(customer); err != nil {
		return err
	}

	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("get customer: %w", err)
	}
	if existing == nil {
		return notFoundErrorf("customer with id %s not found", customer.ID)
	}
	if existing.Email != customer.Email {
		other, err := s.customerRepo.GetByEmail(ctx, s.db, customer.Email)
		if err != nil {
			return fmt.Errorf("check email uniqueness: %w", err)
		}
		if other != nil {
			return conflictErrorf("customer with email %s already exists", customer.Email)
		}
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get customer: %w", err)
	}
	if existing == nil {
		return notFoundErrorf("customer with id %s not found", id)
	}
	if err := s.customerRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (s *customerService) SearchCustomers(ctx context.Context, filter *models.CustomerSearchFilter) ([]*models.Customer, error) {
	if filter == nil {
		filter = &models.CustomerSearchFilter{}
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

	customers, err := s.customerRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}
