package handlers

import (
	"net/http"
	"strconv"

	"vendora/internal/common"
	"vendora/internal/models"
	"vendora/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CustomerHandlers handles HTTP requests for customers
type CustomerHandlers struct {
	customerService services.CustomerServiceInterface
}

// NewCustomerHandlers creates a new customer handlers instance
func NewCustomerHandlers(customerService services.CustomerServiceInterface) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

type customerRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Active    *bool   `json:"active"`
}

// CreateCustomer handles POST /customers
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	customer := &models.Customer{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Active:    true,
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}

	if err := h.customerService.CreateCustomer(ctx, customer); err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusCreated, customer, "Customer created successfully")
}

// GetCustomers handles GET /customers
func (h *CustomerHandlers) GetCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.CustomerSearchFilter{
		Query: c.QueryParam("search"),
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			filter.Offset = o
		}
	}
	if activeParam := c.QueryParam("active"); activeParam != "" {
		active := activeParam == "true"
		filter.Active = &active
	}

	customers, err := h.customerService.SearchCustomers(ctx, filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, customers, "Customers retrieved successfully")
}

// GetCustomer handles GET /customers/:id
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("id"), "customer_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	customer, err := h.customerService.GetCustomerByID(ctx, customerID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, customer, "Customer retrieved successfully")
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("id"), "customer_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	customer := &models.Customer{
		ID:        customerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Active:    true,
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}

	if err := h.customerService.UpdateCustomer(ctx, customer); err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, customer, "Customer updated successfully")
}

// DeleteCustomer handles DELETE /customers/:id
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("id"), "customer_id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.customerService.DeleteCustomer(ctx, customerID); err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, nil, "Customer deleted successfully")
}
