package handlers

import (
	"errors"
	"net/http"

	"vendora/internal/common"
	"vendora/internal/models"
	"vendora/internal/repositories"
	"vendora/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userRepo:    userRepo,
	}
}

// LoginResponse represents the login response
type LoginResponse struct {
	models.TokenResponse
	User *models.User `json:"user"`
}

// Signup handles user registration
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	if err := common.ValidateEmail(req.Email, "email"); err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return common.SendValidationError(c, err.Error())
	}

	user, err := h.authService.Signup(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusCreated, user, "User registered successfully")
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return common.SendValidationError(c, "Email and password are required")
	}

	user, tokens, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return common.SendUnauthorizedError(c, "Invalid email or password")
		}
		return handleServiceError(c, err)
	}

	response := LoginResponse{
		TokenResponse: *tokens,
		User:          user,
	}
	return common.SendData(c, http.StatusOK, response, "Login successful")
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandlers) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendValidationError(c, "refresh_token is required")
	}

	tokens, err := h.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return common.SendUnauthorizedError(c, "Invalid or expired refresh token")
		}
		return handleServiceError(c, err)
	}
	return common.SendData(c, http.StatusOK, tokens, "Token refreshed successfully")
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Authentication required")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return handleServiceError(c, err)
	}
	if user == nil {
		return common.SendNotFoundError(c, "User not found")
	}
	return common.SendData(c, http.StatusOK, user, "User retrieved successfully")
}
