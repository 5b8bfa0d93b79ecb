package common

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the generic response wrapper returned by every endpoint
type Envelope struct {
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message"`
	Success   bool        `json:"success"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorBody is the structured body sent with error responses
type ErrorBody struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// SendData sends a success envelope with the given status code
func SendData(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, Envelope{
		Data:      data,
		Message:   message,
		Success:   true,
		Timestamp: time.Now().UTC(),
	})
}

func sendError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorBody{
		Code:      code,
		Message:   message,
		Success:   false,
		Timestamp: time.Now().UTC(),
	})
}

// SendValidationError sends a 400 response
func SendValidationError(c echo.Context, message string) error {
	return sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// SendNotFoundError sends a 404 response
func SendNotFoundError(c echo.Context, message string) error {
	return sendError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// SendConflictError sends a 409 response
func SendConflictError(c echo.Context, message string) error {
	return sendError(c, http.StatusConflict, "CONFLICT", message)
}

// SendServerError sends a 500 response
func SendServerError(c echo.Context, message string) error {
	return sendError(c, http.StatusInternalServerError, "SERVER_ERROR", message)
}

// SendUnauthorizedError sends a 401 response
func SendUnauthorizedError(c echo.Context, message string) error {
	return sendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}
