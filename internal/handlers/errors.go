package handlers

import (
	"errors"
	"log"

	"vendora/internal/common"
	"vendora/internal/services"

	"github.com/labstack/echo/v4"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, not found 404, conflict 409, everything else 500 with a
// generic body so infrastructure detail never leaks to the client.
func handleServiceError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return common.SendValidationError(c, validationErr.Message)
	}
	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return common.SendNotFoundError(c, notFoundErr.Message)
	}
	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return common.SendConflictError(c, conflictErr.Message)
	}
	log.Printf("%s %s failed: %v", c.Request().Method, c.Path(), err)
	return common.SendServerError(c, "operation could not be completed")
}
