package middleware

import (
	"context"
	"net/http"

	"vendora/internal/common"
	"vendora/internal/services"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWT validates the bearer token on protected routes and puts the
// authenticated user ID into the request context.
func JWT(authService services.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := authService.ValidateToken(c.Request().Context(), auth)
			if err != nil {
				return nil, err
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return nil, err
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}
