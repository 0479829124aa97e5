// Package auth carries the authenticated identity through request
// handling. Authentication itself happens upstream (reverse proxy or
// session layer); this package only transports the verified owner ID.
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// userIDContextKey is the echo context key holding the verified owner ID.
const userIDContextKey = "notewise/user-id"

// UserIDHeader is the header the fronting auth layer sets after verifying
// the caller's identity.
const UserIDHeader = "X-Notewise-User"

// Middleware installs the verified owner ID into the request context and
// rejects requests that carry no identity.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get(UserIDHeader)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
			}
			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// UserID returns the verified owner ID for the request, empty when absent.
func UserID(c echo.Context) string {
	userID, _ := c.Get(userIDContextKey).(string)
	return userID
}
