package echoapi

import (
	"github.com/labstack/echo/v4"
)

// adminMiddleware restricts access to admin users.
// If roles is not empty, access is further restricted to those roles.
func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if claims.IsAdmin && contextHasAnyRole(ctx, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// backOfficeMiddleware grants access to both admin and office users.
// Read-only endpoints should use this one.
func backOfficeMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if claims.IsAdmin || claims.IsOffice {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
