package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neximprove/broker-onboarding/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing user id means the middleware
// did not run or the token carried no subject.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}
	role, _ = c.Get(middleware.ContextRole).(string)
	return userID, role, nil
}
