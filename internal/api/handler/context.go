package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware and performs
// a fast-fail check before any service call: both claims must be present, or
// the token is structurally valid but operationally unusable.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{UserID: userID, Role: role}, nil
}
