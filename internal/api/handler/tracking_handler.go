package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parceldesk/shipment-api/internal/api/metrics"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

// TrackingHandler serves the unauthenticated public tracking endpoint.
type TrackingHandler struct {
	shipmentService ports.ShipmentService
}

func NewTrackingHandler(shipmentService ports.ShipmentService) *TrackingHandler {
	return &TrackingHandler{shipmentService: shipmentService}
}

// Track returns the sanitized status timeline for a tracking code.
//
// @Summary      Track a shipment
// @Tags         tracking
// @Produce      json
// @Param        code  path      string  true  "Tracking code"
// @Success      200   {object}  ports.PublicTracking
// @Failure      404   {object}  map[string]string
// @Router       /track/{code} [get]
func (h *TrackingHandler) Track(c echo.Context) error {
	tracking, err := h.shipmentService.GetPublicTracking(c.Request().Context(), c.Param("code"))
	if err != nil {
		metrics.TrackingLookupsTotal.WithLabelValues("not_found").Inc()
		return err
	}
	metrics.TrackingLookupsTotal.WithLabelValues("found").Inc()

	return c.JSON(http.StatusOK, tracking)
}
