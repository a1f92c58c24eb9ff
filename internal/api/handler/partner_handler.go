package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parceldesk/shipment-api/internal/api/metrics"
	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

// PartnerHandler serves the delivery-partner endpoints.
type PartnerHandler struct {
	shipmentService ports.ShipmentService
}

func NewPartnerHandler(shipmentService ports.ShipmentService) *PartnerHandler {
	return &PartnerHandler{shipmentService: shipmentService}
}

// Scan applies a status transition on a shipment assigned to the caller.
//
// @Summary      Scan a shipment
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Shipment ID"
// @Param        body  body      scanRequest  true  "Scan details"
// @Success      200   {object}  scanResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/partner/shipments/{id}/scan [post]
func (h *PartnerHandler) Scan(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.shipmentService.Scan(c.Request().Context(), ports.ScanInput{
		Actor:       actor,
		ShipmentID:  c.Param("id"),
		NewStatus:   domain.ShipmentStatus(req.Status),
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		metrics.ScansRejectedTotal.WithLabelValues(scanRejectReason(err)).Inc()
		return err
	}
	metrics.ScansProcessedTotal.WithLabelValues(string(result.Status)).Inc()

	return c.JSON(http.StatusOK, scanResponse{
		TrackingCode: result.TrackingCode,
		Status:       string(result.Status),
	})
}

func scanRejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrShipmentNotFound):
		return "not_found"
	default:
		return "error"
	}
}
