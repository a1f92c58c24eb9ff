package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parceldesk/shipment-api/internal/api/metrics"
	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

// AdminHandler serves the administrator endpoints.
type AdminHandler struct {
	shipmentService ports.ShipmentService
}

func NewAdminHandler(shipmentService ports.ShipmentService) *AdminHandler {
	return &AdminHandler{shipmentService: shipmentService}
}

// List returns all shipments, optionally filtered by status or assigned partner.
//
// @Summary      List shipments
// @Tags         admin
// @Produce      json
// @Param        status      query     string  false  "Filter by status"
// @Param        partner_id  query     string  false  "Filter by assigned partner"
// @Success      200         {object}  listShipmentsResponse
// @Failure      403         {object}  map[string]string
// @Router       /v1/admin/shipments [get]
func (h *AdminHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.shipmentService.ListShipments(c.Request().Context(), ports.ListShipmentsInput{
		Actor:     actor,
		Status:    c.QueryParam("status"),
		PartnerID: c.QueryParam("partner_id"),
	})
	if err != nil {
		return err
	}

	items := make([]shipmentSummaryResponse, 0, len(result.Items))
	for _, v := range result.Items {
		items = append(items, shipmentSummaryResponse{
			ID:                v.Shipment.ID,
			TrackingCode:      v.Shipment.TrackingCode,
			OwnerID:           v.Shipment.OwnerID,
			Status:            string(v.Shipment.Status),
			AssignedPartnerID: v.AssignedPartnerID,
			CreatedAt:         v.Shipment.CreatedAt,
			UpdatedAt:         v.Shipment.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, listShipmentsResponse{Items: items, Count: result.Count})
}

// Get returns the full detail of any shipment.
//
// @Summary      Get shipment (admin)
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Shipment ID"
// @Success      200  {object}  shipmentDetailResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/shipments/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	agg, err := h.shipmentService.GetAdminDetail(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(agg))
}

// Assign records a partner assignment on a shipment.
//
// @Summary      Assign a delivery partner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Shipment ID"
// @Param        body  body      assignPartnerRequest  true  "Partner assignment"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/shipments/{id}/assign [post]
func (h *AdminHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignPartnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.shipmentService.AssignPartner(c.Request().Context(), ports.AssignPartnerInput{
		Actor:      actor,
		ShipmentID: c.Param("id"),
		PartnerID:  req.PartnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "partner assigned"})
}

// ForceStatus overrides a shipment's status outside the scan pipeline.
//
// @Summary      Force a status override
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Shipment ID"
// @Param        body  body      forceStatusRequest  true  "Override details"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/shipments/{id}/force-status [post]
func (h *AdminHandler) ForceStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req forceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.shipmentService.ForceStatus(c.Request().Context(), ports.ForceStatusInput{
		Actor:      actor,
		ShipmentID: c.Param("id"),
		NewStatus:  domain.ShipmentStatus(req.Status),
		Reason:     req.Reason,
	})
	if err != nil {
		return err
	}
	metrics.ForceOverridesTotal.WithLabelValues(req.Status).Inc()

	return c.JSON(http.StatusOK, map[string]string{"message": "status overridden"})
}
