package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parceldesk/shipment-api/internal/api/metrics"
	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

// ShipmentHandler serves the customer-facing shipment endpoints.
type ShipmentHandler struct {
	shipmentService ports.ShipmentService
}

func NewShipmentHandler(shipmentService ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// Create books a new shipment for the authenticated customer.
//
// @Summary      Book a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.shipmentService.CreateBooking(c.Request().Context(), ports.CreateBookingInput{
		OwnerID:         actor.UserID,
		PickupAddress:   toAddressInput(req.PickupAddress),
		DeliveryAddress: toAddressInput(req.DeliveryAddress),
		Items:           toItemInputs(req.Items),
		TotalWeightKg:   req.TotalWeightKg,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBookingFailed) || errors.Is(err, domain.ErrInconsistent) {
			metrics.BookingsRolledBackTotal.Inc()
		}
		return err
	}
	metrics.BookingsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, bookingResponse{
		ShipmentID:   result.ShipmentID,
		TrackingCode: result.TrackingCode,
		Status:       result.Status,
		CreatedAt:    result.CreatedAt,
		Links: shipmentLinks{
			Self:  "/v1/shipments/" + result.ShipmentID,
			Track: "/track/" + result.TrackingCode,
		},
	})
}

// Get returns the full detail of one of the caller's own shipments.
//
// @Summary      Get own shipment
// @Tags         shipments
// @Produce      json
// @Param        id   path      string  true  "Shipment ID"
// @Success      200  {object}  shipmentDetailResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/shipments/{id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	agg, err := h.shipmentService.GetOwnerDetail(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(agg))
}

// SchedulePickup records a pickup window on a pending shipment.
//
// @Summary      Schedule a pickup
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Shipment ID"
// @Param        body  body      schedulePickupRequest  true  "Pickup window"
// @Success      202   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/shipments/{id}/pickup [post]
func (h *ShipmentHandler) SchedulePickup(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req schedulePickupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.shipmentService.SchedulePickup(c.Request().Context(), ports.SchedulePickupInput{
		Actor:      actor,
		ShipmentID: c.Param("id"),
		PickupDate: req.PickupDate,
		TimeSlot:   req.PickupTimeSlot,
	})
	if err != nil {
		return err
	}
	metrics.PickupsScheduledTotal.Inc()

	return c.JSON(http.StatusAccepted, map[string]string{"message": "pickup scheduled"})
}
