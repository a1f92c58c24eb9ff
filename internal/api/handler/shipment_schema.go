package handler

import (
	"time"

	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/ports"
)

// --- Request types ---

type addressRequest struct {
	ContactName  string `json:"contact_name"   validate:"required"`
	ContactPhone string `json:"contact_phone"  validate:"required"`
	AddressLine1 string `json:"address_line_1" validate:"required"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"           validate:"required"`
	State        string `json:"state"          validate:"required"`
	Pincode      string `json:"pincode"        validate:"required"`
	Country      string `json:"country"`
}

type itemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity"    validate:"min=1"`
	WeightKg    float64 `json:"weight_kg"`
	LengthCm    float64 `json:"length_cm"`
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"`
}

type createBookingRequest struct {
	PickupAddress   addressRequest `json:"pickup_address"   validate:"required"`
	DeliveryAddress addressRequest `json:"delivery_address" validate:"required"`
	Items           []itemRequest  `json:"items"            validate:"dive"`
	TotalWeightKg   float64        `json:"total_weight_kg"`
}

type schedulePickupRequest struct {
	PickupDate     string `json:"pickup_date"      validate:"required,datetime=2006-01-02"`
	PickupTimeSlot string `json:"pickup_time_slot" validate:"required"`
}

type scanRequest struct {
	Status      string `json:"status"      validate:"required,oneof=PICKED_UP IN_TRANSIT OUT_FOR_DELIVERY DELIVERED"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type assignPartnerRequest struct {
	PartnerID string `json:"partner_id" validate:"required"`
}

type forceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PICKED_UP IN_TRANSIT OUT_FOR_DELIVERY DELIVERED CANCELLED RETURNED"`
	Reason string `json:"reason" validate:"required"`
}

// --- Response types ---
//
// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type shipmentLinks struct {
	Self  string `json:"self"`
	Track string `json:"track"`
}

type bookingResponse struct {
	ShipmentID   string        `json:"shipment_id"`
	TrackingCode string        `json:"tracking_code"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	Links        shipmentLinks `json:"_links"`
}

type addressResponse struct {
	Type         string `json:"type"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

type itemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	WeightKg    float64 `json:"weight_kg,omitempty"`
	LengthCm    float64 `json:"length_cm,omitempty"`
	WidthCm     float64 `json:"width_cm,omitempty"`
	HeightCm    float64 `json:"height_cm,omitempty"`
}

type eventResponse struct {
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	PartnerID   string    `json:"partner_id,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	PickupDate  string    `json:"pickup_date,omitempty"`
	PickupSlot  string    `json:"pickup_slot,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type shipmentDetailResponse struct {
	ID                string            `json:"id"`
	TrackingCode      string            `json:"tracking_code"`
	OwnerID           string            `json:"owner_id"`
	Status            string            `json:"status"`
	TotalWeightKg     float64           `json:"total_weight_kg,omitempty"`
	AssignedPartnerID string            `json:"assigned_partner_id,omitempty"`
	Addresses         []addressResponse `json:"addresses"`
	Items             []itemResponse    `json:"items"`
	Events            []eventResponse   `json:"events"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type shipmentSummaryResponse struct {
	ID                string    `json:"id"`
	TrackingCode      string    `json:"tracking_code"`
	OwnerID           string    `json:"owner_id"`
	Status            string    `json:"status"`
	AssignedPartnerID string    `json:"assigned_partner_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type listShipmentsResponse struct {
	Items []shipmentSummaryResponse `json:"items"`
	Count int                       `json:"count"`
}

type scanResponse struct {
	TrackingCode string `json:"tracking_code"`
	Status       string `json:"status"`
}

// --- Mappers ---

func toAddressInput(r addressRequest) ports.AddressInput {
	return ports.AddressInput{
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Country:      r.Country,
	}
}

func toItemInputs(reqs []itemRequest) []ports.ItemInput {
	items := make([]ports.ItemInput, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, ports.ItemInput{
			Description: r.Description,
			Quantity:    r.Quantity,
			WeightKg:    r.WeightKg,
			LengthCm:    r.LengthCm,
			WidthCm:     r.WidthCm,
			HeightCm:    r.HeightCm,
		})
	}
	return items
}

func toEventResponses(events []domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			Kind:        string(e.Kind),
			Status:      string(e.Status),
			PartnerID:   e.PartnerID,
			Reason:      e.Reason,
			PickupDate:  e.PickupDate,
			PickupSlot:  e.PickupSlot,
			Description: e.Description,
			Location:    e.Location,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

func toDetailResponse(agg *ports.ShipmentAggregate) shipmentDetailResponse {
	addresses := make([]addressResponse, 0, len(agg.Addresses))
	for _, a := range agg.Addresses {
		addresses = append(addresses, addressResponse{
			Type:         string(a.Type),
			ContactName:  a.ContactName,
			ContactPhone: a.ContactPhone,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			City:         a.City,
			State:        a.State,
			Pincode:      a.Pincode,
			Country:      a.Country,
		})
	}
	items := make([]itemResponse, 0, len(agg.Items))
	for _, it := range agg.Items {
		items = append(items, itemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			WeightKg:    it.WeightKg,
			LengthCm:    it.LengthCm,
			WidthCm:     it.WidthCm,
			HeightCm:    it.HeightCm,
		})
	}

	return shipmentDetailResponse{
		ID:                agg.Shipment.ID,
		TrackingCode:      agg.Shipment.TrackingCode,
		OwnerID:           agg.Shipment.OwnerID,
		Status:            string(agg.Shipment.Status),
		TotalWeightKg:     agg.Shipment.TotalWeightKg,
		AssignedPartnerID: agg.AssignedPartnerID,
		Addresses:         addresses,
		Items:             items,
		Events:            toEventResponses(agg.Events),
		CreatedAt:         agg.Shipment.CreatedAt,
		UpdatedAt:         agg.Shipment.UpdatedAt,
	}
}
