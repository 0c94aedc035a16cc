package http

import (
	"logistics/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// Error is the body returned for every failed request.
type Error struct {
	Message      string `json:"message"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// PhonePayload is one phone entry in a customer request. ID and Remove are
// only meaningful on updates.
type PhonePayload struct {
	ID     *string `json:"id,omitempty"`
	Number string  `json:"number"`
	Remove bool    `json:"remove,omitempty"`
}

// AddressPayload is one address entry in a customer request. Street, district,
// city and state are never accepted from the caller; they are resolved from
// the postal code.
type AddressPayload struct {
	ID         *string `json:"id,omitempty"`
	PostalCode string  `json:"postalCode"`
	Number     string  `json:"number"`
	Complement string  `json:"complement,omitempty"`
	Remove     bool    `json:"remove,omitempty"`
}

// CreateCustomerRequest is the body of POST /customers.
type CreateCustomerRequest struct {
	Name      string           `json:"name"`
	TaxID     string           `json:"taxId"`
	Email     string           `json:"email"`
	Phones    []PhonePayload   `json:"phones"`
	Addresses []AddressPayload `json:"addresses"`
}

// UpdateCustomerRequest is the body of PUT /customers/{id}. Nil fields keep
// the persisted value; a present but empty child collection clears it under
// the replace-all policy.
type UpdateCustomerRequest struct {
	Name      *string           `json:"name"`
	TaxID     *string           `json:"taxId"`
	Email     *string           `json:"email"`
	Phones    *[]PhonePayload   `json:"phones"`
	Addresses *[]AddressPayload `json:"addresses"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerID      string          `json:"customerId"`
	Distance        decimal.Decimal `json:"distance"`
	CargoWeight     decimal.Decimal `json:"cargoWeight"`
	RatePerDistance decimal.Decimal `json:"ratePerDistance"`
	RatePerWeight   decimal.Decimal `json:"ratePerWeight"`
}

// UpdateOrderRequest is the body of PUT /orders/{id}. At least one field
// must be present.
type UpdateOrderRequest struct {
	Distance    *decimal.Decimal `json:"distance"`
	CargoWeight *decimal.Decimal `json:"cargoWeight"`
}

// CreateDeliveryRequest is the body of POST /deliveries.
type CreateDeliveryRequest struct {
	OrderID string `json:"orderId"`
	Urgency string `json:"urgency"`
}

// ChangeDeliveryStatusRequest is the body of PUT /deliveries/{id}.
type ChangeDeliveryStatusRequest struct {
	Status string `json:"status"`
}

// CustomerRow is one row of the flattened customer listing. Phone and
// address fields are absent for customers without the corresponding child.
type CustomerRow struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	TaxID      string `json:"taxId"`
	Email      string `json:"email"`

	PhoneID     *string `json:"phoneId,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`

	AddressID   *string `json:"addressId,omitempty"`
	Street      *string `json:"street,omitempty"`
	Number      *string `json:"number,omitempty"`
	District    *string `json:"district,omitempty"`
	Complement  *string `json:"complement,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	PostalCode  *string `json:"postalCode,omitempty"`
	ExternalRef *string `json:"externalRef,omitempty"`
}

// OrderResponse is one order in the listing.
type OrderResponse struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	Distance        decimal.Decimal `json:"distance"`
	CargoWeight     decimal.Decimal `json:"cargoWeight"`
	RatePerDistance decimal.Decimal `json:"ratePerDistance"`
	RatePerWeight   decimal.Decimal `json:"ratePerWeight"`
}

// DeliveryResponse is a delivery with its cost breakdown and the order
// figures the breakdown was computed from.
type DeliveryResponse struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`
	Urgency string `json:"urgency"`
	Status  string `json:"status"`

	DistanceCost decimal.Decimal `json:"distanceCost"`
	WeightCost   decimal.Decimal `json:"weightCost"`
	Surcharge    decimal.Decimal `json:"surcharge"`
	Discount     decimal.Decimal `json:"discount"`
	ExtraFee     decimal.Decimal `json:"extraFee"`
	FinalCost    decimal.Decimal `json:"finalCost"`

	Distance        decimal.Decimal `json:"distance"`
	CargoWeight     decimal.Decimal `json:"cargoWeight"`
	RatePerDistance decimal.Decimal `json:"ratePerDistance"`
	RatePerWeight   decimal.Decimal `json:"ratePerWeight"`
}

// StatusSummaryRow is one status with its delivery count.
type StatusSummaryRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func customerRowFromQuery(row queries.GetAllCustomersQueryResponse) CustomerRow {
	out := CustomerRow{
		CustomerID:  row.CustomerID.String(),
		Name:        row.Name,
		TaxID:       row.TaxID,
		Email:       row.Email,
		PhoneNumber: row.PhoneNumber,
		Street:      row.Street,
		Number:      row.Number,
		District:    row.District,
		Complement:  row.Complement,
		City:        row.City,
		State:       row.State,
		PostalCode:  row.PostalCode,
		ExternalRef: row.ExternalRef,
	}

	if row.PhoneID != nil {
		phoneID := row.PhoneID.String()
		out.PhoneID = &phoneID
	}
	if row.AddressID != nil {
		addressID := row.AddressID.String()
		out.AddressID = &addressID
	}

	return out
}

func deliveryResponseFromQuery(row queries.GetAllDeliveriesQueryResponse) DeliveryResponse {
	return DeliveryResponse{
		ID:              row.ID.String(),
		OrderID:         row.OrderID.String(),
		Urgency:         row.Urgency,
		Status:          row.Status,
		DistanceCost:    row.DistanceCost,
		WeightCost:      row.WeightCost,
		Surcharge:       row.Surcharge,
		Discount:        row.Discount,
		ExtraFee:        row.ExtraFee,
		FinalCost:       row.FinalCost,
		Distance:        row.Distance,
		CargoWeight:     row.CargoWeight,
		RatePerDistance: row.RatePerDistance,
		RatePerWeight:   row.RatePerWeight,
	}
}
