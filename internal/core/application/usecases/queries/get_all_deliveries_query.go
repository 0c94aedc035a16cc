package queries

import (
	"errors"

	"github.com/shopspring/decimal"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetAllDeliveriesQueryIsNotConstructed = errors.New(
	"GetAllDeliveriesQuery must be created via NewGetAllDeliveriesQuery constructor",
)

// GetAllDeliveriesQuery retrieves every delivery joined with the shipment
// figures of its owning order, so a reader sees the pricing inputs next to
// the computed breakdown.
type GetAllDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDeliveriesQuery creates a query to retrieve all deliveries.
func NewGetAllDeliveriesQuery() GetAllDeliveriesQuery {
	return GetAllDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDeliveriesQueryIsNotConstructed)
}

// GetAllDeliveriesQueryResponse is one delivery with its cost breakdown and
// the order figures the breakdown was computed from.
type GetAllDeliveriesQueryResponse struct {
	ID      kernel.UUID
	OrderID kernel.UUID
	Urgency string
	Status  string

	DistanceCost decimal.Decimal
	WeightCost   decimal.Decimal
	Surcharge    decimal.Decimal
	Discount     decimal.Decimal
	ExtraFee     decimal.Decimal
	FinalCost    decimal.Decimal

	Distance        decimal.Decimal
	CargoWeight     decimal.Decimal
	RatePerDistance decimal.Decimal
	RatePerWeight   decimal.Decimal
}
