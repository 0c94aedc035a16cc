package services

import (
	"github.com/shopspring/decimal"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/order"
)

var (
	urgencySurchargeRate = decimal.RequireFromString("0.20")
	volumeDiscountRate   = decimal.RequireFromString("0.10")
	volumeDiscountFloor  = decimal.RequireFromString("500.00")
	heavyCargoFee        = decimal.RequireFromString("15.00")
	heavyCargoThreshold  = decimal.RequireFromString("50.00")
)

// PricingEngine is a domain service that computes the full cost breakdown of a
// delivery from its order's shipment figures.
//
// The calculation is a fixed sequence:
//  1. distance cost: distance times the order's per-distance rate
//  2. weight cost: cargo weight times the order's per-weight rate
//  3. urgency surcharge: 20% of the base, urgent deliveries only
//  4. volume discount: 10% of the surcharged total, only when that total
//     strictly exceeds 500.00
//  5. heavy cargo fee: flat 15.00 when cargo weight exceeds 50.00
//
// The discount is taken on the surcharged total, and the heavy cargo fee is
// added after the discount so it is never discounted itself. Every figure in
// the returned breakdown is rounded to two decimal places.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Price computes the cost breakdown for ord shipped with the given urgency.
func (PricingEngine) Price(ord *order.Order, urgency delivery.Urgency) (delivery.CostBreakdown, error) {
	if err := ord.Validate(); err != nil {
		return delivery.CostBreakdown{}, err
	}
	if err := urgency.Validate(); err != nil {
		return delivery.CostBreakdown{}, err
	}

	distanceCost := ord.Distance().Mul(ord.RatePerDistance())
	weightCost := ord.CargoWeight().Mul(ord.RatePerWeight())
	base := distanceCost.Add(weightCost)

	surcharge := decimal.Zero
	if urgency.IsUrgent() {
		surcharge = base.Mul(urgencySurchargeRate)
	}
	withSurcharge := base.Add(surcharge)

	discount := decimal.Zero
	if withSurcharge.GreaterThan(volumeDiscountFloor) {
		discount = withSurcharge.Mul(volumeDiscountRate)
	}

	extraFee := decimal.Zero
	if ord.CargoWeight().GreaterThan(heavyCargoThreshold) {
		extraFee = heavyCargoFee
	}

	finalCost := withSurcharge.Sub(discount).Add(extraFee)

	return delivery.CostBreakdown{
		DistanceCost: distanceCost.Round(2),
		WeightCost:   weightCost.Round(2),
		Surcharge:    surcharge.Round(2),
		Discount:     discount.Round(2),
		ExtraFee:     extraFee.Round(2),
		FinalCost:    finalCost.Round(2),
	}, nil
}
