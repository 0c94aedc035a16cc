package order

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a logistics order. It holds the pricing
// inputs of a shipment and a reference to the owning customer.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer reference
//   - Distance, cargo weight and both rates must be strictly positive
//   - Inputs may not be mutated while the order's delivery is in a
//     blocking status (guarded by the command handlers)
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	distance        decimal.Decimal
	cargoWeight     decimal.Decimal
	ratePerDistance decimal.Decimal
	ratePerWeight   decimal.Decimal
	isConstructed   bool
}

// NewOrder creates a new Order aggregate with validated inputs.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	distance, cargoWeight, ratePerDistance, ratePerWeight decimal.Decimal,
) (*Order, error) {
	order := &Order{isConstructed: true}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setDistance(distance),
		order.setCargoWeight(cargoWeight),
		order.setRatePerDistance(ratePerDistance),
		order.setRatePerWeight(ratePerWeight),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence.
// It applies the same validation as NewOrder.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	distance, cargoWeight, ratePerDistance, ratePerWeight decimal.Decimal,
) (*Order, error) {
	return NewOrder(id, customerID, distance, cargoWeight, ratePerDistance, ratePerWeight)
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Distance returns the shipment distance.
func (o *Order) Distance() decimal.Decimal {
	return o.distance
}

// CargoWeight returns the cargo weight.
func (o *Order) CargoWeight() decimal.Decimal {
	return o.cargoWeight
}

// RatePerDistance returns the per-distance-unit rate.
func (o *Order) RatePerDistance() decimal.Decimal {
	return o.ratePerDistance
}

// RatePerWeight returns the per-weight-unit rate.
func (o *Order) RatePerWeight() decimal.Decimal {
	return o.ratePerWeight
}

// ChangeShipment overwrites distance and/or cargo weight. A nil pointer keeps
// the current value. Returns whether any stored value actually changed, so
// callers can distinguish a no-op update from a real one.
func (o *Order) ChangeShipment(distance, cargoWeight *decimal.Decimal) (bool, error) {
	changed := false

	if distance != nil && !distance.Equal(o.distance) {
		if err := o.setDistance(*distance); err != nil {
			return false, err
		}
		changed = true
	}

	if cargoWeight != nil && !cargoWeight.Equal(o.cargoWeight) {
		if err := o.setCargoWeight(*cargoWeight); err != nil {
			return false, err
		}
		changed = true
	}

	return changed, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDistance(distance decimal.Decimal) error {
	if err := requirePositive("distance", distance); err != nil {
		return err
	}
	o.distance = distance
	return nil
}

func (o *Order) setCargoWeight(cargoWeight decimal.Decimal) error {
	if err := requirePositive("cargoWeight", cargoWeight); err != nil {
		return err
	}
	o.cargoWeight = cargoWeight
	return nil
}

func (o *Order) setRatePerDistance(rate decimal.Decimal) error {
	if err := requirePositive("perDistanceRate", rate); err != nil {
		return err
	}
	o.ratePerDistance = rate
	return nil
}

func (o *Order) setRatePerWeight(rate decimal.Decimal) error {
	if err := requirePositive("perWeightRate", rate); err != nil {
		return err
	}
	o.ratePerWeight = rate
	return nil
}

func requirePositive(paramName string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%s is not greater than 0", value))
	}
	return nil
}
