package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a request to change an order's shipment
// figures. Either field may be nil to keep the persisted value, but at least
// one must be supplied.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	distance    *decimal.Decimal
	cargoWeight *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update an order's shipment figures.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	distance, cargoWeight *decimal.Decimal,
) (UpdateOrderCommand, error) {
	orderCommand := UpdateOrderCommand{
		distance:    distance,
		cargoWeight: cargoWeight,
		guard:       guard.NewConstructorGuard(),
	}

	if err := orderCommand.setOrderID(orderID); err != nil {
		return UpdateOrderCommand{}, err
	}

	if distance == nil && cargoWeight == nil {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("distance or cargoWeight")
	}
	if distance != nil && !distance.IsPositive() {
		return UpdateOrderCommand{}, errs.NewValueIsOutOfRangeError(
			"distance", distance.String(), "0 exclusive", "unbounded")
	}
	if cargoWeight != nil && !cargoWeight.IsPositive() {
		return UpdateOrderCommand{}, errs.NewValueIsOutOfRangeError(
			"cargoWeight", cargoWeight.String(), "0 exclusive", "unbounded")
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Distance returns the new distance, or nil to keep the persisted one.
func (c UpdateOrderCommand) Distance() *decimal.Decimal {
	return c.distance
}

// CargoWeight returns the new cargo weight, or nil to keep the persisted one.
func (c UpdateOrderCommand) CargoWeight() *decimal.Decimal {
	return c.cargoWeight
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
