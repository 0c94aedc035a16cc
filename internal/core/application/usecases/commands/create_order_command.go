package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new shipment order
// for a customer: the distance to cover, the cargo weight, and the two rates
// the pricing engine will later multiply them by.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID,
//	    decimal.NewFromInt(10), decimal.NewFromInt(60),
//	    decimal.NewFromInt(2), decimal.NewFromInt(1))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	distance        decimal.Decimal
	cargoWeight     decimal.Decimal
	ratePerDistance decimal.Decimal
	ratePerWeight   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// All four numeric figures must be strictly positive.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	distance, cargoWeight, ratePerDistance, ratePerWeight decimal.Decimal,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setFigure(&orderCommand.distance, "distance", distance),
		orderCommand.setFigure(&orderCommand.cargoWeight, "cargoWeight", cargoWeight),
		orderCommand.setFigure(&orderCommand.ratePerDistance, "perDistanceRate", ratePerDistance),
		orderCommand.setFigure(&orderCommand.ratePerWeight, "perWeightRate", ratePerWeight),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the owning customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Distance returns the shipment distance.
func (c CreateOrderCommand) Distance() decimal.Decimal {
	return c.distance
}

// CargoWeight returns the cargo weight.
func (c CreateOrderCommand) CargoWeight() decimal.Decimal {
	return c.cargoWeight
}

// RatePerDistance returns the cost rate per unit of distance.
func (c CreateOrderCommand) RatePerDistance() decimal.Decimal {
	return c.ratePerDistance
}

// RatePerWeight returns the cost rate per unit of weight.
func (c CreateOrderCommand) RatePerWeight() decimal.Decimal {
	return c.ratePerWeight
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setFigure(target *decimal.Decimal, paramName string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return errs.NewValueIsOutOfRangeError(paramName, value.String(), "0 exclusive", "unbounded")
	}

	*target = value
	return nil
}
