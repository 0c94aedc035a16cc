package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrRecalculateDeliveryCommandIsNotConstructed = errors.New(
	"RecalculateDeliveryCommand must be created via NewRecalculateDeliveryCommand constructor",
)

// RecalculateDeliveryCommand represents a request to re-run the pricing
// engine over a delivery's owning order and overwrite the stored breakdown.
type RecalculateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecalculateDeliveryCommand creates a command to reprice a delivery.
func NewRecalculateDeliveryCommand(deliveryID kernel.UUID) (RecalculateDeliveryCommand, error) {
	deliveryCommand := RecalculateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := deliveryCommand.setDeliveryID(deliveryID); err != nil {
		return RecalculateDeliveryCommand{}, err
	}

	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecalculateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to reprice.
func (c RecalculateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *RecalculateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
