package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// UpdateOrderCommandHandler handles shipment figure changes on an order.
// An order whose delivery is already on the road (or delivered) is frozen.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
func NewUpdateOrderCommandHandler(uowFactory UoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order update command. It reports whether the stored
// figures actually changed, so callers can distinguish a real update from a
// submission equal to the persisted state.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if err = ensureOrderIsMutable(ctx, uow.DeliveryRepository(), aggregate.ID()); err != nil {
		return false, err
	}

	changed, err := aggregate.ChangeShipment(cmd.Distance(), cmd.CargoWeight())
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// ensureOrderIsMutable enforces the delivery-state guard: an order with a
// delivery in transit or already delivered cannot be changed or removed.
// A cancelled or still-calculating delivery does not freeze the order.
func ensureOrderIsMutable(
	ctx context.Context,
	deliveryRepo ports.DeliveryRepository,
	orderID kernel.UUID,
) error {
	attached, err := deliveryRepo.GetByOrderID(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if attached.Status().BlocksOrderMutation() {
		return errs.NewOperationIsForbiddenErrorWithCause(
			"mutate order",
			fmt.Errorf("delivery %s is %s", attached.ID(), attached.Status()),
		)
	}

	return nil
}
