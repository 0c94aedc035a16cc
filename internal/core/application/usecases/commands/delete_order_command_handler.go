package commands

import (
	"context"
	"errors"

	"logistics/internal/pkg/errs"
)

// DeleteOrderCommandHandler handles order deletion. The delivery-state guard
// applies first; a deletable order takes its delivery down with it so the
// foreign key never blocks the removal.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion operations.
func NewDeleteOrderCommandHandler(uowFactory UoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order deletion command.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ensureOrderIsMutable(ctx, deliveryRepo, aggregate.ID()); err != nil {
		return err
	}

	attached, err := deliveryRepo.GetByOrderID(ctx, aggregate.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// nothing to cascade
	case err != nil:
		return err
	default:
		if err = deliveryRepo.Delete(ctx, attached.ID()); err != nil {
			return err
		}
	}

	if err = orderRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
