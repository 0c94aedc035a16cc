package commands

import (
	"context"
)

// ChangeDeliveryStatusCommandHandler handles delivery status transitions.
// Requesting the current status again is a permitted no-op; illegal
// transitions come back from the domain as invalid-value errors with the
// delivery untouched.
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewChangeDeliveryStatusCommandHandler creates a handler for status change operations.
func NewChangeDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
func (h ChangeDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd ChangeDeliveryStatusCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.Target()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
