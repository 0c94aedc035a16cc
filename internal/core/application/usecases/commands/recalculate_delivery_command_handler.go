package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
)

// RecalculateDeliveryCommandHandler re-runs pricing over the owning order's
// current figures. Repricing keeps an in-transit delivery in transit and is
// the only path that moves a stuck calculating delivery forward; terminal
// deliveries reject it.
type RecalculateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.PricingEngine
}

// NewRecalculateDeliveryCommandHandler creates a handler for repricing operations.
func NewRecalculateDeliveryCommandHandler(uowFactory UoWFactory) RecalculateDeliveryCommandHandler {
	return RecalculateDeliveryCommandHandler{
		uowFactory: uowFactory,
		pricing:    services.NewPricingEngine(),
	}
}

// Handle processes the repricing command and returns the delivery with its
// refreshed breakdown.
func (h RecalculateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd RecalculateDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	owningOrder, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, err
	}

	cost, err := h.pricing.Price(owningOrder, aggregate.Urgency())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ApplyPricing(cost); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
