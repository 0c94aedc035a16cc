package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
)

// ErrOrderAlreadyHasDelivery is returned when a delivery is requested for an
// order that already has one. Each order carries at most one delivery.
var ErrOrderAlreadyHasDelivery = errors.New("order already has a delivery")

// CreateDeliveryCommandHandler handles delivery creation. In one transaction
// it creates the delivery in calculating state, runs the pricing engine over
// the owning order's figures, stores the breakdown and moves the delivery to
// in transit.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.PricingEngine
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation operations.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		pricing:    services.NewPricingEngine(),
	}
}

// Handle processes the delivery creation command and returns the priced
// delivery as persisted.
func (h CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
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

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	owningOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	taken, err := deliveryRepo.ExistsForOrder(ctx, owningOrder.ID())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrOrderAlreadyHasDelivery
	}

	aggregate, err := delivery.NewDelivery(cmd.DeliveryID(), owningOrder.ID(), cmd.Urgency())
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

	if err = deliveryRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
