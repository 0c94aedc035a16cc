package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owningOrder := storedOrder(t) // 10 distance, 60 weight, rates 2 and 1
	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(deliveryID, owningOrder.ID(), delivery.UrgencyUrgent)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		orderRepo.On("Get", ctx, owningOrder.ID()).Return(owningOrder, nil).Once(),
		deliveryRepo.On("ExistsForOrder", ctx, owningOrder.ID()).Return(false, nil).Once(),
		deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.StatusInTransit, created.Status())
	require.True(t, created.ID().IsEqual(deliveryID))

	cost := created.Cost()
	require.True(t, cost.DistanceCost.Equal(decimal.NewFromInt(20)), "distance cost: %s", cost.DistanceCost)
	require.True(t, cost.WeightCost.Equal(decimal.NewFromInt(60)), "weight cost: %s", cost.WeightCost)
	require.True(t, cost.Surcharge.Equal(decimal.NewFromInt(16)), "surcharge: %s", cost.Surcharge)
	require.True(t, cost.Discount.IsZero(), "discount: %s", cost.Discount)
	require.True(t, cost.ExtraFee.Equal(decimal.NewFromInt(15)), "extra fee: %s", cost.ExtraFee)
	require.True(t, cost.FinalCost.Equal(decimal.NewFromInt(111)), "final cost: %s", cost.FinalCost)

	orderRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), orderID, delivery.UrgencyNormal)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	deliveryRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateDeliveryCommandHandler_Handle_OrderAlreadyHasDelivery(t *testing.T) {
	ctx := t.Context()
	owningOrder := storedOrder(t)
	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), owningOrder.ID(), delivery.UrgencyNormal)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		orderRepo.On("Get", ctx, owningOrder.ID()).Return(owningOrder, nil).Once(),
		deliveryRepo.On("ExistsForOrder", ctx, owningOrder.ID()).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderAlreadyHasDelivery)
	deliveryRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateDeliveryCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), kernel.NewUUID(), delivery.UrgencyUnknown)
	require.Error(t, err)
}
