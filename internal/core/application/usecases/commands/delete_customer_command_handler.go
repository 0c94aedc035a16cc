package commands

import (
	"context"
	"errors"
)

// ErrCustomerHasOrders is returned when deletion is attempted on a customer
// that still owns orders. The orders must be deleted first.
var ErrCustomerHasOrders = errors.New("customer has orders")

// DeleteCustomerCommandHandler handles customer deletion. A customer that
// still owns orders cannot be removed; the pre-check surfaces a conflict and
// the foreign key constraint backs it up.
type DeleteCustomerCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteCustomerCommandHandler creates a handler for customer deletion operations.
func NewDeleteCustomerCommandHandler(uowFactory UoWFactory) DeleteCustomerCommandHandler {
	return DeleteCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the customer deletion command. Phones, addresses and the
// customer row go away in one transaction.
func (h DeleteCustomerCommandHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
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

	customerRepo := uow.CustomerRepository()
	orderRepo := uow.OrderRepository()

	aggregate, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	hasOrders, err := orderRepo.ExistsForCustomer(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if hasOrders {
		return ErrCustomerHasOrders
	}

	if err = customerRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
