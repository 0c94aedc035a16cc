package commands

import (
	"context"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// CreateCustomerCommandHandler handles the business logic for customer creation.
// Resolves every submitted postal code before the transaction opens, then
// persists the customer with its phones and addresses atomically.
type CreateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
	lookup     ports.PostalLookup
}

// NewCreateCustomerCommandHandler creates a handler for customer creation operations.
func NewCreateCustomerCommandHandler(
	uowFactory CustomerUoWFactory,
	lookup ports.PostalLookup,
) CreateCustomerCommandHandler {
	return CreateCustomerCommandHandler{
		uowFactory: uowFactory,
		lookup:     lookup,
	}
}

// Handle processes the customer creation command.
// Postal resolution and the uniqueness pre-checks are advisory fast paths;
// the database unique indexes remain authoritative.
func (h CreateCustomerCommandHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	addressSubmissions, err := resolveAddressInputs(ctx, h.lookup, cmd.Addresses())
	if err != nil {
		return err
	}

	phones := make([]*customer.Phone, 0, len(cmd.Phones()))
	for _, input := range cmd.Phones() {
		phone, err := customer.NewPhone(kernel.NewUUID(), input.Number)
		if err != nil {
			return err
		}
		phones = append(phones, phone)
	}

	addresses := make([]*customer.Address, 0, len(addressSubmissions))
	for _, sub := range addressSubmissions {
		address, err := customer.NewAddress(
			kernel.NewUUID(),
			sub.Street, sub.Number, sub.District, sub.Complement, sub.City, sub.State,
			sub.PostalCode,
			sub.ExternalRef,
		)
		if err != nil {
			return err
		}
		addresses = append(addresses, address)
	}

	aggregate, err := customer.NewCustomer(
		cmd.CustomerID(), cmd.Name(), cmd.TaxID(), cmd.Email(), phones, addresses,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	// A repository acquired before Begin is bound to the bare connection,
	// keeping the advisory pre-check outside the write transaction.
	taxID, email := aggregate.TaxID(), aggregate.Email()
	numbers := make([]string, 0, len(aggregate.Phones()))
	for _, phone := range aggregate.Phones() {
		numbers = append(numbers, phone.Number())
	}
	if err = checkCustomerUniqueness(
		ctx, uow.CustomerRepository(), aggregate.ID(), &taxID, &email, numbers,
	); err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CustomerRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// checkCustomerUniqueness runs the advisory uniqueness pre-check over the
// submitted values. Nil scalars are not being changed and are skipped. The
// database unique indexes remain authoritative.
func checkCustomerUniqueness(
	ctx context.Context,
	repo ports.CustomerRepository,
	excludeID kernel.UUID,
	taxID, email *string,
	phoneNumbers []string,
) error {
	if taxID != nil {
		taken, err := repo.ExistsWithTaxID(ctx, *taxID, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return errs.NewValueIsDuplicatedError("taxId", *taxID)
		}
	}

	if email != nil {
		taken, err := repo.ExistsWithEmail(ctx, *email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return errs.NewValueIsDuplicatedError("email", *email)
		}
	}

	for _, number := range phoneNumbers {
		taken, err := repo.ExistsWithPhoneNumber(ctx, number, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return errs.NewValueIsDuplicatedError("phoneNumber", number)
		}
	}

	return nil
}
