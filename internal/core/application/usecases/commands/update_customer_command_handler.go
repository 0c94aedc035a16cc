package commands

import (
	"context"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// UpdateCustomerCommandHandler handles partial customer updates, including
// reconciliation of the phone and address collections under the configured
// policy. Postal codes of submitted addresses are resolved before the
// transaction opens.
type UpdateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
	lookup     ports.PostalLookup
	policy     customer.ReconcilePolicy
}

// NewUpdateCustomerCommandHandler creates a handler for customer update operations.
// The reconcile policy is fixed at composition time and applied identically to
// phones and addresses.
func NewUpdateCustomerCommandHandler(
	uowFactory CustomerUoWFactory,
	lookup ports.PostalLookup,
	policy customer.ReconcilePolicy,
) (UpdateCustomerCommandHandler, error) {
	if err := policy.Validate(); err != nil {
		return UpdateCustomerCommandHandler{}, err
	}

	return UpdateCustomerCommandHandler{
		uowFactory: uowFactory,
		lookup:     lookup,
		policy:     policy,
	}, nil
}

// Handle processes the customer update command. Scalar changes, phone
// reconciliation and address reconciliation are applied in one transaction;
// any failure rolls back all of it.
func (h UpdateCustomerCommandHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	addressSubmissions, err := resolveAddressInputs(ctx, h.lookup, cmd.Addresses())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	// Pre-check the changed values on the bare connection before any
	// transaction opens; only submitted fields are checked.
	var numbers []string
	for _, input := range cmd.Phones() {
		if !input.Remove {
			numbers = append(numbers, input.Number)
		}
	}
	if err = checkCustomerUniqueness(
		ctx, uow.CustomerRepository(), cmd.CustomerID(), cmd.TaxID(), cmd.Email(), numbers,
	); err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()

	aggregate, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = applyScalarChanges(aggregate, cmd); err != nil {
		return err
	}

	var phoneChanges customer.PhoneChanges
	if cmd.HasPhones() {
		phoneChanges, err = aggregate.ReconcilePhones(h.policy, phoneSubmissions(cmd.Phones()))
		if err != nil {
			return err
		}
	}

	var addressChanges customer.AddressChanges
	if cmd.HasAddresses() {
		addressChanges, err = aggregate.ReconcileAddresses(h.policy, addressSubmissions)
		if err != nil {
			return err
		}
	}

	if err = customerRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if !phoneChanges.IsEmpty() {
		if err = customerRepo.ApplyPhoneChanges(ctx, aggregate.ID(), phoneChanges); err != nil {
			return err
		}
	}
	if !addressChanges.IsEmpty() {
		if err = customerRepo.ApplyAddressChanges(ctx, aggregate.ID(), addressChanges); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func applyScalarChanges(aggregate *customer.Customer, cmd UpdateCustomerCommand) error {
	if cmd.Name() != nil {
		if err := aggregate.ChangeName(*cmd.Name()); err != nil {
			return err
		}
	}
	if cmd.TaxID() != nil {
		if err := aggregate.ChangeTaxID(*cmd.TaxID()); err != nil {
			return err
		}
	}
	if cmd.Email() != nil {
		if err := aggregate.ChangeEmail(*cmd.Email()); err != nil {
			return err
		}
	}
	if err := aggregate.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer", err)
	}
	return nil
}
