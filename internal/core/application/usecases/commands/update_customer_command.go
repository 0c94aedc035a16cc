package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateCustomerCommandIsNotConstructed = errors.New(
	"UpdateCustomerCommand must be created via NewUpdateCustomerCommand constructor",
)

// UpdateCustomerCommand represents a partial update of a customer: any subset
// of the scalar fields plus submitted phone and address collections. A nil
// scalar keeps the persisted value. At least one field must be supplied.
type UpdateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	name       *string
	taxID      *string
	email      *string
	phones     []PhoneInput
	addresses  []AddressInput

	// hasChildren distinguishes "no phones key in the payload" from an
	// intentionally empty submitted set, which under the replace-all policy
	// clears the collection.
	hasPhones    bool
	hasAddresses bool

	guard guard.ConstructorGuard
}

// NewUpdateCustomerCommand creates a command to update a customer.
// The hasPhones/hasAddresses flags report whether the caller supplied the
// respective collection at all.
func NewUpdateCustomerCommand(
	customerID kernel.UUID,
	name, taxID, email *string,
	phones []PhoneInput, hasPhones bool,
	addresses []AddressInput, hasAddresses bool,
) (UpdateCustomerCommand, error) {
	customerCommand := UpdateCustomerCommand{
		name:         name,
		taxID:        taxID,
		email:        email,
		phones:       phones,
		addresses:    addresses,
		hasPhones:    hasPhones,
		hasAddresses: hasAddresses,
		guard:        guard.NewConstructorGuard(),
	}

	if err := customerCommand.setCustomerID(customerID); err != nil {
		return UpdateCustomerCommand{}, err
	}

	if name == nil && taxID == nil && email == nil && !hasPhones && !hasAddresses {
		return UpdateCustomerCommand{}, errs.NewValueIsRequiredError("at least one field to update")
	}
	if name != nil && *name == "" {
		return UpdateCustomerCommand{}, errs.NewValueIsRequiredError("name")
	}
	if taxID != nil && *taxID == "" {
		return UpdateCustomerCommand{}, errs.NewValueIsRequiredError("taxId")
	}
	if email != nil && *email == "" {
		return UpdateCustomerCommand{}, errs.NewValueIsRequiredError("email")
	}
	for _, address := range addresses {
		if address.Remove {
			continue
		}
		if err := address.PostalCode.Validate(); err != nil {
			return UpdateCustomerCommand{}, err
		}
	}

	return customerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerCommandIsNotConstructed)
}

// CustomerID returns the identifier of the customer to update.
func (c UpdateCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Name returns the new name, or nil to keep the persisted one.
func (c UpdateCustomerCommand) Name() *string {
	return c.name
}

// TaxID returns the new tax identifier, or nil to keep the persisted one.
func (c UpdateCustomerCommand) TaxID() *string {
	return c.taxID
}

// Email returns the new email address, or nil to keep the persisted one.
func (c UpdateCustomerCommand) Email() *string {
	return c.email
}

// Phones returns the submitted phone inputs.
func (c UpdateCustomerCommand) Phones() []PhoneInput {
	return c.phones
}

// HasPhones reports whether the caller supplied a phone collection.
func (c UpdateCustomerCommand) HasPhones() bool {
	return c.hasPhones
}

// Addresses returns the submitted address inputs.
func (c UpdateCustomerCommand) Addresses() []AddressInput {
	return c.addresses
}

// HasAddresses reports whether the caller supplied an address collection.
func (c UpdateCustomerCommand) HasAddresses() bool {
	return c.hasAddresses
}

func (c *UpdateCustomerCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
