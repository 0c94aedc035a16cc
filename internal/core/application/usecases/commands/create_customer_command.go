package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand represents a request to register a new customer with
// its initial phone and address collections.
//
// Example:
//
//	customerID := kernel.NewUUID()
//	cmd, err := NewCreateCustomerCommand(customerID, "Maria Souza", "12345678901",
//	    "maria@example.com", phones, addresses)
//	if err != nil {
//	    return fmt.Errorf("invalid customer data: %w", err)
//	}
//
//	handler := NewCreateCustomerCommandHandler(uowFactory, lookup)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create customer: %w", err)
//	}
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	name       string
	taxID      string
	email      string
	phones     []PhoneInput
	addresses  []AddressInput

	guard guard.ConstructorGuard
}

// NewCreateCustomerCommand creates a command to register a new customer.
// All scalar fields are required; the child inputs may be empty but must not
// carry identifiers or removal markers.
func NewCreateCustomerCommand(
	customerID kernel.UUID,
	name, taxID, email string,
	phones []PhoneInput,
	addresses []AddressInput,
) (CreateCustomerCommand, error) {
	customerCommand := CreateCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customerCommand.setCustomerID(customerID),
		customerCommand.setName(name),
		customerCommand.setTaxID(taxID),
		customerCommand.setEmail(email),
		customerCommand.setPhones(phones),
		customerCommand.setAddresses(addresses),
	); err != nil {
		return CreateCustomerCommand{}, err
	}

	return customerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

// CustomerID returns the unique identifier for the customer.
func (c CreateCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Name returns the customer's name.
func (c CreateCustomerCommand) Name() string {
	return c.name
}

// TaxID returns the customer's tax identifier.
func (c CreateCustomerCommand) TaxID() string {
	return c.taxID
}

// Email returns the customer's email address.
func (c CreateCustomerCommand) Email() string {
	return c.email
}

// Phones returns the submitted phone inputs.
func (c CreateCustomerCommand) Phones() []PhoneInput {
	return c.phones
}

// Addresses returns the submitted address inputs.
func (c CreateCustomerCommand) Addresses() []AddressInput {
	return c.addresses
}

func (c *CreateCustomerCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateCustomerCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateCustomerCommand) setTaxID(taxID string) error {
	if taxID == "" {
		return errs.NewValueIsRequiredError("taxId")
	}

	c.taxID = taxID
	return nil
}

func (c *CreateCustomerCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	c.email = email
	return nil
}

func (c *CreateCustomerCommand) setPhones(phones []PhoneInput) error {
	for _, phone := range phones {
		if phone.ID != nil || phone.Remove {
			return errs.NewValueIsInvalidError("phones")
		}
		if phone.Number == "" {
			return errs.NewValueIsRequiredError("phoneNumber")
		}
	}

	c.phones = phones
	return nil
}

func (c *CreateCustomerCommand) setAddresses(addresses []AddressInput) error {
	for _, address := range addresses {
		if address.ID != nil || address.Remove {
			return errs.NewValueIsInvalidError("addresses")
		}
		if err := address.PostalCode.Validate(); err != nil {
			return err
		}
		if address.Number == "" {
			return errs.NewValueIsRequiredError("addressNumber")
		}
	}

	c.addresses = addresses
	return nil
}
