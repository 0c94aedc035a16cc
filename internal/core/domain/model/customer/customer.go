package customer

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not created
// through the NewCustomer or RestoreCustomer factory methods.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is the aggregate root for a customer and its dependent child
// collections. It follows these invariants:
//   - Must have a valid unique identifier, name, tax id and email
//   - Tax id and email are unique across all customers (enforced by the
//     uniqueness pre-check and the storage-level unique constraints)
//   - Child collections are only rewritten through reconciliation plans
type Customer struct {
	id            kernel.UUID
	name          string
	taxID         string
	email         string
	phones        []*Phone
	addresses     []*Address
	isConstructed bool
}

// NewCustomer creates a new Customer aggregate with its initial child set.
// All scalar fields are required; the child slices may be empty.
func NewCustomer(
	id kernel.UUID,
	name, taxID, email string,
	phones []*Phone,
	addresses []*Address,
) (*Customer, error) {
	customer := &Customer{isConstructed: true}

	if err := errors.Join(
		customer.setID(id),
		customer.setName(name),
		customer.setTaxID(taxID),
		customer.setEmail(email),
		customer.setPhones(phones),
		customer.setAddresses(addresses),
	); err != nil {
		return nil, err
	}

	return customer, nil
}

// RestoreCustomer reconstructs a Customer aggregate from persistence.
// It applies the same validation as NewCustomer.
func RestoreCustomer(
	id kernel.UUID,
	name, taxID, email string,
	phones []*Phone,
	addresses []*Address,
) (*Customer, error) {
	return NewCustomer(id, name, taxID, email, phones, addresses)
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// IsEqual compares two customers by their unique identifiers.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's name.
func (c *Customer) Name() string {
	return c.name
}

// TaxID returns the customer's tax id.
func (c *Customer) TaxID() string {
	return c.taxID
}

// Email returns the customer's email.
func (c *Customer) Email() string {
	return c.email
}

// Phones returns the customer's phone children.
func (c *Customer) Phones() []*Phone {
	return c.phones
}

// Addresses returns the customer's address children.
func (c *Customer) Addresses() []*Address {
	return c.addresses
}

// ChangeName overwrites the customer's name.
func (c *Customer) ChangeName(name string) error {
	return c.setName(name)
}

// ChangeTaxID overwrites the customer's tax id.
// Uniqueness against other customers is checked at a higher level.
func (c *Customer) ChangeTaxID(taxID string) error {
	return c.setTaxID(taxID)
}

// ChangeEmail overwrites the customer's email.
// Uniqueness against other customers is checked at a higher level.
func (c *Customer) ChangeEmail(email string) error {
	return c.setEmail(email)
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setTaxID(taxID string) error {
	if taxID == "" {
		return errs.NewValueIsRequiredError("taxId")
	}
	c.taxID = taxID
	return nil
}

func (c *Customer) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}

func (c *Customer) setPhones(phones []*Phone) error {
	for _, phone := range phones {
		if err := phone.Validate(); err != nil {
			return err
		}
	}
	c.phones = phones
	return nil
}

func (c *Customer) setAddresses(addresses []*Address) error {
	for _, address := range addresses {
		if err := address.Validate(); err != nil {
			return err
		}
	}
	c.addresses = addresses
	return nil
}
