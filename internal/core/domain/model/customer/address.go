package customer

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through the NewAddress factory method.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a child entity of the Customer aggregate. Street, district, city,
// state and the external reference come from the postal-code lookup; the house
// number and complement are supplied by the caller.
type Address struct {
	id            kernel.UUID
	street        string
	number        string
	district      string
	complement    string
	city          string
	state         string
	postalCode    kernel.PostalCode
	externalRef   string
	isConstructed bool
}

// NewAddress creates a validated Address child entity.
// Complement and externalRef may be empty; every other field is required.
func NewAddress(
	id kernel.UUID,
	street, number, district, complement, city, state string,
	postalCode kernel.PostalCode,
	externalRef string,
) (*Address, error) {
	address := &Address{
		complement:    complement,
		externalRef:   externalRef,
		isConstructed: true,
	}

	if err := errors.Join(
		address.setID(id),
		address.setStreet(street),
		address.setNumber(number),
		address.setDistrict(district),
		address.setCity(city),
		address.setState(state),
		address.setPostalCode(postalCode),
	); err != nil {
		return nil, err
	}

	return address, nil
}

// Validate ensures the Address instance was properly constructed through NewAddress.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// ID returns the address's unique identifier.
func (a *Address) ID() kernel.UUID {
	return a.id
}

// Street returns the street resolved from the postal lookup.
func (a *Address) Street() string {
	return a.street
}

// Number returns the caller-supplied house number.
func (a *Address) Number() string {
	return a.number
}

// District returns the district resolved from the postal lookup.
func (a *Address) District() string {
	return a.district
}

// Complement returns the optional caller-supplied complement.
func (a *Address) Complement() string {
	return a.complement
}

// City returns the city resolved from the postal lookup.
func (a *Address) City() string {
	return a.city
}

// State returns the state resolved from the postal lookup.
func (a *Address) State() string {
	return a.state
}

// PostalCode returns the normalized postal code.
func (a *Address) PostalCode() kernel.PostalCode {
	return a.postalCode
}

// ExternalRef returns the external-system reference code for the locality.
func (a *Address) ExternalRef() string {
	return a.externalRef
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("address number")
	}
	a.number = number
	return nil
}

func (a *Address) setDistrict(district string) error {
	if district == "" {
		return errs.NewValueIsRequiredError("district")
	}
	a.district = district
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setState(state string) error {
	if state == "" {
		return errs.NewValueIsRequiredError("state")
	}
	a.state = state
	return nil
}

func (a *Address) setPostalCode(postalCode kernel.PostalCode) error {
	if err := postalCode.Validate(); err != nil {
		return err
	}
	a.postalCode = postalCode
	return nil
}
