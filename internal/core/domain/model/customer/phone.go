package customer

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrPhoneIsNotConstructed is returned when a Phone instance was not created
// through the NewPhone factory method.
var ErrPhoneIsNotConstructed = errors.New("Phone must be created via NewPhone constructor")

// Phone is a child entity of the Customer aggregate. Its number is unique
// across the whole system, not just within one customer.
type Phone struct {
	id            kernel.UUID
	number        string
	isConstructed bool
}

// NewPhone creates a validated Phone child entity.
// The number must be non-empty; uniqueness is enforced at a higher level.
func NewPhone(id kernel.UUID, number string) (*Phone, error) {
	phone := &Phone{isConstructed: true}

	if err := errors.Join(
		phone.setID(id),
		phone.setNumber(number),
	); err != nil {
		return nil, err
	}

	return phone, nil
}

// Validate ensures the Phone instance was properly constructed through NewPhone.
func (p *Phone) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPhoneIsNotConstructed
	}
	return nil
}

// ID returns the phone's unique identifier.
func (p *Phone) ID() kernel.UUID {
	return p.id
}

// Number returns the phone number.
func (p *Phone) Number() string {
	return p.number
}

func (p *Phone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Phone) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("phone number")
	}
	p.number = number
	return nil
}
