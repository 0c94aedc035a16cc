// Package customerrepo provides data transfer objects and mapping functions for customer persistence.
// This package implements the repository pattern for the customer domain aggregate, handling
// the conversion between domain entities and database representations.
package customerrepo

import (
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customer aggregates.
// Tax id and email carry unique indexes; the database stays authoritative even
// when the advisory pre-checks race.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	TaxID     string    `gorm:"column:tax_id;uniqueIndex;not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Phones    []PhoneDTO
	Addresses []AddressDTO
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// PhoneDTO represents one phone row owned by a customer.
type PhoneDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Number     string    `gorm:"uniqueIndex;not null"`
}

// TableName specifies the database table name for phone entities.
func (PhoneDTO) TableName() string {
	return "phones"
}

// AddressDTO represents one address row owned by a customer. Street, district,
// city and state come from postal resolution at write time.
type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Street      string    `gorm:"not null"`
	Number      string    `gorm:"not null"`
	District    string    `gorm:"not null"`
	Complement  string
	City        string `gorm:"not null"`
	State       string `gorm:"not null"`
	PostalCode  string `gorm:"column:postal_code;not null"`
	ExternalRef string `gorm:"column:external_ref"`
}

// TableName specifies the database table name for address entities.
func (AddressDTO) TableName() string {
	return "addresses"
}

// fromDomain converts a customer domain aggregate to its database representation,
// children included.
func fromDomain(aggregate *customer.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		TaxID: aggregate.TaxID(),
		Email: aggregate.Email(),
	}

	for _, phone := range aggregate.Phones() {
		dto.Phones = append(dto.Phones, phoneFromDomain(aggregate.ID(), phone))
	}
	for _, address := range aggregate.Addresses() {
		dto.Addresses = append(dto.Addresses, addressFromDomain(aggregate.ID(), address))
	}

	return dto
}

func phoneFromDomain(customerID kernel.UUID, phone *customer.Phone) PhoneDTO {
	return PhoneDTO{
		ID:         phone.ID().Bytes(),
		CustomerID: customerID.Bytes(),
		Number:     phone.Number(),
	}
}

func addressFromDomain(customerID kernel.UUID, address *customer.Address) AddressDTO {
	return AddressDTO{
		ID:          address.ID().Bytes(),
		CustomerID:  customerID.Bytes(),
		Street:      address.Street(),
		Number:      address.Number(),
		District:    address.District(),
		Complement:  address.Complement(),
		City:        address.City(),
		State:       address.State(),
		PostalCode:  address.PostalCode().String(),
		ExternalRef: address.ExternalRef(),
	}
}

// toDomain converts a database DTO to a customer domain aggregate.
// Reconstructs the complete aggregate including children using RestoreCustomer.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phones := make([]*customer.Phone, 0, len(dto.Phones))
	for _, phoneDTO := range dto.Phones {
		phone, phoneErr := phoneToDomain(phoneDTO)
		if phoneErr != nil {
			return nil, phoneErr
		}
		phones = append(phones, phone)
	}

	addresses := make([]*customer.Address, 0, len(dto.Addresses))
	for _, addressDTO := range dto.Addresses {
		address, addressErr := addressToDomain(addressDTO)
		if addressErr != nil {
			return nil, addressErr
		}
		addresses = append(addresses, address)
	}

	return customer.RestoreCustomer(id, dto.Name, dto.TaxID, dto.Email, phones, addresses)
}

func phoneToDomain(dto PhoneDTO) (*customer.Phone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.NewPhone(id, dto.Number)
}

func addressToDomain(dto AddressDTO) (*customer.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	postalCode, err := kernel.NewPostalCode(dto.PostalCode)
	if err != nil {
		return nil, err
	}

	return customer.NewAddress(
		id,
		dto.Street, dto.Number, dto.District, dto.Complement, dto.City, dto.State,
		postalCode,
		dto.ExternalRef,
	)
}
