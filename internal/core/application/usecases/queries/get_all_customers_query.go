// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetAllCustomersQueryIsNotConstructed = errors.New(
	"GetAllCustomersQuery must be created via NewGetAllCustomersQuery constructor",
)

// GetAllCustomersQuery retrieves every customer joined with its phones and
// addresses. The result is the flattened join: one row per
// customer/phone/address combination, with nil child columns for customers
// that have none.
type GetAllCustomersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCustomersQuery creates a query to retrieve all customers.
// This is a parameterless query that fetches the complete flattened list.
func NewGetAllCustomersQuery() GetAllCustomersQuery {
	return GetAllCustomersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCustomersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCustomersQueryIsNotConstructed)
}

// GetAllCustomersQueryResponse is one row of the flattened customer join.
// Phone and address fields are nil when the customer has no such child.
type GetAllCustomersQueryResponse struct {
	CustomerID kernel.UUID
	Name       string
	TaxID      string
	Email      string

	PhoneID     *kernel.UUID
	PhoneNumber *string

	AddressID   *kernel.UUID
	Street      *string
	Number      *string
	District    *string
	Complement  *string
	City        *string
	State       *string
	PostalCode  *string
	ExternalRef *string
}
