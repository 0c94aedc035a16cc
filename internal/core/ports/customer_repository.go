// Package ports defines repository interfaces for the logistics domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
// Provides methods for storing, retrieving, and querying customer entities
// with their complete state including phones and addresses.
type CustomerRepository interface {
	// Add persists a new customer aggregate, including its initial phone and
	// address children, to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer's scalar fields.
	// Child collections are written through ApplyPhoneChanges and
	// ApplyAddressChanges.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// ApplyPhoneChanges executes a phone reconciliation plan for the given
	// customer inside the current transaction.
	ApplyPhoneChanges(ctx context.Context, customerID kernel.UUID, changes customer.PhoneChanges) error

	// ApplyAddressChanges executes an address reconciliation plan for the
	// given customer inside the current transaction.
	ApplyAddressChanges(ctx context.Context, customerID kernel.UUID, changes customer.AddressChanges) error

	// Delete removes a customer aggregate and its children from storage.
	// Fails when any order still references the customer.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a customer aggregate by its unique identifier.
	// Returns the complete customer with all phones and addresses.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// ExistsWithTaxID reports whether another customer already uses the given
	// tax identifier. The excluded identifier allows a customer to keep its
	// own value on update.
	ExistsWithTaxID(ctx context.Context, taxID string, exclude kernel.UUID) (bool, error)

	// ExistsWithEmail reports whether another customer already uses the given
	// email address.
	ExistsWithEmail(ctx context.Context, email string, exclude kernel.UUID) (bool, error)

	// ExistsWithPhoneNumber reports whether any customer other than the given
	// one already registered the phone number.
	ExistsWithPhoneNumber(ctx context.Context, number string, exclude kernel.UUID) (bool, error)
}
