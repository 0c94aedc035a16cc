package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
)

// ResolvedAddress carries the location fields a postal code resolves to.
// Street and District may be empty for codes that cover a whole town.
type ResolvedAddress struct {
	Street      string
	District    string
	City        string
	State       string
	ExternalRef string
}

// PostalLookup resolves postal codes against an external address provider.
//
// Resolution happens before any transaction is opened, so a slow or failing
// provider never holds database locks. Implementations must bound the call
// with a timeout and honor ctx cancellation.
type PostalLookup interface {
	// Resolve returns the address registered for the postal code.
	// Codes the provider does not know, and provider failures such as
	// timeouts, surface as invalid-value errors: an unresolvable code is a
	// validation failure of the submitted address.
	Resolve(ctx context.Context, postalCode kernel.PostalCode) (ResolvedAddress, error)
}
