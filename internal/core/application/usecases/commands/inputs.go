package commands

import (
	"context"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// PhoneInput carries one submitted phone. A nil ID marks a new phone;
// Remove marks an existing one for deletion.
type PhoneInput struct {
	ID     *kernel.UUID
	Number string
	Remove bool
}

// AddressInput carries one submitted address. The caller supplies only the
// postal code, street number and complement; street, district, city and state
// are resolved from the postal code before the transaction opens.
type AddressInput struct {
	ID         *kernel.UUID
	PostalCode kernel.PostalCode
	Number     string
	Complement string
	Remove     bool
}

func phoneSubmissions(inputs []PhoneInput) []customer.PhoneSubmission {
	submissions := make([]customer.PhoneSubmission, 0, len(inputs))
	for _, input := range inputs {
		submissions = append(submissions, customer.PhoneSubmission{
			ID:     input.ID,
			Number: input.Number,
			Remove: input.Remove,
		})
	}
	return submissions
}

// resolveAddressInputs turns address inputs into submissions by resolving
// every non-removal entry against the postal lookup. It runs before Begin so
// a slow provider never holds a transaction open.
func resolveAddressInputs(
	ctx context.Context,
	lookup ports.PostalLookup,
	inputs []AddressInput,
) ([]customer.AddressSubmission, error) {
	submissions := make([]customer.AddressSubmission, 0, len(inputs))
	for _, input := range inputs {
		if input.Remove {
			submissions = append(submissions, customer.AddressSubmission{
				ID:     input.ID,
				Remove: true,
			})
			continue
		}

		resolved, err := lookup.Resolve(ctx, input.PostalCode)
		if err != nil {
			return nil, err
		}

		submissions = append(submissions, customer.AddressSubmission{
			ID:          input.ID,
			Street:      resolved.Street,
			Number:      input.Number,
			District:    resolved.District,
			Complement:  input.Complement,
			City:        resolved.City,
			State:       resolved.State,
			PostalCode:  input.PostalCode,
			ExternalRef: resolved.ExternalRef,
		})
	}
	return submissions, nil
}
