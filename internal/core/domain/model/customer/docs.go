// Package customer provides the Customer aggregate and its dependent child
// collections (phones and addresses) for the logistics system.
//
// The package includes:
//   - Customer: The aggregate root holding identity, tax id, email and children
//   - Phone: A child entity carrying a system-wide unique phone number
//   - Address: A child entity carrying a postal-lookup-resolved address
//   - Child reconciliation: the algorithm converting persisted child state
//     into a caller-submitted desired end state via insert/update/delete
//
// Key business rules:
//   - Tax id and email are unique across all customers; phone numbers are
//     unique across all phones in the system
//   - Child collections are mutated only through reconciliation plans so the
//     persisted set always equals the submitted end state
//   - The reconciliation policy (full replacement vs. explicit removal) is an
//     explicit configuration applied identically to phones and addresses
package customer
