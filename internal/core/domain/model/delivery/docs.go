// Package delivery provides the Delivery aggregate and its lifecycle state
// machine for the logistics system.
//
// The package includes:
//   - Delivery: The aggregate root holding urgency, status, and the six
//     monetary figures produced by the pricing engine
//   - Status: A state machine enforcing valid delivery status transitions
//   - Urgency: A value object selecting the surcharge tier
//
// Key business rules:
//   - A delivery starts in the calculating status and advances to in-transit
//     only through a successful cost computation
//   - Delivered and cancelled are terminal states reached via explicit
//     status updates
//   - While a delivery is in-transit or delivered, the owning order may not
//     be mutated or deleted; a cancelled delivery does not block
//   - Monetary fields are never caller-supplied; they are outputs of the
//     pricing engine only
package delivery
