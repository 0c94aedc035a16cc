// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the logistics system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingEngine: A domain service that computes delivery cost breakdowns
//     from order shipment figures and delivery urgency
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
