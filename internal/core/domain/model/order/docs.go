// Package order provides the Order aggregate for the logistics system.
//
// An order captures the base inputs of a shipment: the distance to cover,
// the cargo weight, and the per-distance and per-weight rates agreed with
// the customer. All four inputs must be strictly positive and are stored as
// fixed-point decimals so that downstream pricing never suffers from
// floating-point currency drift.
//
// Orders never carry monetary results; those belong to the Delivery
// aggregate and are produced exclusively by the pricing engine.
package order
