package delivery

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Calculating ──(successful cost computation)──> InTransit ──> Delivered
//	     │                                             │
//	     └────────────> Cancelled <────────────────────┘
//
// Calculating advances to InTransit only as a side effect of a successful
// cost computation; Delivered and Cancelled are terminal and are entered
// only via an explicit status update.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCalculating is the initial status of a freshly created delivery,
	// before the pricing engine has produced its figures.
	StatusCalculating

	// StatusInTransit indicates the delivery has been priced and is underway.
	// Orders with an in-transit delivery are locked against mutation.
	StatusInTransit

	// StatusDelivered indicates the delivery reached its destination.
	// Terminal; it keeps the owning order locked.
	StatusDelivered

	// StatusCancelled indicates the delivery was called off.
	// Terminal; it does not block further order mutation.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusCalculating: "calculating",
		StatusInTransit:   "in-transit",
		StatusDelivered:   "delivered",
		StatusCancelled:   "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusCalculating: "calculating",
		StatusInTransit:   "in-transit",
		StatusDelivered:   "delivered",
		StatusCancelled:   "cancelled",
	}
}

// StatusFromString parses the wire representation of a status.
// Only the four valid names are accepted; anything else is rejected before
// any mutation can happen.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks if the Status value is one of the four valid states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It implements fmt.Stringer and
// is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// BlocksOrderMutation reports whether the status locks the owning order:
// in-transit and delivered deliveries forbid order mutation and deletion.
// A cancelled delivery does not block.
func (s Status) BlocksOrderMutation() bool {
	return s == StatusInTransit || s == StatusDelivered
}

// TransitionTo validates an explicit caller-driven transition and returns the
// new status. The calculating to in-transit edge is not reachable here; it
// only happens through a successful cost computation.
//
// Allowed explicit transitions:
//   - calculating -> cancelled
//   - in-transit  -> delivered
//   - in-transit  -> cancelled
//
// A transition to the current status is a permitted no-op.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return StatusUnknown, err
	}
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if target == s {
		return s, nil
	}

	allowed := map[Status][]Status{
		StatusCalculating: {StatusCancelled},
		StatusInTransit:   {StatusDelivered, StatusCancelled},
	}

	for _, next := range allowed[s] {
		if next == target {
			return target, nil
		}
	}

	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("cannot transition from %s to %s", s, target))
}

// completePricing advances the status after a successful cost computation.
// It is the only path from calculating to in-transit; recomputation while
// already in transit keeps the status unchanged.
func (s Status) completePricing() (Status, error) {
	switch s {
	case StatusCalculating:
		return StatusInTransit, nil
	case StatusInTransit:
		return StatusInTransit, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to price", s))
	}
}
