package delivery

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Urgency selects the surcharge tier of a delivery.
type Urgency int

const (
	// UrgencyUnknown catches uninitialized Urgency values.
	UrgencyUnknown Urgency = iota

	// UrgencyNormal is the default tier with no surcharge.
	UrgencyNormal

	// UrgencyUrgent adds the urgent surcharge on top of the base cost.
	UrgencyUrgent
)

func getUrgencyStrings() map[Urgency]string {
	return map[Urgency]string{
		UrgencyUnknown: "unknown",
		UrgencyNormal:  "normal",
		UrgencyUrgent:  "urgent",
	}
}

// UrgencyFromString parses the wire representation of an urgency flag.
func UrgencyFromString(s string) (Urgency, error) {
	switch s {
	case "normal":
		return UrgencyNormal, nil
	case "urgent":
		return UrgencyUrgent, nil
	default:
		return UrgencyUnknown, errs.NewValueIsInvalidErrorWithCause("urgency",
			fmt.Errorf("%q is not a valid urgency", s))
	}
}

// Validate checks if the Urgency value is valid.
func (u Urgency) Validate() error {
	if u != UrgencyNormal && u != UrgencyUrgent {
		return errs.NewValueIsInvalidErrorWithCause("urgency",
			fmt.Errorf("%d is not a valid urgency", u))
	}
	return nil
}

// String returns the wire name of the urgency. It implements fmt.Stringer.
func (u Urgency) String() string {
	if str, ok := getUrgencyStrings()[u]; ok {
		return str
	}
	return "unknown"
}

// IsUrgent reports whether the urgent surcharge applies.
func (u Urgency) IsUrgent() bool {
	return u == UrgencyUrgent
}
