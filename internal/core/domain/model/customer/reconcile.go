package customer

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ReconcilePolicy selects how a submitted child set relates to the persisted one.
// It is a deliberate, explicit configuration: both policies existed in earlier
// evolutions of this system and the reconciler must apply exactly one of them,
// identically, to phones and addresses.
type ReconcilePolicy int

const (
	// ReconcilePolicyUnknown catches uninitialized policy values.
	ReconcilePolicyUnknown ReconcilePolicy = iota

	// ReconcileReplaceAll treats the submitted set as the desired end state:
	// persisted children whose identifiers are absent from the submission are
	// deleted. Removal markers are honored too.
	ReconcileReplaceAll

	// ReconcileExplicitRemoval deletes only children carrying the removal
	// marker; omitting a persisted child leaves it untouched.
	ReconcileExplicitRemoval
)

// Validate checks that the policy is one of the two supported modes.
func (p ReconcilePolicy) Validate() error {
	if p != ReconcileReplaceAll && p != ReconcileExplicitRemoval {
		return errs.NewValueIsInvalidErrorWithCause("reconcilePolicy",
			fmt.Errorf("%d is not a valid reconcile policy", p))
	}
	return nil
}

// String returns the policy name.
func (p ReconcilePolicy) String() string {
	switch p {
	case ReconcileReplaceAll:
		return "replace-all"
	case ReconcileExplicitRemoval:
		return "explicit-removal"
	default:
		return "unknown"
	}
}

// PhoneSubmission is the caller-submitted desired state of one phone child.
// A nil ID marks a new child; Remove marks an existing child for deletion.
type PhoneSubmission struct {
	ID     *kernel.UUID
	Number string
	Remove bool
}

// AddressSubmission is the caller-submitted desired state of one address
// child with all lookup-resolved fields already filled in.
type AddressSubmission struct {
	ID          *kernel.UUID
	Street      string
	Number      string
	District    string
	Complement  string
	City        string
	State       string
	PostalCode  kernel.PostalCode
	ExternalRef string
	Remove      bool
}

// PhoneChanges is the exact statement plan a repository must apply, inside the
// current transaction, so the persisted phones match the reconciled end state.
type PhoneChanges struct {
	Insert []*Phone
	Update []*Phone
	Delete []kernel.UUID
}

// IsEmpty reports whether the plan contains no statements.
func (pc PhoneChanges) IsEmpty() bool {
	return len(pc.Insert) == 0 && len(pc.Update) == 0 && len(pc.Delete) == 0
}

// AddressChanges is the statement plan for the address collection.
type AddressChanges struct {
	Insert []*Address
	Update []*Address
	Delete []kernel.UUID
}

// IsEmpty reports whether the plan contains no statements.
func (ac AddressChanges) IsEmpty() bool {
	return len(ac.Insert) == 0 && len(ac.Update) == 0 && len(ac.Delete) == 0
}

// ReconcilePhones converts the persisted phone set into the submitted desired
// state under the given policy. It returns the statement plan and mutates the
// aggregate's in-memory children to the reconciled end state.
//
// Contract, per submitted child:
//   - no identifier: insert with a fresh identifier
//   - identifier plus removal marker: delete
//   - identifier, no removal marker: full-field overwrite
//   - identifier unknown to this customer: the whole reconciliation fails
//
// Under ReconcileReplaceAll, persisted children absent from the submission are
// deleted as well.
func (c *Customer) ReconcilePhones(policy ReconcilePolicy, submitted []PhoneSubmission) (PhoneChanges, error) {
	if err := policy.Validate(); err != nil {
		return PhoneChanges{}, err
	}

	existing := make(map[kernel.UUID]*Phone, len(c.phones))
	for _, phone := range c.phones {
		existing[phone.ID()] = phone
	}

	var changes PhoneChanges
	seen := make(map[kernel.UUID]bool, len(submitted))
	kept := make(map[kernel.UUID]*Phone, len(submitted))

	for _, sub := range submitted {
		switch {
		case sub.Remove:
			if sub.ID == nil {
				return PhoneChanges{}, errs.NewValueIsRequiredError("phone id to remove")
			}
			if _, ok := existing[*sub.ID]; !ok {
				return PhoneChanges{}, errs.NewObjectNotFoundError("phone", sub.ID.String())
			}
			if seen[*sub.ID] {
				return PhoneChanges{}, errs.NewValueIsInvalidError("phone submitted twice")
			}
			seen[*sub.ID] = true
			changes.Delete = append(changes.Delete, *sub.ID)

		case sub.ID == nil:
			phone, err := NewPhone(kernel.NewUUID(), sub.Number)
			if err != nil {
				return PhoneChanges{}, err
			}
			changes.Insert = append(changes.Insert, phone)

		default:
			if _, ok := existing[*sub.ID]; !ok {
				return PhoneChanges{}, errs.NewObjectNotFoundError("phone", sub.ID.String())
			}
			if seen[*sub.ID] {
				return PhoneChanges{}, errs.NewValueIsInvalidError("phone submitted twice")
			}
			seen[*sub.ID] = true
			phone, err := NewPhone(*sub.ID, sub.Number)
			if err != nil {
				return PhoneChanges{}, err
			}
			changes.Update = append(changes.Update, phone)
			kept[*sub.ID] = phone
		}
	}

	if policy == ReconcileReplaceAll {
		for _, phone := range c.phones {
			if !seen[phone.ID()] {
				changes.Delete = append(changes.Delete, phone.ID())
			}
		}
	}

	c.phones = reconciledPhones(c.phones, changes, kept)
	return changes, nil
}

// ReconcileAddresses converts the persisted address set into the submitted
// desired state under the given policy. Same contract as ReconcilePhones.
func (c *Customer) ReconcileAddresses(policy ReconcilePolicy, submitted []AddressSubmission) (AddressChanges, error) {
	if err := policy.Validate(); err != nil {
		return AddressChanges{}, err
	}

	existing := make(map[kernel.UUID]*Address, len(c.addresses))
	for _, address := range c.addresses {
		existing[address.ID()] = address
	}

	var changes AddressChanges
	seen := make(map[kernel.UUID]bool, len(submitted))
	kept := make(map[kernel.UUID]*Address, len(submitted))

	for _, sub := range submitted {
		switch {
		case sub.Remove:
			if sub.ID == nil {
				return AddressChanges{}, errs.NewValueIsRequiredError("address id to remove")
			}
			if _, ok := existing[*sub.ID]; !ok {
				return AddressChanges{}, errs.NewObjectNotFoundError("address", sub.ID.String())
			}
			if seen[*sub.ID] {
				return AddressChanges{}, errs.NewValueIsInvalidError("address submitted twice")
			}
			seen[*sub.ID] = true
			changes.Delete = append(changes.Delete, *sub.ID)

		case sub.ID == nil:
			address, err := newAddressFromSubmission(kernel.NewUUID(), sub)
			if err != nil {
				return AddressChanges{}, err
			}
			changes.Insert = append(changes.Insert, address)

		default:
			if _, ok := existing[*sub.ID]; !ok {
				return AddressChanges{}, errs.NewObjectNotFoundError("address", sub.ID.String())
			}
			if seen[*sub.ID] {
				return AddressChanges{}, errs.NewValueIsInvalidError("address submitted twice")
			}
			seen[*sub.ID] = true
			address, err := newAddressFromSubmission(*sub.ID, sub)
			if err != nil {
				return AddressChanges{}, err
			}
			changes.Update = append(changes.Update, address)
			kept[*sub.ID] = address
		}
	}

	if policy == ReconcileReplaceAll {
		for _, address := range c.addresses {
			if !seen[address.ID()] {
				changes.Delete = append(changes.Delete, address.ID())
			}
		}
	}

	c.addresses = reconciledAddresses(c.addresses, changes, kept)
	return changes, nil
}

func newAddressFromSubmission(id kernel.UUID, sub AddressSubmission) (*Address, error) {
	return NewAddress(
		id,
		sub.Street, sub.Number, sub.District, sub.Complement, sub.City, sub.State,
		sub.PostalCode,
		sub.ExternalRef,
	)
}

// reconciledPhones builds the in-memory end state: kept children stay in their
// original position with updated fields, inserts go to the end. Children whose
// identifiers appear in the delete plan are dropped.
func reconciledPhones(current []*Phone, changes PhoneChanges, kept map[kernel.UUID]*Phone) []*Phone {
	deleted := make(map[kernel.UUID]bool, len(changes.Delete))
	for _, id := range changes.Delete {
		deleted[id] = true
	}

	result := make([]*Phone, 0, len(current)+len(changes.Insert))
	for _, phone := range current {
		if deleted[phone.ID()] {
			continue
		}
		if updated, ok := kept[phone.ID()]; ok {
			result = append(result, updated)
			continue
		}
		result = append(result, phone)
	}
	return append(result, changes.Insert...)
}

func reconciledAddresses(current []*Address, changes AddressChanges, kept map[kernel.UUID]*Address) []*Address {
	deleted := make(map[kernel.UUID]bool, len(changes.Delete))
	for _, id := range changes.Delete {
		deleted[id] = true
	}

	result := make([]*Address, 0, len(current)+len(changes.Insert))
	for _, address := range current {
		if deleted[address.ID()] {
			continue
		}
		if updated, ok := kept[address.ID()]; ok {
			result = append(result, updated)
			continue
		}
		result = append(result, address)
	}
	return append(result, changes.Insert...)
}
