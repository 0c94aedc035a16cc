package delivery

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through the NewDelivery or RestoreDelivery factory methods.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// CostBreakdown carries the six monetary figures of a priced delivery.
// It is a value object produced exclusively by the pricing engine; callers
// never supply these fields directly.
type CostBreakdown struct {
	DistanceCost decimal.Decimal
	WeightCost   decimal.Decimal
	Surcharge    decimal.Decimal
	Discount     decimal.Decimal
	ExtraFee     decimal.Decimal
	FinalCost    decimal.Decimal
}

// IsEqual compares two breakdowns field by field with decimal equality.
func (cb CostBreakdown) IsEqual(other CostBreakdown) bool {
	return cb.DistanceCost.Equal(other.DistanceCost) &&
		cb.WeightCost.Equal(other.WeightCost) &&
		cb.Surcharge.Equal(other.Surcharge) &&
		cb.Discount.Equal(other.Discount) &&
		cb.ExtraFee.Equal(other.ExtraFee) &&
		cb.FinalCost.Equal(other.FinalCost)
}

// Delivery is the aggregate root for the delivery of one order.
// Exactly one delivery may exist per order; it starts in the calculating
// status with zeroed costs and is priced inside the same transaction that
// created it.
type Delivery struct {
	id            kernel.UUID
	orderID       kernel.UUID
	urgency       Urgency
	status        Status
	cost          CostBreakdown
	isConstructed bool
}

// NewDelivery creates a delivery for an order in the calculating status with
// zeroed monetary fields.
func NewDelivery(id kernel.UUID, orderID kernel.UUID, urgency Urgency) (*Delivery, error) {
	delivery := &Delivery{
		status:        StatusCalculating,
		isConstructed: true,
	}

	if err := errors.Join(
		delivery.setID(id),
		delivery.setOrderID(orderID),
		delivery.setUrgency(urgency),
	); err != nil {
		return nil, err
	}

	return delivery, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistence,
// including its current status and monetary figures.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	urgency Urgency,
	status Status,
	cost CostBreakdown,
) (*Delivery, error) {
	delivery, err := NewDelivery(id, orderID, urgency)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	delivery.status = status
	delivery.cost = cost
	return delivery, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the owning order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Urgency returns the delivery's urgency flag.
func (d *Delivery) Urgency() Urgency {
	return d.urgency
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// Cost returns the current monetary figures.
func (d *Delivery) Cost() CostBreakdown {
	return d.cost
}

// ApplyPricing stores a freshly computed cost breakdown and advances the
// status from calculating to in-transit on the first successful computation.
// Recomputation while in transit overwrites the figures and keeps the status;
// pricing a delivered or cancelled delivery is rejected.
func (d *Delivery) ApplyPricing(cost CostBreakdown) error {
	newStatus, err := d.status.completePricing()
	if err != nil {
		return err
	}

	d.cost = cost
	d.status = newStatus
	return nil
}

// ChangeStatus performs an explicit caller-driven status transition.
// The target must be one of the four valid statuses and reachable from the
// current one; setting the current status again is a permitted no-op.
func (d *Delivery) ChangeStatus(target Status) error {
	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setUrgency(urgency Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	d.urgency = urgency
	return nil
}
