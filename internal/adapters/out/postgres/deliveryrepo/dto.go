// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery domain aggregate, handling
// the conversion between domain entities and database representations.
package deliveryrepo

import (
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The unique index on order_id enforces at most one delivery per order; the
// foreign key restricts order deletion while the delivery exists.
type DeliveryDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Urgency      int             `gorm:"not null"`
	Status       int             `gorm:"not null"`
	DistanceCost decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WeightCost   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Surcharge    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExtraFee     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FinalCost    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Order *orderrepo.OrderDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	cost := aggregate.Cost()

	return DeliveryDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		Urgency:      int(aggregate.Urgency()),
		Status:       int(aggregate.Status()),
		DistanceCost: cost.DistanceCost,
		WeightCost:   cost.WeightCost,
		Surcharge:    cost.Surcharge,
		Discount:     cost.Discount,
		ExtraFee:     cost.ExtraFee,
		FinalCost:    cost.FinalCost,
	}
}

// toDomain converts a database DTO to a delivery domain aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, orderID,
		delivery.Urgency(dto.Urgency),
		delivery.Status(dto.Status),
		delivery.CostBreakdown{
			DistanceCost: dto.DistanceCost,
			WeightCost:   dto.WeightCost,
			Surcharge:    dto.Surcharge,
			Discount:     dto.Discount,
			ExtraFee:     dto.ExtraFee,
			FinalCost:    dto.FinalCost,
		},
	)
}
