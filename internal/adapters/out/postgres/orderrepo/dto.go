// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The customer foreign key restricts customer deletion while orders exist.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Distance        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CargoWeight     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RatePerDistance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RatePerWeight   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Customer *customerrepo.CustomerDTO `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		Distance:        aggregate.Distance(),
		CargoWeight:     aggregate.CargoWeight(),
		RatePerDistance: aggregate.RatePerDistance(),
		RatePerWeight:   aggregate.RatePerWeight(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID,
		dto.Distance, dto.CargoWeight, dto.RatePerDistance, dto.RatePerWeight,
	)
}
