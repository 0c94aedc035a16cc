package queries

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDeliveriesQueryHandler retrieves all deliveries joined with their
// owning order's figures. Uses direct SQL queries for optimal read
// performance in the CQRS pattern.
type GetAllDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDeliveriesQueryHandler creates a handler for delivery retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetAllDeliveriesQueryHandler(db *gorm.DB) GetAllDeliveriesQueryHandler {
	return GetAllDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all deliveries with order figures.
// Results are sorted by delivery ID for consistent output.
func (h GetAllDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAllDeliveriesQuery,
) ([]GetAllDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetAllDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			d.urgency,
			d.status,
			d.distance_cost,
			d.weight_cost,
			d.surcharge,
			d.discount,
			d.extra_fee,
			d.final_cost,
			o.distance,
			o.cargo_weight,
			o.rate_per_distance,
			o.rate_per_weight
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		ORDER BY d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		resp, scanErr := scanDeliveryRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

// scanDeliveryRow converts one joined delivery row into the read model,
// translating the stored enum values to their wire names.
func scanDeliveryRow(scan func(dest ...any) error) (GetAllDeliveriesQueryResponse, error) {
	var resp GetAllDeliveriesQueryResponse
	var id, orderID uuid.UUID
	var urgency, status int

	if err := scan(
		&id,
		&orderID,
		&urgency,
		&status,
		&resp.DistanceCost,
		&resp.WeightCost,
		&resp.Surcharge,
		&resp.Discount,
		&resp.ExtraFee,
		&resp.FinalCost,
		&resp.Distance,
		&resp.CargoWeight,
		&resp.RatePerDistance,
		&resp.RatePerWeight,
	); err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}
	resp.ID = deliveryID

	owningOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}
	resp.OrderID = owningOrderID

	resp.Urgency = delivery.Urgency(urgency).String()
	resp.Status = delivery.Status(status).String()

	return resp, nil
}
