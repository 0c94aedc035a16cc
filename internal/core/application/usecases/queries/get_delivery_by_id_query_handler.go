package queries

import (
	"context"

	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryByIDQueryHandler retrieves a single delivery with its owning
// order's figures.
type GetDeliveryByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryByIDQueryHandler creates a handler for single-delivery queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryByIDQueryHandler(db *gorm.DB) GetDeliveryByIDQueryHandler {
	return GetDeliveryByIDQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no
// delivery carries the requested identifier.
func (h GetDeliveryByIDQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryByIDQuery,
) (GetAllDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}

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
		WHERE d.id = ?
	`, query.DeliveryID().String()).Rows()
	if err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetAllDeliveriesQueryResponse{}, err
		}
		return GetAllDeliveriesQueryResponse{},
			errs.NewObjectNotFoundError("deliveryId", query.DeliveryID().String())
	}

	resp, err := scanDeliveryRow(rows.Scan)
	if err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}

	return resp, nil
}
