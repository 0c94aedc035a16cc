package queries

import (
	"context"

	"logistics/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetDeliveryStatusSummaryQueryHandler counts deliveries grouped by status.
type GetDeliveryStatusSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStatusSummaryQueryHandler creates a handler for status summary queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryStatusSummaryQueryHandler(db *gorm.DB) GetDeliveryStatusSummaryQueryHandler {
	return GetDeliveryStatusSummaryQueryHandler{db: db}
}

// Handle executes the query. Statuses with no deliveries are absent from the
// result.
func (h GetDeliveryStatusSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatusSummaryQuery,
) ([]GetDeliveryStatusSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summary := make([]GetDeliveryStatusSummaryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM deliveries
		GROUP BY status
		ORDER BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count int64

		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}

		summary = append(summary, GetDeliveryStatusSummaryQueryResponse{
			Status: delivery.Status(status).String(),
			Count:  count,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}
