package queries

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrGetDeliveryStatusSummaryQueryIsNotConstructed = errors.New(
	"GetDeliveryStatusSummaryQuery must be created via NewGetDeliveryStatusSummaryQuery constructor",
)

// GetDeliveryStatusSummaryQuery counts deliveries per status. Feeds the
// periodic report job.
type GetDeliveryStatusSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryStatusSummaryQuery creates a query for per-status delivery counts.
func NewGetDeliveryStatusSummaryQuery() GetDeliveryStatusSummaryQuery {
	return GetDeliveryStatusSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatusSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatusSummaryQueryIsNotConstructed)
}

// GetDeliveryStatusSummaryQueryResponse is one status with its delivery count.
type GetDeliveryStatusSummaryQueryResponse struct {
	Status string
	Count  int64
}
