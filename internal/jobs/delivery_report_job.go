package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DeliveryReportJob periodically logs the number of deliveries per status.
// It performs reads only.
type DeliveryReportJob struct {
	handler queries.GetDeliveryStatusSummaryQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryReportJob creates a job that reports delivery status counts
// every minute.
func NewDeliveryReportJob(
	handler queries.GetDeliveryStatusSummaryQueryHandler,
	logger *slog.Logger,
) *DeliveryReportJob {
	return &DeliveryReportJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "delivery_report_job"),
	}
}

// Start begins the delivery report job to run every minute.
func (j *DeliveryReportJob) Start() error {
	_, err := j.cron.AddFunc("@every 1m", func() {
		ctx := context.Background()

		summary, err := j.handler.Handle(ctx, queries.NewGetDeliveryStatusSummaryQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Delivery report job failed", "error", err)
			return
		}

		if len(summary) == 0 {
			j.logger.InfoContext(ctx, "No deliveries registered")
			return
		}

		for _, row := range summary {
			j.logger.InfoContext(ctx, "Delivery count", "status", row.Status, "count", row.Count)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery report job started (running every minute)")
	return nil
}

// Stop stops the delivery report job.
func (j *DeliveryReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery report job stopped")
}
