package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"paybridge/internal/models"
	"paybridge/internal/repository"
	"paybridge/internal/tappay"
)

const (
	// Pending records younger than this are left alone: their notify
	// callback may still be in flight.
	reconcileAfter = 10 * time.Minute

	// Pending records older than this never reached the gateway or were
	// abandoned mid-flow; they are closed as failed.
	abandonAfter = 24 * time.Hour

	reconcileBatchSize = 20
)

// Scheduler runs the background jobs: reconciling pending payments against
// the gateway's transaction records.
type Scheduler struct {
	cron     *cron.Cron
	client   *tappay.Client
	payments *repository.PaymentRecordRepository
	logger   *zap.Logger
}

// New creates a new cron scheduler.
func New(client *tappay.Client, payments *repository.PaymentRecordRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		client:   client,
		payments: payments,
		logger:   logger,
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting cron scheduler...")

	// Reconcile pending payments - every 5 minutes
	s.cron.AddFunc("0 */5 * * * *", func() {
		s.logger.Debug("Running: reconcile pending payments")
		s.reconcilePendingPayments()
	})

	s.cron.Start()
}

// Stop stops the scheduler and returns a context that is done once running
// jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) reconcilePendingPayments() {
	defer s.recoverFromPanic("reconcilePendingPayments")

	cutoff := time.Now().Add(-reconcileAfter)
	records, err := s.payments.FindPendingOlderThan(cutoff, reconcileBatchSize)
	if err != nil {
		s.logger.Error("Failed to load pending payments", zap.Error(err))
		return
	}

	for _, record := range records {
		s.reconcileOne(record)
	}
}

func (s *Scheduler) reconcileOne(record models.PaymentRecord) {
	if record.RecTradeID == "" {
		// The gateway call never completed. Give the record a day in case
		// an operator wants to inspect it, then close it out.
		if time.Since(record.CreatedAt) > abandonAfter {
			record.Status = models.PaymentStatusFailed
			record.GatewayMsg = "abandoned: no gateway transaction"
			if err := s.payments.Update(&record); err != nil {
				s.logger.Error("Failed to close abandoned payment",
					zap.String("order_number", record.OrderNumber),
					zap.Error(err))
			}
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req := tappay.NewRecordQueryRequest(tappay.RecordQueryRequest{
		Filters: map[string]interface{}{
			"rec_trade_id": record.RecTradeID,
		},
	})
	resp, err := s.client.QueryRecords(ctx, req)
	if err != nil {
		s.logger.Warn("Record query failed during reconciliation",
			zap.String("rec_trade_id", record.RecTradeID),
			zap.Error(err))
		return
	}
	if !resp.IsSuccess() || len(resp.TradeRecords) == 0 {
		return
	}

	trade := resp.TradeRecords[0]
	status, ok := tradeRecordStatus(trade)
	if !ok {
		return
	}

	record.GatewayStatus = status
	record.Status = lifecycleStatus(status)
	if err := s.payments.Update(&record); err != nil {
		s.logger.Error("Failed to reconcile payment",
			zap.String("rec_trade_id", record.RecTradeID),
			zap.Error(err))
		return
	}

	s.logger.Info("Reconciled payment",
		zap.String("rec_trade_id", record.RecTradeID),
		zap.Int("record_status", status),
		zap.String("status", record.Status))
}

// tradeRecordStatus pulls record_status out of a trade record map.
func tradeRecordStatus(trade map[string]interface{}) (int, bool) {
	if f, ok := trade["record_status"].(float64); ok {
		return int(f), true
	}
	return 0, false
}

// lifecycleStatus maps the gateway's record_status onto the local lifecycle:
// 0 settled, 1 partially refunded, 2 refunded, everything else failed.
func lifecycleStatus(recordStatus int) string {
	switch recordStatus {
	case 0:
		return models.PaymentStatusPaid
	case 1, 2:
		return models.PaymentStatusRefunded
	default:
		return models.PaymentStatusFailed
	}
}

func (s *Scheduler) recoverFromPanic(job string) {
	if r := recover(); r != nil {
		s.logger.Error("Cron job panicked",
			zap.String("job", job),
			zap.Any("panic", r))
	}
}
