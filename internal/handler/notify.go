package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"paybridge/internal/models"
	"paybridge/internal/repository"
	"paybridge/internal/tappay"
)

// NotifyHandler receives the gateway's backend_notify_url callbacks. The
// gateway retries until it gets a 2xx, so the handler always acknowledges
// once the payload is readable; the dedup middleware upstream drops repeats.
type NotifyHandler struct {
	payments *repository.PaymentRecordRepository
	logger   *zap.Logger
}

func NewNotifyHandler(payments *repository.PaymentRecordRepository, logger *zap.Logger) *NotifyHandler {
	return &NotifyHandler{payments: payments, logger: logger}
}

// HandleNotify processes a payment status notification.
// POST /callbacks/tappay/notify
func (h *NotifyHandler) HandleNotify(c echo.Context) error {
	body := make(map[string]interface{})
	if err := c.Bind(&body); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	resp := tappay.PaymentResponseFromMap(body)
	if resp.RecTradeID == "" {
		h.logger.Warn("Notify callback without rec_trade_id")
		return c.NoContent(http.StatusOK)
	}

	status := models.PaymentStatusFailed
	if resp.IsSuccess() {
		status = models.PaymentStatusPaid
	}

	if err := h.payments.UpdateStatusByRecTradeID(resp.RecTradeID, status, resp.Status, resp.Msg); err != nil {
		h.logger.Error("Failed to apply notify callback",
			zap.String("rec_trade_id", resp.RecTradeID),
			zap.Error(err))
		// Still acknowledge; the reconciliation job will catch up.
	}

	h.logger.Info("Notify callback applied",
		zap.String("rec_trade_id", resp.RecTradeID),
		zap.Int("gateway_status", resp.Status),
		zap.String("status", status))

	return c.NoContent(http.StatusOK)
}
