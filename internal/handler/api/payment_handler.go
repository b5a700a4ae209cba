package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"paybridge/internal/models"
	"paybridge/internal/pkg/utils"
	"paybridge/internal/tappay"
)

// PaymentHandler exposes the gateway operations over the service API. Every
// charge is recorded before the gateway call so a crashed process leaves a
// pending row the reconciliation job can pick up.
type PaymentHandler struct {
	repos  *Repos
	client *tappay.Client
	logger *zap.Logger
}

func NewPaymentHandler(repos *Repos, client *tappay.Client, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{repos: repos, client: client, logger: logger}
}

// PayByPrime charges a one-time prime token.
// POST /api/payments/prime
func (h *PaymentHandler) PayByPrime(c echo.Context) error {
	body := make(map[string]interface{})
	if err := c.Bind(&body); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	orderNumber := getStringField(body, "order_number")
	if orderNumber == "" {
		orderNumber = utils.GenerateOrderID()
	}

	req := tappay.NewPrimePaymentRequest(tappay.PrimePaymentRequest{
		Prime:              getStringField(body, "prime"),
		Amount:             tappay.RawAmount(int64(getIntField(body, "amount", 0))),
		Currency:           getStringField(body, "currency"),
		Details:            getStringField(body, "details"),
		OrderNumber:        orderNumber,
		BankTransactionID:  getStringField(body, "bank_transaction_id"),
		RawCardholder:      getMapField(body, "cardholder"),
		Remember:           getBoolField(body, "remember"),
		Instalment:         getIntPtrField(body, "instalment"),
		DelayCaptureInDays: getIntPtrField(body, "delay_capture_in_days"),
		ThreeDomainSecure:  getBoolField(body, "three_domain_secure"),
		RawResultURL:       getMapField(body, "result_url"),
	})

	payload, err := req.ToPayload(h.client.Config())
	if err != nil {
		return gatewayErrorResponse(c, err)
	}

	record := &models.PaymentRecord{
		ReferenceID: utils.GenerateUUID(),
		OrderNumber: orderNumber,
		Method:      "prime",
		Amount:      payload["amount"].(int64),
		Currency:    payload["currency"].(string),
		Details:     getStringField(body, "details"),
		Status:      models.PaymentStatusPending,
	}
	if err := h.repos.Payment.Create(record); err != nil {
		h.logger.Error("Failed to create payment record", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create payment record")
	}

	resp, err := h.client.PayByPrime(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("PayByPrime failed",
			zap.String("order_number", orderNumber),
			zap.Error(err))
		return gatewayErrorResponse(c, err)
	}

	h.applyPaymentResult(record, resp)
	if err := h.repos.Payment.Update(record); err != nil {
		h.logger.Error("Failed to update payment record",
			zap.String("order_number", orderNumber),
			zap.Error(err))
	}

	if !resp.IsSuccess() {
		return successResponse(c, resp.Msg, h.paymentResult(record, resp))
	}
	return successResponse(c, "Successful", h.paymentResult(record, resp))
}

// PayByToken charges a saved card.
// POST /api/payments/token
func (h *PaymentHandler) PayByToken(c echo.Context) error {
	body := make(map[string]interface{})
	if err := c.Bind(&body); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	orderNumber := getStringField(body, "order_number")
	if orderNumber == "" {
		orderNumber = utils.GenerateOrderID()
	}

	req := tappay.NewTokenPaymentRequest(tappay.TokenPaymentRequest{
		CardKey:           getStringField(body, "card_key"),
		CardToken:         getStringField(body, "card_token"),
		Amount:            tappay.RawAmount(int64(getIntField(body, "amount", 0))),
		Currency:          getStringField(body, "currency"),
		Details:           getStringField(body, "details"),
		OrderNumber:       orderNumber,
		BankTransactionID: getStringField(body, "bank_transaction_id"),
		ThreeDomainSecure: getBoolField(body, "three_domain_secure"),
		RawResultURL:      getMapField(body, "result_url"),
	})

	payload, err := req.ToPayload(h.client.Config())
	if err != nil {
		return gatewayErrorResponse(c, err)
	}

	record := &models.PaymentRecord{
		ReferenceID: utils.GenerateUUID(),
		OrderNumber: orderNumber,
		Method:      "token",
		Amount:      payload["amount"].(int64),
		Currency:    payload["currency"].(string),
		Details:     getStringField(body, "details"),
		Status:      models.PaymentStatusPending,
	}
	if err := h.repos.Payment.Create(record); err != nil {
		h.logger.Error("Failed to create payment record", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create payment record")
	}

	resp, err := h.client.PayByToken(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("PayByToken failed",
			zap.String("order_number", orderNumber),
			zap.Error(err))
		return gatewayErrorResponse(c, err)
	}

	h.applyPaymentResult(record, resp)
	if err := h.repos.Payment.Update(record); err != nil {
		h.logger.Error("Failed to update payment record",
			zap.String("order_number", orderNumber),
			zap.Error(err))
	}

	return successResponse(c, resp.Msg, h.paymentResult(record, resp))
}

// Refund refunds a captured payment, fully or partially.
// POST /api/payments/:order_number/refund
func (h *PaymentHandler) Refund(c echo.Context) error {
	orderNumber := c.Param("order_number")
	record, err := h.repos.Payment.FindByOrderNumber(orderNumber)
	if err != nil {
		return errorResponse(c, http.StatusNotFound, "Payment not found")
	}
	if record.RecTradeID == "" {
		return errorResponse(c, http.StatusConflict, "Payment has no gateway transaction")
	}

	body := make(map[string]interface{})
	if err := c.Bind(&body); err != nil && c.Request().ContentLength > 0 {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	req := &tappay.RefundRequest{
		RecTradeID:   record.RecTradeID,
		Amount:       getInt64PtrField(body, "amount"),
		BankRefundID: getStringField(body, "bank_refund_id"),
	}

	resp, err := h.client.Refund(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Refund failed",
			zap.String("rec_trade_id", record.RecTradeID),
			zap.Error(err))
		return gatewayErrorResponse(c, err)
	}

	if resp.IsSuccess() {
		record.Status = models.PaymentStatusRefunded
		record.RefundID = resp.RefundID
		if resp.RefundAmount != nil {
			record.RefundAmount = *resp.RefundAmount
		} else if req.Amount != nil {
			record.RefundAmount = *req.Amount
		} else {
			record.RefundAmount = record.Amount
		}
	}
	record.GatewayStatus = resp.Status
	record.GatewayMsg = resp.Msg
	if err := h.repos.Payment.Update(record); err != nil {
		h.logger.Error("Failed to update payment record",
			zap.String("order_number", orderNumber),
			zap.Error(err))
	}

	return successResponse(c, resp.Msg, map[string]interface{}{
		"order_number":  record.OrderNumber,
		"refund_id":     resp.RefundID,
		"refund_amount": record.RefundAmount,
		"status":        record.Status,
	})
}

// List returns local payment records with pagination.
// GET /api/payments
func (h *PaymentHandler) List(c echo.Context) error {
	limit := utils.ParseIntSafe(c.QueryParam("limit"))
	page := utils.ParseIntSafe(c.QueryParam("page"))
	status := c.QueryParam("status")
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if page <= 0 {
		page = 1
	}

	records, total, err := h.repos.Payment.FindAll(limit, page, status)
	if err != nil {
		h.logger.Error("Failed to list payments", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to retrieve payments")
	}

	return successResponse(c, "Successful", map[string]interface{}{
		"payments": records,
		"pagination": map[string]interface{}{
			"total":        total,
			"current_page": page,
			"per_page":     limit,
		},
	})
}

// QueryGatewayRecords pages through the gateway's own transaction records.
// POST /api/payments/query
func (h *PaymentHandler) QueryGatewayRecords(c echo.Context) error {
	body := make(map[string]interface{})
	if err := c.Bind(&body); err != nil && c.Request().ContentLength > 0 {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	req := tappay.NewRecordQueryRequest(tappay.RecordQueryRequest{
		RecordsPerPage: getIntField(body, "records_per_page", 0),
		Page:           getIntField(body, "page", 0),
		Filters:        getMapField(body, "filters"),
		OrderBy:        getMapField(body, "order_by"),
	})

	resp, err := h.client.QueryRecords(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Record query failed", zap.Error(err))
		return gatewayErrorResponse(c, err)
	}

	return successResponse(c, resp.Msg, map[string]interface{}{
		"page":          resp.Page,
		"has_more":      resp.HasMore(),
		"trade_records": resp.TradeRecords,
	})
}

func (h *PaymentHandler) applyPaymentResult(record *models.PaymentRecord, resp *tappay.PaymentResponse) {
	record.RecTradeID = resp.RecTradeID
	record.GatewayStatus = resp.Status
	record.GatewayMsg = resp.Msg
	record.AuthCode = resp.AuthCode
	if resp.IsSuccess() {
		record.Status = models.PaymentStatusPaid
	} else {
		record.Status = models.PaymentStatusFailed
	}
	if resp.CardSecret != nil {
		if key, ok := resp.CardSecret["card_key"].(string); ok {
			record.CardKey = key
		}
		if token, ok := resp.CardSecret["card_token"].(string); ok {
			record.CardToken = token
		}
	}
}

func (h *PaymentHandler) paymentResult(record *models.PaymentRecord, resp *tappay.PaymentResponse) map[string]interface{} {
	result := map[string]interface{}{
		"reference_id": record.ReferenceID,
		"order_number": record.OrderNumber,
		"rec_trade_id": resp.RecTradeID,
		"status":       record.Status,
		"amount":       record.Amount,
		"currency":     record.Currency,
		"auth_code":    resp.AuthCode,
	}
	// Card secret is returned once and never again; it is not persisted in
	// the API-visible record.
	if resp.CardSecret != nil {
		result["card_secret"] = resp.CardSecret
	}
	return result
}
