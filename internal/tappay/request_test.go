package tappay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) ClientConfig {
	t.Helper()
	cfg, err := NewClientConfig("pk", "m1", "")
	require.NoError(t, err)
	return cfg
}

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, field, verr.Field)
}

func TestPrimePaymentMinimalPayload(t *testing.T) {
	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:  "tok_1",
		Amount: RawAmount(100),
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"prime":       "tok_1",
		"partner_key": "pk",
		"merchant_id": "m1",
		"amount":      int64(100),
		"currency":    "TWD",
	}, payload)
}

func TestPrimePaymentFullPayload(t *testing.T) {
	remember := true
	instalment := 3
	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:       "tok_1",
		Amount:      RawAmount(500),
		Currency:    "USD",
		Details:     "order details",
		OrderNumber: "ORD-1",
		Cardholder:  &Cardholder{Name: "Test User", Email: "test@example.com"},
		Remember:    &remember,
		Instalment:  &instalment,
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "USD", payload["currency"])
	assert.Equal(t, "order details", payload["details"])
	assert.Equal(t, "ORD-1", payload["order_number"])
	assert.Equal(t, true, payload["remember"])
	assert.Equal(t, 3, payload["instalment"])
	assert.Equal(t, map[string]interface{}{
		"name":  "Test User",
		"email": "test@example.com",
	}, payload["cardholder"])
}

func TestPrimePaymentWithMoney(t *testing.T) {
	usd, err := USD(1.50)
	require.NoError(t, err)

	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:    "tok_1",
		Amount:   MoneyAmount(usd),
		Currency: "JPY", // ignored, the Money's currency wins
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, int64(150), payload["amount"])
	assert.Equal(t, "USD", payload["currency"])
}

func TestPrimePaymentExplicitFalseRememberKept(t *testing.T) {
	remember := false
	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:    "tok_1",
		Amount:   RawAmount(100),
		Remember: &remember,
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, false, payload["remember"])
}

func TestPrimePaymentRequiredFields(t *testing.T) {
	req := NewPrimePaymentRequest(PrimePaymentRequest{Amount: RawAmount(100)})
	_, err := req.ToPayload(testConfig(t))
	requireValidationField(t, err, "prime")

	req = NewPrimePaymentRequest(PrimePaymentRequest{Prime: "tok_1", Amount: RawAmount(0)})
	_, err = req.ToPayload(testConfig(t))
	requireValidationField(t, err, "amount")

	empty := ClientConfig{}
	req = NewPrimePaymentRequest(PrimePaymentRequest{Prime: "tok_1", Amount: RawAmount(100)})
	_, err = req.ToPayload(empty)
	requireValidationField(t, err, "partner_key")
}

func TestPrimePaymentThreeDomainSecureRequiresResultURL(t *testing.T) {
	enabled := true
	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:             "tok_1",
		Amount:            RawAmount(100),
		ThreeDomainSecure: &enabled,
	})

	_, err := req.ToPayload(testConfig(t))
	requireValidationField(t, err, "result_url")

	req = NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:             "tok_1",
		Amount:            RawAmount(100),
		ThreeDomainSecure: &enabled,
		ResultURL: &ResultURL{
			FrontendRedirectURL: "https://example.com/done",
			BackendNotifyURL:    "https://example.com/notify",
		},
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, true, payload["three_domain_secure"])
	assert.Equal(t, map[string]interface{}{
		"frontend_redirect_url": "https://example.com/done",
		"backend_notify_url":    "https://example.com/notify",
	}, payload["result_url"])
}

func TestPrimePaymentCredentialOverrides(t *testing.T) {
	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:      "tok_1",
		Amount:     RawAmount(100),
		PartnerKey: "override-pk",
		MerchantID: "override-m",
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "override-pk", payload["partner_key"])
	assert.Equal(t, "override-m", payload["merchant_id"])
}

func TestPrimePaymentRawCardholder(t *testing.T) {
	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:  "tok_1",
		Amount: RawAmount(100),
		RawCardholder: map[string]interface{}{
			"phoneNumber": "+886912345678",
			"name":        "Test User",
		},
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"phone_number": "+886912345678",
		"name":         "Test User",
	}, payload["cardholder"])
}

func TestPrimePaymentEmptyCardholderAbsent(t *testing.T) {
	req := NewPrimePaymentRequest(PrimePaymentRequest{
		Prime:      "tok_1",
		Amount:     RawAmount(100),
		Cardholder: &Cardholder{},
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.NotContains(t, payload, "cardholder")
}

func TestTokenPaymentPayload(t *testing.T) {
	req := NewTokenPaymentRequest(TokenPaymentRequest{
		CardKey:   "key_1",
		CardToken: "token_1",
		Amount:    RawAmount(200),
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"card_key":    "key_1",
		"card_token":  "token_1",
		"partner_key": "pk",
		"merchant_id": "m1",
		"amount":      int64(200),
		"currency":    "TWD",
	}, payload)
}

func TestTokenPaymentRequiredFields(t *testing.T) {
	req := NewTokenPaymentRequest(TokenPaymentRequest{CardToken: "token_1", Amount: RawAmount(100)})
	_, err := req.ToPayload(testConfig(t))
	requireValidationField(t, err, "card_key")

	req = NewTokenPaymentRequest(TokenPaymentRequest{CardKey: "key_1", Amount: RawAmount(100)})
	_, err = req.ToPayload(testConfig(t))
	requireValidationField(t, err, "card_token")
}

func TestRefundFullRefundOmitsAmount(t *testing.T) {
	req := &RefundRequest{RecTradeID: "D2020"}

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"rec_trade_id": "D2020",
		"partner_key":  "pk",
	}, payload)
}

func TestRefundPartialAmount(t *testing.T) {
	amount := int64(50)
	req := &RefundRequest{RecTradeID: "D2020", Amount: &amount, BankRefundID: "BR-1"}

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, int64(50), payload["amount"])
	assert.Equal(t, "BR-1", payload["bank_refund_id"])
}

func TestRefundValidation(t *testing.T) {
	req := &RefundRequest{}
	_, err := req.ToPayload(testConfig(t))
	requireValidationField(t, err, "rec_trade_id")

	zero := int64(0)
	req = &RefundRequest{RecTradeID: "D2020", Amount: &zero}
	_, err = req.ToPayload(testConfig(t))
	requireValidationField(t, err, "amount")
}

func TestRecordQueryDefaults(t *testing.T) {
	req := NewRecordQueryRequest(RecordQueryRequest{})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, 50, payload["records_per_page"])
	assert.Equal(t, 0, payload["page"])
	assert.Equal(t, map[string]interface{}{"merchant_id": "m1"}, payload["filters"])
	assert.NotContains(t, payload, "order_by")
}

func TestRecordQueryPreservesCallerMerchantFilter(t *testing.T) {
	req := NewRecordQueryRequest(RecordQueryRequest{
		Filters: map[string]interface{}{"merchant_id": "other"},
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	filters := payload["filters"].(map[string]interface{})
	assert.Equal(t, "other", filters["merchant_id"])
}

func TestRecordQueryDoesNotMutateCallerFilters(t *testing.T) {
	callerFilters := map[string]interface{}{"bank_transaction_id": "B1"}
	req := NewRecordQueryRequest(RecordQueryRequest{Filters: callerFilters})

	_, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.NotContains(t, callerFilters, "merchant_id")
}

func TestRecordQueryValidation(t *testing.T) {
	req := NewRecordQueryRequest(RecordQueryRequest{RecordsPerPage: 201})
	_, err := req.ToPayload(testConfig(t))
	requireValidationField(t, err, "records_per_page")

	req = NewRecordQueryRequest(RecordQueryRequest{RecordsPerPage: -1})
	_, err = req.ToPayload(testConfig(t))
	requireValidationField(t, err, "records_per_page")

	req = NewRecordQueryRequest(RecordQueryRequest{Page: -1})
	_, err = req.ToPayload(testConfig(t))
	requireValidationField(t, err, "page")
}

func TestRecordQueryOrderByPassedThrough(t *testing.T) {
	req := NewRecordQueryRequest(RecordQueryRequest{
		OrderBy: map[string]interface{}{"attribute": "time", "is_descending": true},
	})

	payload, err := req.ToPayload(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"attribute":     "time",
		"is_descending": true,
	}, payload["order_by"])
}
