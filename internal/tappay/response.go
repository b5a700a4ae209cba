package tappay

import "strconv"

// Response DTOs decode whatever JSON object the gateway returned. Decoding is
// total: missing or mis-typed fields fall back to defaults instead of failing
// so that gateway response drift never crashes calling code. The full decoded
// map stays reachable through Raw, unrecognized keys included.

// PaymentResponse is the result of a prime or token payment.
type PaymentResponse struct {
	Status            int
	Msg               string
	RecTradeID        string
	BankTransactionID string
	BankOrderNumber   string
	AuthCode          string
	CardSecret        map[string]interface{}
	CardInfo          map[string]interface{}
	Amount            *int64
	Currency          string
	Raw               map[string]interface{}
}

// PaymentResponseFromMap decodes a raw gateway response. Never fails.
func PaymentResponseFromMap(data map[string]interface{}) *PaymentResponse {
	return &PaymentResponse{
		Status:            intField(data, "status", -1),
		Msg:               stringField(data, "msg"),
		RecTradeID:        stringField(data, "rec_trade_id"),
		BankTransactionID: stringField(data, "bank_transaction_id"),
		BankOrderNumber:   stringField(data, "bank_order_number"),
		AuthCode:          stringField(data, "auth_code"),
		CardSecret:        mapField(data, "card_secret"),
		CardInfo:          mapField(data, "card_info"),
		Amount:            optIntField(data, "amount"),
		Currency:          stringField(data, "currency"),
		Raw:               data,
	}
}

// IsSuccess reports whether the gateway accepted the payment (status 0).
func (r *PaymentResponse) IsSuccess() bool {
	return r.Status == 0
}

// RefundResponse is the result of a refund.
type RefundResponse struct {
	Status                int
	Msg                   string
	RefundID              string
	BankRefundOrderNumber string
	RefundAmount          *int64
	Currency              string
	IsCaptured            *bool
	Raw                   map[string]interface{}
}

// RefundResponseFromMap decodes a raw gateway response. Never fails.
func RefundResponseFromMap(data map[string]interface{}) *RefundResponse {
	return &RefundResponse{
		Status:                intField(data, "status", -1),
		Msg:                   stringField(data, "msg"),
		RefundID:              stringField(data, "refund_id"),
		BankRefundOrderNumber: stringField(data, "bank_refund_order_number"),
		RefundAmount:          optIntField(data, "refund_amount"),
		Currency:              stringField(data, "currency"),
		IsCaptured:            optBoolField(data, "is_captured"),
		Raw:                   data,
	}
}

// IsSuccess reports whether the refund succeeded (status 0).
func (r *RefundResponse) IsSuccess() bool {
	return r.Status == 0
}

// RecordQueryResponse is one page of transaction records.
type RecordQueryResponse struct {
	Status               int
	Msg                  string
	RecordsPerPage       int
	Page                 int
	TotalPageCount       *int
	NumberOfTransactions *int
	TradeRecords         []map[string]interface{}
	Raw                  map[string]interface{}
}

// RecordQueryResponseFromMap decodes a raw gateway response. Never fails.
func RecordQueryResponseFromMap(data map[string]interface{}) *RecordQueryResponse {
	return &RecordQueryResponse{
		Status:               intField(data, "status", -1),
		Msg:                  stringField(data, "msg"),
		RecordsPerPage:       intField(data, "records_per_page", 0),
		Page:                 intField(data, "page", 0),
		TotalPageCount:       optIntPtrField(data, "total_page_count"),
		NumberOfTransactions: optIntPtrField(data, "number_of_transactions"),
		TradeRecords:         recordsField(data, "trade_records"),
		Raw:                  data,
	}
}

// IsSuccess reports whether the query succeeded (status 0).
func (r *RecordQueryResponse) IsSuccess() bool {
	return r.Status == 0
}

// HasMore reports whether another page might exist. The gateway signals "no
// more records" with status 2 and nothing else; every other status, error
// statuses included, reads as "has more".
func (r *RecordQueryResponse) HasMore() bool {
	return r.Status != 2
}

// Checked extraction helpers. JSON numbers arrive as float64; numeric strings
// are tolerated the way the gateway occasionally sends them.

func intField(data map[string]interface{}, key string, fallback int) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func stringField(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func mapField(data map[string]interface{}, key string) map[string]interface{} {
	if m, ok := data[key].(map[string]interface{}); ok {
		return m
	}
	return nil
}

func optIntField(data map[string]interface{}, key string) *int64 {
	switch v := data[key].(type) {
	case float64:
		n := int64(v)
		return &n
	case int:
		n := int64(v)
		return &n
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

func optIntPtrField(data map[string]interface{}, key string) *int {
	if n := optIntField(data, key); n != nil {
		v := int(*n)
		return &v
	}
	return nil
}

func optBoolField(data map[string]interface{}, key string) *bool {
	if b, ok := data[key].(bool); ok {
		return &b
	}
	return nil
}

func recordsField(data map[string]interface{}, key string) []map[string]interface{} {
	items, ok := data[key].([]interface{})
	if !ok {
		return nil
	}
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records
}
