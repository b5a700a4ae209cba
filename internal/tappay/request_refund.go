package tappay

// RefundRequest refunds a captured transaction. A nil Amount means a full
// refund; a supplied amount must be positive.
type RefundRequest struct {
	RecTradeID   string
	Amount       *int64
	BankRefundID string
	PartnerKey   string
}

// ToPayload validates the request and renders the canonical field map for
// /tpc/transaction/refund.
func (r *RefundRequest) ToPayload(cfg ClientConfig) (map[string]interface{}, error) {
	partnerKey := r.PartnerKey
	if partnerKey == "" {
		partnerKey = cfg.PartnerKey()
	}

	if r.RecTradeID == "" {
		return nil, validationErr("rec_trade_id", "rec_trade_id is required")
	}
	if partnerKey == "" {
		return nil, validationErr("partner_key", "partner key is required")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return nil, validationErr("amount", "refund amount must be greater than zero when provided")
	}

	payload := map[string]interface{}{
		"rec_trade_id":   r.RecTradeID,
		"partner_key":    partnerKey,
		"amount":         optInt64(r.Amount),
		"bank_refund_id": r.BankRefundID,
	}

	return filterPayload(payload), nil
}
