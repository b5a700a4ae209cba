package tappay

// TokenPaymentRequest charges a saved card using the card key/token pair
// returned by a prime payment made with remember:true.
type TokenPaymentRequest struct {
	CardKey           string
	CardToken         string
	Amount            Amount
	Currency          string
	Details           string
	OrderNumber       string
	BankTransactionID string
	ThreeDomainSecure *bool
	ResultURL         *ResultURL
	RawResultURL      map[string]interface{}
	MerchantID        string
	PartnerKey        string

	resolvedAmount   int64
	resolvedCurrency string
	resolved         bool
}

// NewTokenPaymentRequest finalizes a request, resolving the amount and
// currency exactly once.
func NewTokenPaymentRequest(req TokenPaymentRequest) *TokenPaymentRequest {
	req.resolve()
	return &req
}

func (r *TokenPaymentRequest) resolve() {
	if r.resolved {
		return
	}
	r.resolvedAmount, r.resolvedCurrency = resolveAmountAndCurrency(r.Amount, r.Currency)
	r.resolved = true
}

// ToPayload validates the request and renders the canonical field map for
// /tpc/payment/pay-by-token.
func (r *TokenPaymentRequest) ToPayload(cfg ClientConfig) (map[string]interface{}, error) {
	r.resolve()

	partnerKey := r.PartnerKey
	if partnerKey == "" {
		partnerKey = cfg.PartnerKey()
	}
	merchantID := r.MerchantID
	if merchantID == "" {
		merchantID = cfg.MerchantID()
	}

	if r.CardKey == "" {
		return nil, validationErr("card_key", "card key is required")
	}
	if r.CardToken == "" {
		return nil, validationErr("card_token", "card token is required")
	}
	if partnerKey == "" {
		return nil, validationErr("partner_key", "partner key is required")
	}
	if merchantID == "" {
		return nil, validationErr("merchant_id", "merchant ID is required")
	}
	if r.resolvedAmount <= 0 {
		return nil, validationErr("amount", "amount must be greater than zero")
	}

	resultURLPayload, err := resolveResultURL(r.ResultURL, r.RawResultURL)
	if err != nil {
		return nil, err
	}
	if err := validateThreeDomainSecure(r.ThreeDomainSecure, resultURLPayload); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"card_key":            r.CardKey,
		"card_token":          r.CardToken,
		"partner_key":         partnerKey,
		"merchant_id":         merchantID,
		"amount":              r.resolvedAmount,
		"currency":            r.resolvedCurrency,
		"details":             r.Details,
		"order_number":        r.OrderNumber,
		"bank_transaction_id": r.BankTransactionID,
		"three_domain_secure": optBool(r.ThreeDomainSecure),
		"result_url":          resultURLPayload,
	}

	return filterPayload(payload), nil
}
