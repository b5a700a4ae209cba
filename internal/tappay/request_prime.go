package tappay

// PrimePaymentRequest charges a one-time prime token obtained from the
// frontend SDK.
//
// Cardholder and ResultURL each accept either the typed value or a loosely
// keyed Raw map; when both are set the typed value wins. MerchantID and
// PartnerKey override the ClientConfig defaults for this call only.
type PrimePaymentRequest struct {
	Prime              string
	Amount             Amount
	Currency           string
	Details            string
	OrderNumber        string
	BankTransactionID  string
	Cardholder         *Cardholder
	RawCardholder      map[string]interface{}
	Remember           *bool
	Instalment         *int
	DelayCaptureInDays *int
	ThreeDomainSecure  *bool
	ResultURL          *ResultURL
	RawResultURL       map[string]interface{}
	MerchantID         string
	PartnerKey         string

	resolvedAmount   int64
	resolvedCurrency string
	resolved         bool
}

// NewPrimePaymentRequest finalizes a request, resolving the amount and
// currency exactly once. The resolved pair never diverges from the inputs
// even if payload building runs more than once.
func NewPrimePaymentRequest(req PrimePaymentRequest) *PrimePaymentRequest {
	req.resolve()
	return &req
}

func (r *PrimePaymentRequest) resolve() {
	if r.resolved {
		return
	}
	r.resolvedAmount, r.resolvedCurrency = resolveAmountAndCurrency(r.Amount, r.Currency)
	r.resolved = true
}

// ToPayload validates the request against the wire contract and renders the
// canonical field map for /tpc/payment/pay-by-prime.
func (r *PrimePaymentRequest) ToPayload(cfg ClientConfig) (map[string]interface{}, error) {
	r.resolve()

	partnerKey := r.PartnerKey
	if partnerKey == "" {
		partnerKey = cfg.PartnerKey()
	}
	merchantID := r.MerchantID
	if merchantID == "" {
		merchantID = cfg.MerchantID()
	}

	if r.Prime == "" {
		return nil, validationErr("prime", "prime is required")
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

	cardholderPayload := resolveCardholder(r.Cardholder, r.RawCardholder)

	resultURLPayload, err := resolveResultURL(r.ResultURL, r.RawResultURL)
	if err != nil {
		return nil, err
	}
	if err := validateThreeDomainSecure(r.ThreeDomainSecure, resultURLPayload); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"prime":                 r.Prime,
		"partner_key":           partnerKey,
		"merchant_id":           merchantID,
		"amount":                r.resolvedAmount,
		"currency":              r.resolvedCurrency,
		"details":               r.Details,
		"order_number":          r.OrderNumber,
		"bank_transaction_id":   r.BankTransactionID,
		"cardholder":            cardholderPayload,
		"remember":              optBool(r.Remember),
		"instalment":            optInt(r.Instalment),
		"delay_capture_in_days": optInt(r.DelayCaptureInDays),
		"three_domain_secure":   optBool(r.ThreeDomainSecure),
		"result_url":            resultURLPayload,
	}

	return filterPayload(payload), nil
}
