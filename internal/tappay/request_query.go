package tappay

// DefaultRecordsPerPage is the page size used when none is given.
const DefaultRecordsPerPage = 50

// RecordQueryRequest pages through the merchant's transaction records.
// Filters and OrderBy are passed to the gateway as-is.
type RecordQueryRequest struct {
	PartnerKey     string
	RecordsPerPage int
	Page           int
	Filters        map[string]interface{}
	OrderBy        map[string]interface{}
	MerchantID     string
}

// NewRecordQueryRequest finalizes a query request, applying the default page
// size when none is set.
func NewRecordQueryRequest(req RecordQueryRequest) *RecordQueryRequest {
	if req.RecordsPerPage == 0 {
		req.RecordsPerPage = DefaultRecordsPerPage
	}
	return &req
}

// ToPayload validates the request and renders the canonical field map for
// /tpc/transaction/query. The effective merchant ID is injected into the
// filters map unless the caller already set one there.
func (r *RecordQueryRequest) ToPayload(cfg ClientConfig) (map[string]interface{}, error) {
	partnerKey := r.PartnerKey
	if partnerKey == "" {
		partnerKey = cfg.PartnerKey()
	}

	if partnerKey == "" {
		return nil, validationErr("partner_key", "partner key is required")
	}
	if r.RecordsPerPage < 1 || r.RecordsPerPage > 200 {
		return nil, validationErr("records_per_page", "records_per_page must be between 1 and 200")
	}
	if r.Page < 0 {
		return nil, validationErr("page", "page cannot be negative")
	}

	filters := make(map[string]interface{}, len(r.Filters)+1)
	for key, value := range r.Filters {
		filters[key] = value
	}
	merchantID := r.MerchantID
	if merchantID == "" {
		merchantID = cfg.MerchantID()
	}
	if merchantID != "" {
		if _, ok := filters["merchant_id"]; !ok {
			filters["merchant_id"] = merchantID
		}
	}

	payload := map[string]interface{}{
		"partner_key":      partnerKey,
		"records_per_page": r.RecordsPerPage,
		"page":             r.Page,
		"filters":          filters,
		"order_by":         r.OrderBy,
	}

	return filterPayload(payload), nil
}
