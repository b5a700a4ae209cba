package tappay

import "strings"

// Amount is the polymorphic amount input on payment requests: either a raw
// integer wire amount paired with a currency code, or a Money value that
// carries its own currency and scaling.
type Amount struct {
	money *Money
	raw   int64
}

// RawAmount wraps an integer wire amount. The currency comes from the
// request's Currency field, defaulting to TWD.
func RawAmount(v int64) Amount {
	return Amount{raw: v}
}

// MoneyAmount wraps a Money value. Its currency and API scaling win over any
// currency set on the request.
func MoneyAmount(m Money) Amount {
	return Amount{money: &m}
}

// resolveAmountAndCurrency computes the canonical (wire amount, currency)
// pair. Called once per request at construction; the result is cached on the
// request for its lifetime.
func resolveAmountAndCurrency(amount Amount, currency string) (int64, string) {
	if amount.money != nil {
		return amount.money.ToAPIAmount(), amount.money.Currency()
	}
	if currency == "" {
		currency = DomesticCurrency
	}
	return amount.raw, currency
}

// resolveResultURL turns either a ResultURL value or a loosely keyed map into
// a validated wire map. Both inputs nil means no result_url at all. The value
// form is validated for HTTPS; the map form is parsed (failing on missing
// mandatory URLs) and then validated.
func resolveResultURL(value *ResultURL, raw map[string]interface{}) (map[string]interface{}, error) {
	if value == nil && raw == nil {
		return nil, nil
	}

	resolved := value
	if resolved == nil {
		parsed, err := ResultURLFromMap(raw)
		if err != nil {
			return nil, err
		}
		resolved = parsed
	}

	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return resolved.ToPayload(), nil
}

// resolveCardholder turns either a Cardholder value or a loosely keyed map
// into a wire map, collapsing an all-empty cardholder to nil.
func resolveCardholder(value *Cardholder, raw map[string]interface{}) map[string]interface{} {
	if value != nil {
		return value.ToPayload()
	}
	if raw != nil {
		return CardholderFromMap(raw).ToPayload()
	}
	return nil
}

// validateThreeDomainSecure fails when 3D Secure is explicitly enabled but no
// result_url payload resolved. An unset or false flag never triggers this.
func validateThreeDomainSecure(flag *bool, resultURLPayload map[string]interface{}) error {
	if flag != nil && *flag && resultURLPayload == nil {
		return validationErr("result_url", "result_url is required when three_domain_secure is enabled")
	}
	return nil
}

// filterPayload strips entries whose value is nil, a string that is empty
// after trimming, or an empty map/slice. Zero and false survive so explicit
// flags like remember:false stay on the wire.
func filterPayload(payload map[string]interface{}) map[string]interface{} {
	filtered := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
		case map[string]interface{}:
			if len(v) == 0 {
				continue
			}
		case []interface{}:
			if len(v) == 0 {
				continue
			}
		}
		filtered[key] = value
	}
	return filtered
}

// optBool and friends lift optional fields into payload values without
// leaking typed-nil interfaces past filterPayload.

func optBool(p *bool) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func optInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func optInt64(p *int64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
