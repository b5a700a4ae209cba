package tappay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterPayload(t *testing.T) {
	remember := false
	filtered := filterPayload(map[string]interface{}{
		"kept_string":  "value",
		"kept_zero":    0,
		"kept_false":   optBool(&remember),
		"kept_int64":   int64(0),
		"nil_value":    nil,
		"empty_string": "",
		"blank_string": "   ",
		"empty_map":    map[string]interface{}{},
		"empty_slice":  []interface{}{},
		"kept_map":     map[string]interface{}{"a": 1},
	})

	assert.Equal(t, map[string]interface{}{
		"kept_string": "value",
		"kept_zero":   0,
		"kept_false":  false,
		"kept_int64":  int64(0),
		"kept_map":    map[string]interface{}{"a": 1},
	}, filtered)
}

func TestResolveAmountAndCurrencyMoneyWins(t *testing.T) {
	usd, err := USD(1.50)
	require.NoError(t, err)

	// The currency argument is ignored entirely when a Money is given.
	amount, currency := resolveAmountAndCurrency(MoneyAmount(usd), "JPY")
	assert.Equal(t, int64(150), amount)
	assert.Equal(t, "USD", currency)
}

func TestResolveAmountAndCurrencyRaw(t *testing.T) {
	amount, currency := resolveAmountAndCurrency(RawAmount(100), "")
	assert.Equal(t, int64(100), amount)
	assert.Equal(t, "TWD", currency)

	amount, currency = resolveAmountAndCurrency(RawAmount(500), "USD")
	assert.Equal(t, int64(500), amount)
	assert.Equal(t, "USD", currency)
}

func TestResolveResultURL(t *testing.T) {
	payload, err := resolveResultURL(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, payload)

	payload, err = resolveResultURL(&ResultURL{
		FrontendRedirectURL: "https://example.com/done",
		BackendNotifyURL:    "https://example.com/notify",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/done", payload["frontend_redirect_url"])

	payload, err = resolveResultURL(nil, map[string]interface{}{
		"frontend_redirect_url": "https://example.com/done",
		"backend_notify_url":    "https://example.com/notify",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/notify", payload["backend_notify_url"])
}

func TestResolveResultURLFailures(t *testing.T) {
	// Value form with a non-HTTPS URL.
	_, err := resolveResultURL(&ResultURL{
		FrontendRedirectURL: "http://example.com/done",
		BackendNotifyURL:    "https://example.com/notify",
	}, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	// Map form missing a mandatory URL.
	_, err = resolveResultURL(nil, map[string]interface{}{
		"frontend_redirect_url": "https://example.com/done",
	})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "backend_notify_url", verr.Field)

	// Map form parses but fails the HTTPS check.
	_, err = resolveResultURL(nil, map[string]interface{}{
		"frontend_redirect_url": "https://example.com/done",
		"backend_notify_url":    "http://example.com/notify",
	})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "backend_notify_url", verr.Field)
}

func TestValidateThreeDomainSecure(t *testing.T) {
	enabled := true
	disabled := false
	resultURL := map[string]interface{}{"frontend_redirect_url": "https://x"}

	assert.Error(t, validateThreeDomainSecure(&enabled, nil))
	assert.NoError(t, validateThreeDomainSecure(&enabled, resultURL))
	assert.NoError(t, validateThreeDomainSecure(&disabled, nil))
	assert.NoError(t, validateThreeDomainSecure(nil, nil))
}
