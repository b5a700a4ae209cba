package tappay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyToAPIAmount(t *testing.T) {
	cases := []struct {
		name     string
		amount   float64
		currency string
		want     int64
	}{
		{"domestic passes through", 100, "TWD", 100},
		{"zero-decimal passes through", 1000, "JPY", 1000},
		{"KRW passes through", 50000, "KRW", 50000},
		{"USD scales by 100", 1.50, "USD", 150},
		{"EUR scales by 100", 19.99, "EUR", 1999},
		{"GBP rounds to nearest", 10.999, "GBP", 1100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMoney(tc.amount, tc.currency)
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.ToAPIAmount())
		})
	}
}

func TestMoneyNegativeAmount(t *testing.T) {
	_, err := NewMoney(-1, "TWD")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)
}

func TestMoneyOfUppercasesCurrency(t *testing.T) {
	m, err := MoneyOf(1.5, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency())
	assert.Equal(t, int64(150), m.ToAPIAmount())
}

func TestMoneyDefaultCurrency(t *testing.T) {
	m, err := NewMoney(100, "")
	require.NoError(t, err)
	assert.Equal(t, "TWD", m.Currency())
}

func TestMoneyFormat(t *testing.T) {
	twd, err := TWD(100)
	require.NoError(t, err)
	assert.Equal(t, "TWD 100", twd.Format())

	jpy, err := JPY(1000)
	require.NoError(t, err)
	assert.Equal(t, "JPY 1000", jpy.Format())

	usd, err := USD(1.5)
	require.NoError(t, err)
	assert.Equal(t, "USD 1.50", usd.Format())

	eur, err := EUR(9.9)
	require.NoError(t, err)
	assert.Equal(t, "EUR 9.90", eur.String())
}

func TestMoneyPredicates(t *testing.T) {
	zero, err := TWD(0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
	assert.Error(t, zero.EnsurePositive())

	positive, err := TWD(1)
	require.NoError(t, err)
	assert.False(t, positive.IsZero())
	assert.True(t, positive.IsPositive())
	assert.NoError(t, positive.EnsurePositive())
}
