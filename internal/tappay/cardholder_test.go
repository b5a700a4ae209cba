package tappay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardholderToPayload(t *testing.T) {
	c := &Cardholder{
		PhoneNumber: "+886912345678",
		Name:        "Wang Xiaoming",
		Email:       "test@example.com",
		ZipCode:     "100",
		Address:     "Taipei",
		NationalID:  "A123456789",
	}

	payload := c.ToPayload()
	require.NotNil(t, payload)
	assert.Equal(t, "+886912345678", payload["phone_number"])
	assert.Equal(t, "Wang Xiaoming", payload["name"])
	assert.Equal(t, "test@example.com", payload["email"])
	assert.Equal(t, "100", payload["zip_code"])
	assert.Equal(t, "Taipei", payload["address"])
	assert.Equal(t, "A123456789", payload["national_id"])
}

func TestCardholderPartialPayload(t *testing.T) {
	c := &Cardholder{
		PhoneNumber: "+886912345678",
		Name:        "Test User",
	}

	payload := c.ToPayload()
	assert.Len(t, payload, 2)
	assert.Contains(t, payload, "phone_number")
	assert.Contains(t, payload, "name")
	assert.NotContains(t, payload, "email")
}

func TestCardholderEmpty(t *testing.T) {
	c := &Cardholder{}
	assert.Nil(t, c.ToPayload())
	assert.True(t, c.IsEmpty())

	// Whitespace-only fields count as empty too.
	c = &Cardholder{Name: "  "}
	assert.Nil(t, c.ToPayload())
	assert.True(t, c.IsEmpty())

	var nilCardholder *Cardholder
	assert.True(t, nilCardholder.IsEmpty())
}

func TestCardholderFromMap(t *testing.T) {
	c := CardholderFromMap(map[string]interface{}{
		"phone_number": "+886912345678",
		"name":         "Test User",
		"email":        "test@example.com",
	})
	assert.Equal(t, "+886912345678", c.PhoneNumber)
	assert.Equal(t, "Test User", c.Name)
	assert.Equal(t, "test@example.com", c.Email)
}

func TestCardholderFromMapCamelCase(t *testing.T) {
	c := CardholderFromMap(map[string]interface{}{
		"phoneNumber": "+886912345678",
		"zipCode":     "100",
		"nationalId":  "A123456789",
	})
	assert.Equal(t, "+886912345678", c.PhoneNumber)
	assert.Equal(t, "100", c.ZipCode)
	assert.Equal(t, "A123456789", c.NationalID)
}
