package tappay

import "strings"

// Cardholder holds optional buyer metadata used by the gateway for fraud
// detection and 3D Secure risk checks. Every field may be left empty.
type Cardholder struct {
	PhoneNumber string
	Name        string
	Email       string
	ZipCode     string
	Address     string
	NationalID  string
}

// CardholderFromMap builds a Cardholder from a loosely keyed map, accepting
// both snake_case and camelCase keys.
func CardholderFromMap(data map[string]interface{}) *Cardholder {
	return &Cardholder{
		PhoneNumber: stringFromKeys(data, "phone_number", "phoneNumber"),
		Name:        stringFromKeys(data, "name"),
		Email:       stringFromKeys(data, "email"),
		ZipCode:     stringFromKeys(data, "zip_code", "zipCode"),
		Address:     stringFromKeys(data, "address"),
		NationalID:  stringFromKeys(data, "national_id", "nationalId"),
	}
}

// ToPayload renders the wire map, dropping empty fields. Returns nil when
// every field is empty so the cardholder is absent from the request instead
// of an empty object.
func (c *Cardholder) ToPayload() map[string]interface{} {
	if c == nil {
		return nil
	}

	payload := make(map[string]interface{}, 6)
	put := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			payload[key] = value
		}
	}
	put("phone_number", c.PhoneNumber)
	put("name", c.Name)
	put("email", c.Email)
	put("zip_code", c.ZipCode)
	put("address", c.Address)
	put("national_id", c.NationalID)

	if len(payload) == 0 {
		return nil
	}
	return payload
}

// IsEmpty reports whether no cardholder information is provided.
func (c *Cardholder) IsEmpty() bool {
	return c.ToPayload() == nil
}
