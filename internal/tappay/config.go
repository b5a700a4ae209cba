package tappay

import "strings"

// Environment selects a gateway endpoint.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"

	SandboxBaseURI    = "https://sandbox.tappaysdk.com"
	ProductionBaseURI = "https://prod.tappaysdk.com"
)

// BaseURI returns the endpoint for the environment. Anything that is not
// production resolves to the sandbox.
func (e Environment) BaseURI() string {
	if e == EnvironmentProduction {
		return ProductionBaseURI
	}
	return SandboxBaseURI
}

// ClientConfig holds the credentials and endpoint for one gateway merchant.
// Immutable once constructed.
type ClientConfig struct {
	partnerKey string
	merchantID string
	baseURI    string
}

// NewClientConfig validates and builds a ClientConfig. An empty baseURI
// defaults to the sandbox endpoint; a trailing slash is stripped.
func NewClientConfig(partnerKey, merchantID, baseURI string) (ClientConfig, error) {
	if baseURI == "" {
		baseURI = SandboxBaseURI
	}
	baseURI = strings.TrimRight(baseURI, "/")

	if partnerKey == "" {
		return ClientConfig{}, validationErr("partner_key", "partner key is required")
	}
	if merchantID == "" {
		return ClientConfig{}, validationErr("merchant_id", "merchant ID is required")
	}
	if baseURI == "" {
		return ClientConfig{}, validationErr("base_uri", "base URI is required")
	}

	return ClientConfig{
		partnerKey: partnerKey,
		merchantID: merchantID,
		baseURI:    baseURI,
	}, nil
}

// NewClientConfigForEnvironment builds a ClientConfig pointed at the named
// environment's endpoint.
func NewClientConfigForEnvironment(partnerKey, merchantID string, env Environment) (ClientConfig, error) {
	return NewClientConfig(partnerKey, merchantID, env.BaseURI())
}

// PartnerKey returns the partner key.
func (c ClientConfig) PartnerKey() string {
	return c.partnerKey
}

// MerchantID returns the merchant ID.
func (c ClientConfig) MerchantID() string {
	return c.merchantID
}

// BaseURI returns the base URI without a trailing slash.
func (c ClientConfig) BaseURI() string {
	return c.baseURI
}
