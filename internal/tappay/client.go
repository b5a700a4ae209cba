package tappay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// API sub-paths, fixed by the gateway.
const (
	payByPrimePath = "/tpc/payment/pay-by-prime"
	payByTokenPath = "/tpc/payment/pay-by-token"
	refundPath     = "/tpc/transaction/refund"
	queryPath      = "/tpc/transaction/query"
)

// Client is the backend gateway client: it builds request payloads, sends
// them through the Transport, and decodes typed responses. Each operation
// performs at most one outbound call and holds no state across calls, so a
// Client may be shared as long as its Transport is.
type Client struct {
	config    ClientConfig
	transport Transport
}

// NewClient creates a Client. A nil transport falls back to the resty
// reference transport.
func NewClient(config ClientConfig, transport Transport) *Client {
	if transport == nil {
		transport = NewRestyTransport()
	}
	return &Client{config: config, transport: transport}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() ClientConfig {
	return c.config
}

// PayByPrime charges a one-time prime token.
func (c *Client) PayByPrime(ctx context.Context, req *PrimePaymentRequest) (*PaymentResponse, error) {
	payload, err := req.ToPayload(c.config)
	if err != nil {
		return nil, err
	}
	data, err := c.postJSON(ctx, payByPrimePath, payload)
	if err != nil {
		return nil, err
	}
	return PaymentResponseFromMap(data), nil
}

// PayByToken charges a saved card.
func (c *Client) PayByToken(ctx context.Context, req *TokenPaymentRequest) (*PaymentResponse, error) {
	payload, err := req.ToPayload(c.config)
	if err != nil {
		return nil, err
	}
	data, err := c.postJSON(ctx, payByTokenPath, payload)
	if err != nil {
		return nil, err
	}
	return PaymentResponseFromMap(data), nil
}

// Refund refunds a captured transaction, fully or partially.
func (c *Client) Refund(ctx context.Context, req *RefundRequest) (*RefundResponse, error) {
	payload, err := req.ToPayload(c.config)
	if err != nil {
		return nil, err
	}
	data, err := c.postJSON(ctx, refundPath, payload)
	if err != nil {
		return nil, err
	}
	return RefundResponseFromMap(data), nil
}

// QueryRecords fetches one page of transaction records.
func (c *Client) QueryRecords(ctx context.Context, req *RecordQueryRequest) (*RecordQueryResponse, error) {
	payload, err := req.ToPayload(c.config)
	if err != nil {
		return nil, err
	}
	data, err := c.postJSON(ctx, queryPath, payload)
	if err != nil {
		return nil, err
	}
	return RecordQueryResponseFromMap(data), nil
}

// postJSON sends one request and classifies the outcome. The x-api-key header
// carries the partner key the payload actually resolved, which may be a
// per-call override rather than the config default.
func (c *Client) postJSON(ctx context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error) {
	partnerKey, _ := payload["partner_key"].(string)
	headers := map[string]string{
		"Content-Type": "application/json",
		"x-api-key":    partnerKey,
	}

	resp, err := c.transport.Do(ctx, http.MethodPost, c.config.BaseURI()+path, headers, payload)
	if err != nil {
		return nil, err
	}
	return decodeResponse(resp)
}

// decodeResponse classifies the HTTP status in priority order, then decodes
// the body into a JSON object.
func decodeResponse(resp *RawResponse) (map[string]interface{}, error) {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &SignatureError{Message: "invalid x-api-key signature"}
	case resp.StatusCode >= 500:
		return nil, &TransportError{
			Kind:       TransportServer,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			Message:    fmt.Sprintf("gateway unavailable (HTTP %d)", resp.StatusCode),
		}
	case resp.StatusCode >= 400:
		return nil, &TransportError{
			Kind:       TransportClient,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			Message:    fmt.Sprintf("HTTP error %d returned by gateway", resp.StatusCode),
		}
	}

	var decoded interface{}
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, &TransportError{
			Kind:       TransportDecode,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			Message:    "unable to decode gateway response",
			Err:        err,
		}
	}

	object, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, &TransportError{
			Kind:       TransportDecode,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			Message:    "unable to decode gateway response: decoded JSON is not an object",
		}
	}

	return object, nil
}
