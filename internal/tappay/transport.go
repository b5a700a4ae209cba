package tappay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paybridge/internal/pkg/httpclient"
)

// RawResponse is the minimal HTTP response surface the client needs.
type RawResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Transport performs a single synchronous HTTP exchange with the gateway.
// Implementations return a TransportError with Kind connect when the exchange
// never completes (DNS, connect, timeout); HTTP error statuses are returned
// as a RawResponse and classified by the Client. Implementations must be safe
// for concurrent use if the Client is shared.
type Transport interface {
	Do(ctx context.Context, method, url string, headers map[string]string, body map[string]interface{}) (*RawResponse, error)
}

// RestyTransport is the reference Transport over the shared resty wrapper.
// Retries stay disabled: the client performs no automatic retry by contract.
type RestyTransport struct {
	client *httpclient.Client
}

// NewRestyTransport creates a transport with a 10 second timeout.
func NewRestyTransport() *RestyTransport {
	return &RestyTransport{
		client: httpclient.New().
			WithTimeout(10 * time.Second).
			WithoutRetries(),
	}
}

// NewRestyTransportWith wraps an existing shared client.
func NewRestyTransportWith(client *httpclient.Client) *RestyTransport {
	return &RestyTransport{client: client}
}

func (t *RestyTransport) Do(ctx context.Context, method, url string, headers map[string]string, body map[string]interface{}) (*RawResponse, error) {
	req := t.client.Request().SetContext(ctx)
	for key, value := range headers {
		req.SetHeader(key, value)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(strings.ToUpper(method), url)
	if err != nil {
		return nil, &TransportError{
			Kind:    TransportConnect,
			Message: fmt.Sprintf("failed to connect to %s", url),
			Err:     err,
		}
	}

	return &RawResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    flattenHeaders(resp.Header()),
	}, nil
}

// HTTPTransport adapts a plain *http.Client to the Transport contract.
// Functionally interchangeable with RestyTransport.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps the given client, or a default one with a 10 second
// timeout when nil.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPTransport{client: client}
}

func (t *HTTPTransport) Do(ctx context.Context, method, url string, headers map[string]string, body map[string]interface{}) (*RawResponse, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{
			Kind:    TransportConnect,
			Message: fmt.Sprintf("failed to connect to %s", url),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			Kind:       TransportConnect,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response body",
			Err:        err,
		}
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Body:       raw,
		Headers:    flattenHeaders(resp.Header),
	}, nil
}

func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for name, values := range header {
		if len(values) > 0 {
			flat[name] = values[0]
		}
	}
	return flat
}
