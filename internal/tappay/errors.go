package tappay

import "fmt"

// ValidationError reports request data that fails the gateway contract before
// anything is sent over the wire. Field carries the offending payload field
// name where known.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// SignatureError means the gateway rejected the x-api-key (HTTP 401/403).
// Retrying without changing credentials is pointless.
type SignatureError struct {
	Message string
}

func (e *SignatureError) Error() string {
	if e.Message == "" {
		return "invalid x-api-key signature"
	}
	return e.Message
}

// TransportKind tags the failure class of a TransportError.
type TransportKind string

const (
	// TransportConnect: the HTTP exchange never completed (DNS, connect, timeout).
	TransportConnect TransportKind = "connect"
	// TransportClient: the gateway answered with a 4xx other than 401/403.
	TransportClient TransportKind = "client"
	// TransportServer: the gateway answered with a 5xx.
	TransportServer TransportKind = "server"
	// TransportDecode: the response body was not a JSON object.
	TransportDecode TransportKind = "decode"
)

// TransportError covers connection failures, HTTP error statuses, and
// undecodable responses. StatusCode and Body carry the raw exchange for
// diagnostics; both are zero/empty for connect failures.
type TransportError struct {
	Kind       TransportKind
	StatusCode int
	Body       string
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
