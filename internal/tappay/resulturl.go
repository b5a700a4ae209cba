package tappay

import "strings"

// ResultURL carries the callback URLs required for 3D Secure and other
// redirect-based flows. GoBackURL is optional.
type ResultURL struct {
	FrontendRedirectURL string
	BackendNotifyURL    string
	GoBackURL           string
}

// ResultURLFromMap builds a ResultURL from a loosely keyed map, accepting both
// snake_case and camelCase keys. The two mandatory URLs must be non-empty;
// HTTPS is not checked here, callers needing it must also call Validate.
func ResultURLFromMap(data map[string]interface{}) (*ResultURL, error) {
	frontend := stringFromKeys(data, "frontend_redirect_url", "frontendRedirectUrl")
	backend := stringFromKeys(data, "backend_notify_url", "backendNotifyUrl")
	goBack := stringFromKeys(data, "go_back_url", "goBackUrl")

	if frontend == "" {
		return nil, validationErr("frontend_redirect_url", "frontend_redirect_url is required")
	}
	if backend == "" {
		return nil, validationErr("backend_notify_url", "backend_notify_url is required")
	}

	return &ResultURL{
		FrontendRedirectURL: frontend,
		BackendNotifyURL:    backend,
		GoBackURL:           goBack,
	}, nil
}

// Validate fails with a ValidationError naming the first present URL that
// does not use HTTPS.
func (u *ResultURL) Validate() error {
	if !strings.HasPrefix(u.FrontendRedirectURL, "https://") {
		return validationErr("frontend_redirect_url", "frontend_redirect_url must use HTTPS")
	}
	if !strings.HasPrefix(u.BackendNotifyURL, "https://") {
		return validationErr("backend_notify_url", "backend_notify_url must use HTTPS")
	}
	if u.GoBackURL != "" && !strings.HasPrefix(u.GoBackURL, "https://") {
		return validationErr("go_back_url", "go_back_url must use HTTPS")
	}
	return nil
}

// ToPayload renders the wire map. go_back_url is omitted when unset.
func (u *ResultURL) ToPayload() map[string]interface{} {
	payload := map[string]interface{}{
		"frontend_redirect_url": u.FrontendRedirectURL,
		"backend_notify_url":    u.BackendNotifyURL,
	}
	if u.GoBackURL != "" {
		payload["go_back_url"] = u.GoBackURL
	}
	return payload
}

// stringFromKeys returns the first non-empty string value among the given
// keys.
func stringFromKeys(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
