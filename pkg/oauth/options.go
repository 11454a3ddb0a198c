package oauth

import (
	"log/slog"
	"net/http"
)

// Option configures an OAuth engine.
type Option func(*options)

type options struct {
	httpClient               *http.Client
	logger                   *slog.Logger
	authorizationHeaderOnGET bool
}

// WithHTTPClient sets a custom HTTP client for OAuth requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, retries).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAuthorizationHeaderForGET makes Get send the access token in an
// Authorization header instead of the access_token query parameter.
func WithAuthorizationHeaderForGET(enabled bool) Option {
	return func(o *options) {
		o.authorizationHeaderOnGET = enabled
	}
}
