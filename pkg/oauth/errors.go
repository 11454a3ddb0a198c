package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrMissingAuthorizationURL is returned when no authorization endpoint is configured.
	ErrMissingAuthorizationURL = errors.New("oauth: missing authorization URL")

	// ErrMissingTokenURL is returned when no token endpoint is configured.
	ErrMissingTokenURL = errors.New("oauth: missing token URL")

	// ErrRequestFailed is returned when the OAuth provider returns a non-2xx status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrTokenExchange is returned when trading the authorization code for a token fails.
	ErrTokenExchange = errors.New("oauth: failed to obtain access token")

	// ErrInvalidState is returned when the callback state does not match the
	// value issued at the start of the handshake.
	ErrInvalidState = errors.New("oauth: invalid state")

	// ErrMissingCode is returned when the callback carries no authorization code.
	ErrMissingCode = errors.New("oauth: missing authorization code")

	// ErrAuthorizationDenied is returned when the provider redirects back with an error.
	ErrAuthorizationDenied = errors.New("oauth: authorization denied")

	// ErrUserRejected is returned when the verify callback returns no user.
	ErrUserRejected = errors.New("oauth: user rejected by verify callback")
)

// InternalOAuthError wraps a failure that happened while talking to the
// provider on behalf of the strategy. Err holds the underlying cause.
type InternalOAuthError struct {
	Message string
	Err     error
}

// NewInternalOAuthError builds an InternalOAuthError with the given message and cause.
func NewInternalOAuthError(message string, err error) *InternalOAuthError {
	return &InternalOAuthError{Message: message, Err: err}
}

func (e *InternalOAuthError) Error() string {
	if e.Err == nil {
		return "oauth: " + e.Message
	}
	return fmt.Sprintf("oauth: %s: %v", e.Message, e.Err)
}

func (e *InternalOAuthError) Unwrap() error {
	return e.Err
}

// ResponseError describes a provider response with a non-2xx status.
// It matches ErrRequestFailed with errors.Is.
type ResponseError struct {
	Body       string
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("oauth: request failed: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrRequestFailed
}
