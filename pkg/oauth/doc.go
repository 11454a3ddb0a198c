// Package oauth provides the provider-independent part of an OAuth2
// authorization code strategy.
//
// An Engine wraps golang.org/x/oauth2 with a provider's endpoints and adds
// the request primitives a strategy needs to call provider APIs:
//
//   - Get: token-authenticated GET (access_token query parameter, or an
//     Authorization header with WithAuthorizationHeaderForGET)
//   - Request: arbitrary method, headers and body
//   - AuthorizationHeader: "Bearer <token>"
//
// Custom headers given in EndpointConfig are added to every outbound request
// that has not set them itself, so the token request keeps its form content type.
//
// A Strategy pairs an Engine with a profile lookup. Handler runs the
// handshake over HTTP:
//
//	h, err := oauth.NewHandler(strategy, verify, oauth.HandlerConfig{
//		StateSecret:  os.Getenv("OAUTH_STATE_SECRET"),
//		SecureCookie: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	r.Get("/auth/dropbox", h.Authenticate)
//	r.Get("/auth/dropbox/callback", h.Callback)
//
// The verify callback decides the outcome: an error fails the handshake, a
// nil user refuses it with ErrUserRejected, anything else succeeds.
//
// # Error Handling
//
//   - ErrMissingClientID, ErrMissingClientSecret, ErrMissingAuthorizationURL,
//     ErrMissingTokenURL: NewEngine called with incomplete configuration
//   - *InternalOAuthError: a provider call made for the strategy failed;
//     Unwrap returns the cause
//   - *ResponseError (ErrRequestFailed): provider returned a non-2xx status
//   - ErrInvalidState, ErrMissingCode, *AuthorizationError
//     (ErrAuthorizationDenied), ErrUserRejected: callback outcomes
//
// Use errors.Is and errors.As for checking.
package oauth
