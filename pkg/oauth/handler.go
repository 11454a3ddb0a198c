package oauth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/dmitrymomot/dropboxauth/pkg/logger"
)

// SuccessFunc receives the user accepted by the verify callback.
type SuccessFunc func(w http.ResponseWriter, r *http.Request, user any)

// FailureFunc receives the error that ended the handshake.
type FailureFunc func(w http.ResponseWriter, r *http.Request, err error)

// Handler drives the authorization code handshake for one strategy over HTTP.
type Handler struct {
	strategy  Strategy
	verify    VerifyFunc
	state     *stateStore
	logger    *slog.Logger
	onSuccess SuccessFunc
	onFailure FailureFunc
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the logger for handshake outcomes.
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithSuccess sets the callback invoked after the verify callback accepts a user.
func WithSuccess(fn SuccessFunc) HandlerOption {
	return func(h *Handler) {
		h.onSuccess = fn
	}
}

// WithFailure sets the callback invoked when the handshake fails.
func WithFailure(fn FailureFunc) HandlerOption {
	return func(h *Handler) {
		h.onFailure = fn
	}
}

// NewHandler creates a handshake handler for the strategy.
// Returns ErrBadStateSecret if cfg.StateSecret is shorter than 32 bytes.
func NewHandler(strategy Strategy, verify VerifyFunc, cfg HandlerConfig, opts ...HandlerOption) (*Handler, error) {
	state, err := newStateStore(cfg)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		strategy:  strategy,
		verify:    verify,
		state:     state,
		logger:    logger.NewNope(),
		onSuccess: defaultSuccess,
		onFailure: defaultFailure,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Authenticate redirects the user agent to the provider's authorization page.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	state := h.state.issue(w)
	http.Redirect(w, r, h.strategy.AuthCodeURL(state), http.StatusFound)
}

// Callback completes the handshake: it checks state, exchanges the code,
// loads the profile and hands it to the verify callback.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStrategy(r.Context(), h.strategy.Name())

	user, err := h.complete(ctx, w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "oauth handshake failed", slog.String("error", err.Error()))
		h.onFailure(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "oauth handshake succeeded")
	h.onSuccess(w, r, user)
}

func (h *Handler) complete(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
	q := r.URL.Query()

	if err := h.state.consume(w, r); err != nil {
		return nil, err
	}

	if e := q.Get("error"); e != "" {
		return nil, &AuthorizationError{
			Code:        e,
			Description: q.Get("error_description"),
		}
	}

	code := q.Get("code")
	if code == "" {
		return nil, ErrMissingCode
	}

	token, err := h.strategy.Exchange(ctx, code)
	if err != nil {
		return nil, NewInternalOAuthError("failed to obtain access token", errors.Join(ErrTokenExchange, err))
	}

	profile, err := h.strategy.UserProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := h.verify(ctx, token.AccessToken, token.RefreshToken, profile)
	if err != nil {
		return nil, err
	}
	if isNil(user) {
		return nil, ErrUserRejected
	}
	return user, nil
}

// isNil reports whether v is nil or a typed nil held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// AuthorizationError carries the error the provider reported on the callback.
// It matches ErrAuthorizationDenied with errors.Is.
type AuthorizationError struct {
	Code        string
	Description string
}

func (e *AuthorizationError) Error() string {
	if e.Description == "" {
		return "oauth: authorization failed: " + e.Code
	}
	return "oauth: authorization failed: " + e.Code + ": " + e.Description
}

func (e *AuthorizationError) Is(target error) bool {
	return target == ErrAuthorizationDenied
}

func defaultSuccess(w http.ResponseWriter, _ *http.Request, _ any) {
	w.WriteHeader(http.StatusNoContent)
}

func defaultFailure(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusUnauthorized
	var ie *InternalOAuthError
	if errors.As(err, &ie) {
		status = http.StatusBadGateway
	}
	http.Error(w, http.StatusText(status), status)
}
