package oauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ErrBadStateSecret is returned when the state secret is shorter than 32 bytes.
var ErrBadStateSecret = errors.New("oauth: state secret must be 32+ bytes")

// stateStore keeps the handshake state in an HMAC-signed cookie between the
// redirect and the callback.
type stateStore struct {
	secret []byte
	name   string
	maxAge int
	secure bool
}

func newStateStore(cfg HandlerConfig) (*stateStore, error) {
	if len(cfg.StateSecret) < 32 {
		return nil, ErrBadStateSecret
	}
	name := cfg.StateCookieName
	if name == "" {
		name = "oauth_state"
	}
	maxAge := cfg.StateMaxAge
	if maxAge <= 0 {
		maxAge = 600
	}
	return &stateStore{
		secret: []byte(cfg.StateSecret),
		name:   name,
		maxAge: maxAge,
		secure: cfg.SecureCookie,
	}, nil
}

// issue generates a fresh state value and stores it signed in the response.
func (s *stateStore) issue(w http.ResponseWriter) string {
	state := uuid.NewString()

	// Format: base64(state).base64(signature)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(state)) +
		"." + base64.RawURLEncoding.EncodeToString(s.sign([]byte(state)))

	http.SetCookie(w, s.cookie(encoded, s.maxAge))
	return state
}

// consume checks the callback state against the stored cookie and clears it.
func (s *stateStore) consume(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, s.cookie("", -1))

	got := r.URL.Query().Get("state")
	if got == "" {
		return ErrInvalidState
	}

	c, err := r.Cookie(s.name)
	if err != nil {
		return ErrInvalidState
	}

	value, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return ErrInvalidState
	}
	want, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return ErrInvalidState
	}
	mac, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ErrInvalidState
	}
	if !hmac.Equal(mac, s.sign(want)) {
		return ErrInvalidState
	}
	if subtle.ConstantTimeCompare(want, []byte(got)) != 1 {
		return ErrInvalidState
	}
	return nil
}

func (s *stateStore) sign(value []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(value)
	return mac.Sum(nil)
}

func (s *stateStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
