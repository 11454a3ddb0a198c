package oauth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/dropboxauth/pkg/oauth"
)

const testStateSecret = "this-is-a-32-byte-or-longer-key!"

// fakeStrategy serves canned tokens and profiles.
type fakeStrategy struct {
	exchangeErr error
	profileErr  error
	profile     *oauth.Profile
	gotCode     string
	gotToken    string
}

func (s *fakeStrategy) Name() string { return "fake-oauth2" }

func (s *fakeStrategy) AuthCodeURL(state string, _ ...oauth2.AuthCodeOption) string {
	return "https://provider.example.com/authorize?state=" + url.QueryEscape(state)
}

func (s *fakeStrategy) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	s.gotCode = code
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access-" + code, RefreshToken: "refresh-" + code}, nil
}

func (s *fakeStrategy) UserProfile(_ context.Context, accessToken string) (*oauth.Profile, error) {
	s.gotToken = accessToken
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

type outcome struct {
	user any
	err  error
}

func newTestHandler(t *testing.T, s oauth.Strategy, verify oauth.VerifyFunc) (*oauth.Handler, *outcome) {
	t.Helper()
	out := &outcome{}
	h, err := oauth.NewHandler(s, verify, oauth.HandlerConfig{StateSecret: testStateSecret},
		oauth.WithSuccess(func(w http.ResponseWriter, _ *http.Request, user any) {
			out.user = user
			w.WriteHeader(http.StatusOK)
		}),
		oauth.WithFailure(func(w http.ResponseWriter, _ *http.Request, err error) {
			out.err = err
			w.WriteHeader(http.StatusUnauthorized)
		}),
	)
	require.NoError(t, err)
	return h, out
}

// begin runs Authenticate and returns the issued state and its cookie.
func begin(t *testing.T, h *oauth.Handler) (string, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	h.Authenticate(w, httptest.NewRequest(http.MethodGet, "/auth", nil))

	resp := w.Result()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	require.True(t, cookies[0].HttpOnly)
	return state, cookies[0]
}

func callback(h *oauth.Handler, query url.Values, c *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/callback?"+query.Encode(), nil)
	if c != nil {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.Callback(w, r)
	return w
}

func acceptAll(_ context.Context, accessToken, refreshToken string, p *oauth.Profile) (any, error) {
	return map[string]string{"id": p.ID, "access": accessToken, "refresh": refreshToken}, nil
}

func TestNewHandler(t *testing.T) {
	t.Parallel()
	h, err := oauth.NewHandler(&fakeStrategy{}, acceptAll, oauth.HandlerConfig{StateSecret: "short"})
	require.ErrorIs(t, err, oauth.ErrBadStateSecret)
	require.Nil(t, h)
}

func TestHandler_Authenticate(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t, &fakeStrategy{}, acceptAll)

	first, _ := begin(t, h)
	second, _ := begin(t, h)
	require.NotEqual(t, first, second)
}

func TestHandler_Callback(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		s := &fakeStrategy{profile: &oauth.Profile{Provider: "fake", ID: "42"}}
		h, out := newTestHandler(t, s, acceptAll)

		state, c := begin(t, h)
		w := callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)

		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, out.err)
		require.Equal(t, map[string]string{"id": "42", "access": "access-abc", "refresh": "refresh-abc"}, out.user)
		require.Equal(t, "abc", s.gotCode)
		require.Equal(t, "access-abc", s.gotToken)

		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		require.Negative(t, cleared[0].MaxAge)
	})

	t.Run("missing state cookie", func(t *testing.T) {
		t.Parallel()
		h, out := newTestHandler(t, &fakeStrategy{}, acceptAll)
		state, _ := begin(t, h)

		callback(h, url.Values{"state": {state}, "code": {"abc"}}, nil)
		require.ErrorIs(t, out.err, oauth.ErrInvalidState)
	})

	t.Run("mismatched state", func(t *testing.T) {
		t.Parallel()
		s := &fakeStrategy{}
		h, out := newTestHandler(t, s, acceptAll)
		_, c := begin(t, h)

		callback(h, url.Values{"state": {"forged"}, "code": {"abc"}}, c)
		require.ErrorIs(t, out.err, oauth.ErrInvalidState)
		require.Empty(t, s.gotCode)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		t.Parallel()
		h, out := newTestHandler(t, &fakeStrategy{}, acceptAll)
		state, c := begin(t, h)
		c.Value += "x"

		callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)
		require.ErrorIs(t, out.err, oauth.ErrInvalidState)
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()
		h, out := newTestHandler(t, &fakeStrategy{}, acceptAll)
		state, c := begin(t, h)

		callback(h, url.Values{
			"state":             {state},
			"error":             {"access_denied"},
			"error_description": {"The user chose not to give your app access."},
		}, c)
		require.ErrorIs(t, out.err, oauth.ErrAuthorizationDenied)

		var authErr *oauth.AuthorizationError
		require.ErrorAs(t, out.err, &authErr)
		require.Equal(t, "access_denied", authErr.Code)
	})

	t.Run("missing code", func(t *testing.T) {
		t.Parallel()
		h, out := newTestHandler(t, &fakeStrategy{}, acceptAll)
		state, c := begin(t, h)

		callback(h, url.Values{"state": {state}}, c)
		require.ErrorIs(t, out.err, oauth.ErrMissingCode)
	})

	t.Run("exchange failure", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("invalid_grant")
		h, out := newTestHandler(t, &fakeStrategy{exchangeErr: cause}, acceptAll)
		state, c := begin(t, h)

		callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)
		require.ErrorIs(t, out.err, oauth.ErrTokenExchange)
		require.ErrorIs(t, out.err, cause)

		var oauthErr *oauth.InternalOAuthError
		require.ErrorAs(t, out.err, &oauthErr)
	})

	t.Run("profile failure", func(t *testing.T) {
		t.Parallel()
		cause := oauth.NewInternalOAuthError("failed to fetch user profile", errors.New("timeout"))
		h, out := newTestHandler(t, &fakeStrategy{profileErr: cause}, acceptAll)
		state, c := begin(t, h)

		callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)
		require.ErrorIs(t, out.err, cause)
	})

	t.Run("verify refuses user", func(t *testing.T) {
		t.Parallel()
		refuse := func(context.Context, string, string, *oauth.Profile) (any, error) { return nil, nil }
		h, out := newTestHandler(t, &fakeStrategy{profile: &oauth.Profile{ID: "42"}}, refuse)
		state, c := begin(t, h)

		callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)
		require.ErrorIs(t, out.err, oauth.ErrUserRejected)
	})

	t.Run("verify returns typed nil user", func(t *testing.T) {
		t.Parallel()
		type user struct{ ID string }
		refusals := map[string]any{
			"pointer": (*user)(nil),
			"map":     map[string]string(nil),
		}
		for name, refused := range refusals {
			verify := func(context.Context, string, string, *oauth.Profile) (any, error) { return refused, nil }
			h, out := newTestHandler(t, &fakeStrategy{profile: &oauth.Profile{ID: "42"}}, verify)
			state, c := begin(t, h)

			w := callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)
			require.Equal(t, http.StatusUnauthorized, w.Code, name)
			require.ErrorIs(t, out.err, oauth.ErrUserRejected, name)
			require.Nil(t, out.user, name)
		}
	})

	t.Run("verify error", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("account suspended")
		fail := func(context.Context, string, string, *oauth.Profile) (any, error) { return nil, cause }
		h, out := newTestHandler(t, &fakeStrategy{profile: &oauth.Profile{ID: "42"}}, fail)
		state, c := begin(t, h)

		callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)
		require.ErrorIs(t, out.err, cause)
	})
}

func TestHandler_DefaultFailure(t *testing.T) {
	t.Parallel()

	h, err := oauth.NewHandler(
		&fakeStrategy{exchangeErr: errors.New("invalid_grant")},
		acceptAll,
		oauth.HandlerConfig{StateSecret: testStateSecret},
	)
	require.NoError(t, err)

	w := callback(h, url.Values{"code": {"abc"}}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	state, c := begin(t, h)
	w = callback(h, url.Values{"state": {state}, "code": {"abc"}}, c)
	require.Equal(t, http.StatusBadGateway, w.Code)
}
