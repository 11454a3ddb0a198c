package oauth

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/dropboxauth/pkg/logger"
)

// Engine runs the provider-independent half of the OAuth2 authorization code
// flow and exposes the request primitives strategies use to call provider APIs.
type Engine struct {
	config                   *oauth2.Config
	httpClient               *http.Client
	logger                   *slog.Logger
	authorizationHeaderOnGET bool
}

// NewEngine creates an engine for the given endpoints.
// Returns an error if the client credentials or endpoint URLs are empty.
func NewEngine(cfg EndpointConfig, opts ...Option) (*Engine, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	if cfg.AuthorizationURL == "" {
		return nil, ErrMissingAuthorizationURL
	}
	if cfg.TokenURL == "" {
		return nil, ErrMissingTokenURL
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewNope()
	}

	var scopes []string
	if len(cfg.Scopes) > 0 {
		sep := cfg.ScopeSeparator
		if sep == "" {
			sep = " "
		}
		// x/oauth2 joins scopes with a space, so a custom separator has to
		// be applied up front.
		scopes = []string{strings.Join(cfg.Scopes, sep)}
	}

	return &Engine{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthorizationURL,
				TokenURL: cfg.TokenURL,
			},
		},
		httpClient:               newHTTPClient(o.httpClient, cfg.CustomHeaders),
		logger:                   o.logger,
		authorizationHeaderOnGET: o.authorizationHeaderOnGET,
	}, nil
}

// AuthCodeURL generates the authorization URL.
func (e *Engine) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return e.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (e *Engine) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	return e.config.Exchange(e.contextWithHTTPClient(ctx), code, opts...)
}

// Refresh obtains a new token using a refresh token.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := e.config.TokenSource(e.contextWithHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	return src.Token()
}

// AuthorizationHeader returns the Authorization header value for a bearer token.
func (e *Engine) AuthorizationHeader(accessToken string) string {
	return "Bearer " + accessToken
}

// Get issues a token-authenticated GET and returns the response body.
// The token travels in the access_token query parameter unless the engine
// was built with WithAuthorizationHeaderForGET.
func (e *Engine) Get(ctx context.Context, rawURL, accessToken string) ([]byte, error) {
	if e.authorizationHeaderOnGET {
		headers := map[string]string{"Authorization": e.AuthorizationHeader(accessToken)}
		return e.Request(ctx, http.MethodGet, rawURL, headers, "", "")
	}
	return e.Request(ctx, http.MethodGet, rawURL, nil, "", accessToken)
}

// Request sends a request with the given method, headers and body and returns
// the response body. A non-empty accessToken is added as the access_token
// query parameter. Non-2xx responses are returned as *ResponseError.
func (e *Engine) Request(ctx context.Context, method, rawURL string, headers map[string]string, body, accessToken string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if accessToken != "" {
		q := u.Query()
		q.Set("access_token", accessToken)
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "oauth provider response",
		slog.String("method", method),
		slog.String("host", u.Host),
		slog.String("path", u.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int("body_length", len(data)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}

func (e *Engine) contextWithHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
}

// newHTTPClient copies base (or http.DefaultClient) and layers the custom
// headers over its transport.
func newHTTPClient(base *http.Client, headers map[string]string) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	if len(headers) == 0 {
		return base
	}

	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	return &http.Client{
		Transport:     &headerTransport{base: next, headers: maps.Clone(headers)},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}
}

// headerTransport adds default headers to requests that don't already set them.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var clone *http.Request
	for k, v := range t.headers {
		if req.Header.Get(k) != "" {
			continue
		}
		if clone == nil {
			clone = req.Clone(req.Context())
		}
		clone.Header.Set(k, v)
	}
	if clone == nil {
		return t.base.RoundTrip(req)
	}
	return t.base.RoundTrip(clone)
}
