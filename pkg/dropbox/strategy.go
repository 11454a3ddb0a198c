package dropbox

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/dropboxauth/pkg/oauth"
)

const (
	// StrategyName is the identifier the strategy registers under.
	StrategyName = "dropbox-oauth2"
	// ProviderName is the provider recorded on every profile.
	ProviderName = "dropbox"
)

// v2 rejects an empty body, and JSON has no empty value, so the request
// carries an explicit null.
const v2ProfileBody = "null"

// Strategy authenticates users against Dropbox.
type Strategy struct {
	engine *oauth.Engine
	config Resolved
}

// New resolves cfg and builds the strategy on top of an oauth.Engine.
// Returns a *ConfigError for an unsupported API version, or the engine's
// error when credentials are missing.
func New(cfg Config, opts ...oauth.Option) (*Strategy, error) {
	resolved, err := ResolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	engine, err := oauth.NewEngine(oauth.EndpointConfig{
		ClientID:         cfg.ClientID,
		ClientSecret:     cfg.ClientSecret,
		CallbackURL:      cfg.CallbackURL,
		AuthorizationURL: resolved.AuthorizationURL,
		TokenURL:         resolved.TokenURL,
		ScopeSeparator:   resolved.ScopeSeparator,
		CustomHeaders:    resolved.CustomHeaders,
		Scopes:           cfg.Scopes,
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &Strategy{engine: engine, config: resolved}, nil
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string {
	return StrategyName
}

// Config returns the resolved configuration.
func (s *Strategy) Config() Resolved {
	return s.config
}

// AuthCodeURL generates the authorization URL.
func (s *Strategy) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return s.engine.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (s *Strategy) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return s.engine.Exchange(ctx, code)
}

// Refresh obtains a new access token with a refresh token.
func (s *Strategy) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return s.engine.Refresh(ctx, refreshToken)
}

// UserProfile loads the Dropbox account for accessToken.
// Request failures are returned as *oauth.InternalOAuthError; a malformed
// body is returned as the encoding/json error itself.
func (s *Strategy) UserProfile(ctx context.Context, accessToken string) (*oauth.Profile, error) {
	body, err := s.fetchAccount(ctx, accessToken)
	if err != nil {
		return nil, oauth.NewInternalOAuthError("failed to fetch user profile", err)
	}
	return parseProfile(s.config.APIVersion, body)
}

func (s *Strategy) fetchAccount(ctx context.Context, accessToken string) ([]byte, error) {
	if s.config.APIVersion == V2 {
		headers := map[string]string{"Authorization": s.engine.AuthorizationHeader(accessToken)}
		return s.engine.Request(ctx, http.MethodPost, s.config.ProfileURL, headers, v2ProfileBody, "")
	}
	return s.engine.Get(ctx, s.config.ProfileURL, accessToken)
}
