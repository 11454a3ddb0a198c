package dropbox

import "maps"

// Config holds Dropbox OAuth configuration.
// APIVersion is "1" or "2" and defaults to "1". Endpoint fields left
// empty are filled from the defaults of that version.
type Config struct {
	CustomHeaders    map[string]string `env:"DROPBOX_OAUTH_HEADERS" envSeparator:"," envKeyValSeparator:":"`
	ClientID         string            `env:"DROPBOX_OAUTH_CLIENT_ID,required"`
	ClientSecret     string            `env:"DROPBOX_OAUTH_CLIENT_SECRET,required"`
	CallbackURL      string            `env:"DROPBOX_OAUTH_CALLBACK_URL" envDefault:""`
	APIVersion       string            `env:"DROPBOX_API_VERSION" envDefault:"1"`
	AuthorizationURL string            `env:"DROPBOX_OAUTH_AUTHORIZATION_URL"`
	TokenURL         string            `env:"DROPBOX_OAUTH_TOKEN_URL"`
	ProfileURL       string            `env:"DROPBOX_PROFILE_URL"`
	ScopeSeparator   string            `env:"DROPBOX_OAUTH_SCOPE_SEPARATOR"`
	Scopes           []string          `env:"DROPBOX_OAUTH_SCOPES" envSeparator:","`
}

// Resolved is the configuration a Strategy runs with. It never changes after
// construction.
type Resolved struct {
	CustomHeaders    map[string]string
	AuthorizationURL string
	TokenURL         string
	ProfileURL       string
	ScopeSeparator   string
	APIVersion       APIVersion
}

// ResolveConfig validates the API version and fills unset endpoints,
// scope separator and headers from that version's defaults.
// Returns a *ConfigError for any version other than "1" or "2".
func ResolveConfig(cfg Config) (Resolved, error) {
	version, err := ParseAPIVersion(cfg.APIVersion)
	if err != nil {
		return Resolved{}, err
	}

	d := version.defaults()
	r := Resolved{
		APIVersion:       version,
		AuthorizationURL: firstNonEmpty(cfg.AuthorizationURL, d.authorizationURL),
		TokenURL:         firstNonEmpty(cfg.TokenURL, d.tokenURL),
		ProfileURL:       firstNonEmpty(cfg.ProfileURL, d.profileURL),
		ScopeSeparator:   firstNonEmpty(cfg.ScopeSeparator, d.scopeSeparator),
		CustomHeaders:    d.headers,
	}
	if cfg.CustomHeaders != nil {
		r.CustomHeaders = maps.Clone(cfg.CustomHeaders)
	}
	return r, nil
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
