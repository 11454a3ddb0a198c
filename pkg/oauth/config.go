package oauth

// EndpointConfig describes a provider's OAuth2 endpoints and client credentials.
type EndpointConfig struct {
	CustomHeaders    map[string]string
	ClientID         string
	ClientSecret     string
	CallbackURL      string
	AuthorizationURL string
	TokenURL         string
	// ScopeSeparator joins Scopes into the single scope parameter.
	// Defaults to a space.
	ScopeSeparator string
	Scopes         []string
}

// HandlerConfig holds settings for the handshake handler's state cookie.
type HandlerConfig struct {
	StateSecret     string `env:"OAUTH_STATE_SECRET,required"`
	StateCookieName string `env:"OAUTH_STATE_COOKIE" envDefault:"oauth_state"`
	StateMaxAge     int    `env:"OAUTH_STATE_MAX_AGE" envDefault:"600"`
	SecureCookie    bool   `env:"OAUTH_SECURE_COOKIE" envDefault:"true"`
}
