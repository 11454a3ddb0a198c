package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile is the provider-agnostic user record a strategy builds from the
// provider's account endpoint.
type Profile struct {
	// JSON is the parsed provider payload, for provider-specific fields.
	JSON        map[string]any
	Provider    string
	ID          string
	DisplayName string
	// Raw is the unparsed response body.
	Raw    string
	Name   Name
	Emails []Email
}

// Name holds the structured parts of a user's name.
type Name struct {
	FamilyName string
	GivenName  string
	MiddleName string
}

// Email is a single address reported by the provider.
type Email struct {
	Value string
}

// Strategy abstracts provider-specific OAuth operations.
// A strategy configures the engine with its endpoints and adds the
// provider's profile lookup.
type Strategy interface {
	// Name returns the strategy identifier (e.g., "dropbox-oauth2").
	Name() string

	// AuthCodeURL generates the authorization URL for the OAuth flow.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// UserProfile fetches and normalizes the account behind accessToken.
	// It returns either a profile or an error, never both.
	UserProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// VerifyFunc resolves an application user from a completed handshake.
// Return a non-nil error to fail, a nil user to refuse authentication,
// or the user to accept. A typed nil such as (*User)(nil) also refuses.
type VerifyFunc func(ctx context.Context, accessToken, refreshToken string, profile *Profile) (any, error)
