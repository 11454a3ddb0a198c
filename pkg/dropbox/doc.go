// Package dropbox implements the "dropbox-oauth2" authentication strategy.
//
// The strategy configures a generic oauth.Engine with Dropbox's endpoints and
// adds one piece of Dropbox logic: loading the current account and turning it
// into an oauth.Profile.
//
// # API versions
//
// Two endpoint tables are supported, picked by Config.APIVersion:
//
//	version  authorize                          token                                profile
//	1        www.dropbox.com/1/oauth2/authorize api.dropbox.com/1/oauth2/token       GET  api.dropbox.com/1/account/info
//	2        www.dropbox.com/oauth2/authorize   api.dropbox.com/oauth2/token         POST api.dropboxapi.com/2/users/get_current_account
//
// An empty version means "1". Anything other than "1" or "2" makes New fail
// with a *ConfigError, so no request is ever sent with a half-resolved
// configuration.
//
// # Usage
//
//	strategy, err := dropbox.New(dropbox.Config{
//		ClientID:     os.Getenv("DROPBOX_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("DROPBOX_OAUTH_CLIENT_SECRET"),
//		CallbackURL:  "https://example.com/auth/dropbox/callback",
//		APIVersion:   "2",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := strategy.UserProfile(ctx, token.AccessToken)
//
// # Errors
//
// UserProfile keeps three failure kinds apart:
//
//   - *ConfigError (ErrUnsupportedAPIVersion): returned by New, never at request time
//   - *oauth.InternalOAuthError: the account request failed; Unwrap gives the cause
//   - encoding/json errors: Dropbox answered with a body that is not valid JSON
package dropbox
