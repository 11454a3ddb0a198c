package dropbox

import "strings"

// APIVersion selects one of the two Dropbox API generations.
// The zero value is not a valid version; use ParseAPIVersion.
type APIVersion int

const (
	V1 APIVersion = iota + 1
	V2
)

// ParseAPIVersion parses "1" or "2". An empty string yields V1.
// Surrounding whitespace is ignored, so " 2 " from an env file parses as V2.
// Any other value returns a *ConfigError carrying the input unchanged.
func ParseAPIVersion(s string) (APIVersion, error) {
	switch strings.TrimSpace(s) {
	case "", "1":
		return V1, nil
	case "2":
		return V2, nil
	default:
		return 0, &ConfigError{Version: s}
	}
}

func (v APIVersion) String() string {
	switch v {
	case V1:
		return "1"
	case V2:
		return "2"
	default:
		return "unknown"
	}
}

// endpoints is the static per-version default table.
type endpoints struct {
	headers          map[string]string
	authorizationURL string
	tokenURL         string
	profileURL       string
	scopeSeparator   string
}

func (v APIVersion) defaults() endpoints {
	if v == V2 {
		return endpoints{
			authorizationURL: "https://www.dropbox.com/oauth2/authorize",
			tokenURL:         "https://api.dropbox.com/oauth2/token",
			profileURL:       "https://api.dropboxapi.com/2/users/get_current_account",
			scopeSeparator:   ",",
			headers:          map[string]string{"Content-Type": "application/json"},
		}
	}
	return endpoints{
		authorizationURL: "https://www.dropbox.com/1/oauth2/authorize",
		tokenURL:         "https://api.dropbox.com/1/oauth2/token",
		profileURL:       "https://api.dropbox.com/1/account/info",
		scopeSeparator:   ",",
		headers:          map[string]string{},
	}
}
