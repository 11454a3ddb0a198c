package dropbox

import (
	"encoding/json"
	"math/big"
	"reflect"

	"github.com/dmitrymomot/dropboxauth/pkg/oauth"
)

// accountV1 is the response of GET /1/account/info.
type accountV1 struct {
	UID         flexID `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	NameDetails struct {
		Surname   string `json:"surname"`
		GivenName string `json:"given_name"`
	} `json:"name_details"`
}

// accountV2 is the response of POST /2/users/get_current_account.
type accountV2 struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      struct {
		DisplayName string `json:"display_name"`
		Surname     string `json:"surname"`
		GivenName   string `json:"given_name"`
	} `json:"name"`
}

func parseProfile(version APIVersion, body []byte) (*oauth.Profile, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	// A bare null decodes without error but carries no account.
	if raw == nil {
		return nil, &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeOf(raw)}
	}

	profile := &oauth.Profile{
		Provider: ProviderName,
		Raw:      string(body),
		JSON:     raw,
	}

	switch version {
	case V2:
		var acc accountV2
		if err := json.Unmarshal(body, &acc); err != nil {
			return nil, err
		}
		profile.ID = acc.AccountID
		profile.DisplayName = acc.Name.DisplayName
		profile.Name = oauth.Name{FamilyName: acc.Name.Surname, GivenName: acc.Name.GivenName}
		profile.Emails = []oauth.Email{{Value: acc.Email}}
	default:
		var acc accountV1
		if err := json.Unmarshal(body, &acc); err != nil {
			return nil, err
		}
		profile.ID = string(acc.UID)
		profile.DisplayName = acc.DisplayName
		profile.Name = oauth.Name{FamilyName: acc.NameDetails.Surname, GivenName: acc.NameDetails.GivenName}
		profile.Emails = []oauth.Email{{Value: acc.Email}}
	}

	return profile, nil
}

// flexID decodes an identifier sent either as a JSON string or a number.
// Integral numbers are stored in plain decimal, so 1e3 becomes "1000".
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if r, ok := new(big.Rat).SetString(n.String()); ok && r.IsInt() {
		*f = flexID(r.Num().String())
		return nil
	}
	*f = flexID(n.String())
	return nil
}
