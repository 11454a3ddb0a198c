package dropbox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dropboxauth/pkg/dropbox"
)

func TestParseAPIVersion(t *testing.T) {
	t.Parallel()

	valid := map[string]dropbox.APIVersion{
		"":    dropbox.V1,
		"1":   dropbox.V1,
		" 1 ": dropbox.V1,
		"2":   dropbox.V2,
		" 2 ": dropbox.V2,
		"2\n": dropbox.V2,
	}
	for in, want := range valid {
		got, err := dropbox.ParseAPIVersion(in)
		require.NoError(t, err, "input %q", in)
		require.Equal(t, want, got, "input %q", in)
	}

	for _, in := range []string{"0", "3", "v1", "1.0", "01", "two", "null", "undefined", "12", "1 2", " 3 "} {
		_, err := dropbox.ParseAPIVersion(in)
		require.ErrorIs(t, err, dropbox.ErrUnsupportedAPIVersion, "input %q", in)

		var cfgErr *dropbox.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		require.Equal(t, in, cfgErr.Version)
	}
}

func TestAPIVersion_String(t *testing.T) {
	t.Parallel()
	require.Equal(t, "1", dropbox.V1.String())
	require.Equal(t, "2", dropbox.V2.String())
	require.Equal(t, "unknown", dropbox.APIVersion(0).String())
}
