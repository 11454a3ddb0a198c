package dropbox

import (
	"errors"
	"fmt"
)

// ErrUnsupportedAPIVersion is matched by every ConfigError.
var ErrUnsupportedAPIVersion = errors.New("dropbox: unsupported API version")

// ConfigError reports an API version outside the supported set.
type ConfigError struct {
	Version string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dropbox: unsupported API version %q: must be \"1\" or \"2\"", e.Version)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrUnsupportedAPIVersion
}
