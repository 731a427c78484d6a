package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidTransportConfigs indicates invalid transport settings
	// (for example, relay credentials without any relay server URL, or a
	// negative connection timeout).
	ErrInvalidTransportConfigs = errors.New("invalid transport configuration")
)
