// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// balance-sync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//
// All environment lookups additionally carry the global BALANCE_ prefix.
type StructuredConfig struct {
	// App holds application-level settings such as the human-readable
	// device name and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Transport holds connection establishment settings: traversal
	// server URLs, relay credentials, and the connection timeout.
	Transport Transport `envPrefix:"TRANSPORT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the BALANCE_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DeviceName is the human-readable name shown to the peer during
	// pairing (e.g. "Anna's phone"). Defaults to the hostname when empty.
	// Env: BALANCE_APP_DEVICE_NAME
	DeviceName string `env:"DEVICE_NAME"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: BALANCE_APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds settings for the local SQLite database file.
type DB struct {
	// Path is the filesystem path of the SQLite database file
	// (e.g. "balance-sync.db"). The file is created on first use.
	// Env: BALANCE_STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Transport holds connection establishment settings. An empty ICEServers
// list means same-network mode.
type Transport struct {
	// ICEServers lists traversal-assistance server URLs, stun: or turn:
	// schemed (e.g. "stun:stun.l.google.com:19302").
	// Env: BALANCE_TRANSPORT_ICE_SERVERS (comma-separated)
	ICEServers []string `env:"ICE_SERVERS"`

	// RelayUsername authenticates against relay (turn:) servers.
	// Env: BALANCE_TRANSPORT_RELAY_USERNAME
	RelayUsername string `env:"RELAY_USERNAME"`

	// RelayCredential is the secret paired with RelayUsername.
	// Env: BALANCE_TRANSPORT_RELAY_CREDENTIAL
	RelayCredential string `env:"RELAY_CREDENTIAL"`

	// ConnectTimeout overrides the overall connection timeout when
	// positive (e.g. "30s", "1m").
	// Env: BALANCE_TRANSPORT_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
