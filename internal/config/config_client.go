package config

import (
	"fmt"
	"os"
	"time"
)

// defaultDBPath is the database file used when no path is configured.
const defaultDBPath = "balance-sync.db"

// ClientApp holds application-level settings used at runtime.
type ClientApp struct {
	// DeviceName is the human-readable device name shown during pairing.
	DeviceName string
	// Version is the application version string.
	Version string
}

// ClientDB contains local database settings.
type ClientDB struct {
	// Path is the SQLite database file path.
	Path string
}

// ClientStorage groups storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientTransport holds connection establishment settings used by the
// transport layer.
type ClientTransport struct {
	// ICEServers lists traversal server URLs; empty means same-network mode.
	ICEServers []string
	// RelayUsername and RelayCredential authenticate against relay servers.
	RelayUsername   string
	RelayCredential string
	// ConnectTimeout overrides the default connection timeout when positive.
	ConnectTimeout time.Duration
}

// ClientConfig is the top-level runtime configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level settings.
	App ClientApp
	// Storage contains storage settings.
	Storage ClientStorage
	// Transport contains connection establishment settings.
	Transport ClientTransport
}

// GetClientConfig builds and validates the runtime config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, applies defaults for the database path and
// the device name, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			DeviceName: cfg.App.DeviceName,
			Version:    cfg.App.Version,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Path: cfg.Storage.DB.Path,
			},
		},
		Transport: ClientTransport{
			ICEServers:      cfg.Transport.ICEServers,
			RelayUsername:   cfg.Transport.RelayUsername,
			RelayCredential: cfg.Transport.RelayCredential,
			ConnectTimeout:  cfg.Transport.ConnectTimeout,
		},
	}

	if clientCfg.Storage.DB.Path == "" {
		clientCfg.Storage.DB.Path = defaultDBPath
	}
	if clientCfg.App.DeviceName == "" {
		if hostname, err := os.Hostname(); err == nil {
			clientCfg.App.DeviceName = hostname
		}
	}

	return clientCfg, clientCfg.validate()
}
