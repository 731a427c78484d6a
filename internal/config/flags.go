package config

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

// ServerList accumulates traversal server URLs from a repeatable flag.
// It implements the flag.Value interface; each Set call may carry one URL
// or several comma-separated ones.
type ServerList []string

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database file path
//	-device-name human-readable device name shown during pairing
//	-ice traversal server URL (stun:/turn:/turns:), repeatable
//	-relay-username relay server username
//	-relay-credential relay server credential
//	-connect-timeout overall connection timeout (e.g., "30s", "1m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var dbPath string
	var deviceName string
	var iceServers ServerList
	var relayUsername string
	var relayCredential string
	var connectTimeout time.Duration
	var jsonConfigPath string

	flag.StringVar(&dbPath, "d", "", "Database file path")
	flag.StringVar(&deviceName, "device-name", "", "Device name shown to the peer")
	flag.Var(&iceServers, "ice", "Traversal server URL (repeatable)")
	flag.StringVar(&relayUsername, "relay-username", "", "Relay server username")
	flag.StringVar(&relayCredential, "relay-credential", "", "Relay server credential")
	flag.DurationVar(&connectTimeout, "connect-timeout", 0, "Connection timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DeviceName: deviceName,
		},
		Storage: Storage{
			DB: DB{
				Path: dbPath,
			},
		},
		Transport: Transport{
			ICEServers:      iceServers,
			RelayUsername:   relayUsername,
			RelayCredential: relayCredential,
			ConnectTimeout:  connectTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the accumulated URLs joined with commas.
func (l *ServerList) String() string {
	return strings.Join(*l, ",")
}

// Set parses the input as one or more comma-separated traversal server URLs,
// validates their schemes, and appends them to the list.
func (l *ServerList) Set(s string) error {
	for _, url := range strings.Split(s, ",") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if !hasTraversalScheme(url) {
			return fmt.Errorf("server URL must use a stun:, turn: or turns: scheme, got %q", url)
		}
		*l = append(*l, url)
	}
	return nil
}

func hasTraversalScheme(url string) bool {
	for _, scheme := range []string{"stun:", "stuns:", "turn:", "turns:"} {
		if strings.HasPrefix(url, scheme) {
			return true
		}
	}
	return false
}
