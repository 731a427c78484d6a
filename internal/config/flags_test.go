package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServerList_String tests the String method of ServerList
func TestServerList_String(t *testing.T) {
	tests := []struct {
		name     string
		list     ServerList
		expected string
	}{
		{
			name:     "empty list",
			list:     ServerList{},
			expected: "",
		},
		{
			name:     "single server",
			list:     ServerList{"stun:stun.example.org:3478"},
			expected: "stun:stun.example.org:3478",
		},
		{
			name:     "multiple servers",
			list:     ServerList{"stun:stun.example.org:3478", "turn:relay.example.org:3478"},
			expected: "stun:stun.example.org:3478,turn:relay.example.org:3478",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.list.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestServerList_Set tests the Set method of ServerList
func TestServerList_Set(t *testing.T) {
	tests := []struct {
		name         string
		inputs       []string
		expectError  bool
		errorMsg     string
		expectedList ServerList
	}{
		{
			name:         "valid stun server",
			inputs:       []string{"stun:stun.example.org:3478"},
			expectedList: ServerList{"stun:stun.example.org:3478"},
		},
		{
			name:         "valid turn server",
			inputs:       []string{"turn:relay.example.org:3478"},
			expectedList: ServerList{"turn:relay.example.org:3478"},
		},
		{
			name:         "valid turns server",
			inputs:       []string{"turns:relay.example.org:5349"},
			expectedList: ServerList{"turns:relay.example.org:5349"},
		},
		{
			name:   "comma-separated list",
			inputs: []string{"stun:a.example.org:3478, turn:b.example.org:3478"},
			expectedList: ServerList{
				"stun:a.example.org:3478",
				"turn:b.example.org:3478",
			},
		},
		{
			name:   "repeated flag accumulates",
			inputs: []string{"stun:a.example.org:3478", "turn:b.example.org:3478"},
			expectedList: ServerList{
				"stun:a.example.org:3478",
				"turn:b.example.org:3478",
			},
		},
		{
			name:         "empty segments skipped",
			inputs:       []string{"stun:a.example.org:3478,,"},
			expectedList: ServerList{"stun:a.example.org:3478"},
		},
		{
			name:        "missing scheme",
			inputs:      []string{"stun.example.org:3478"},
			expectError: true,
			errorMsg:    "stun:, turn: or turns: scheme",
		},
		{
			name:        "http scheme rejected",
			inputs:      []string{"http://example.org"},
			expectError: true,
			errorMsg:    "stun:, turn: or turns: scheme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := ServerList{}
			var err error
			for _, input := range tt.inputs {
				if err = list.Set(input); err != nil {
					break
				}
			}

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedList, list)
			}
		})
	}
}

// TestParseFlags tests the ParseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-d", "/var/data/balance-sync.db",
				"-device-name", "laptop",
				"-ice", "stun:stun.example.org:3478",
				"-ice", "turn:relay.example.org:3478",
				"-relay-username", "relay_user",
				"-relay-credential", "relay_secret",
				"-connect-timeout", "45s",
				"-c", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/var/data/balance-sync.db", cfg.Storage.DB.Path)
				assert.Equal(t, "laptop", cfg.App.DeviceName)
				assert.Equal(t, []string{
					"stun:stun.example.org:3478",
					"turn:relay.example.org:3478",
				}, cfg.Transport.ICEServers)
				assert.Equal(t, "relay_user", cfg.Transport.RelayUsername)
				assert.Equal(t, "relay_secret", cfg.Transport.RelayCredential)
				assert.Equal(t, 45*time.Second, cfg.Transport.ConnectTimeout)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "config alias flag",
			args: []string{
				"-config", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "partial flags",
			args: []string{
				"-d", "sync.db",
				"-connect-timeout", "1m",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "sync.db", cfg.Storage.DB.Path)
				assert.Equal(t, time.Minute, cfg.Transport.ConnectTimeout)
				assert.Empty(t, cfg.App.DeviceName)
				assert.Empty(t, cfg.Transport.ICEServers)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Empty(t, cfg.Storage.DB.Path)
				assert.Empty(t, cfg.App.DeviceName)
				assert.Empty(t, cfg.Transport.ICEServers)
				assert.Empty(t, cfg.Transport.RelayUsername)
				assert.Zero(t, cfg.Transport.ConnectTimeout)
				assert.Empty(t, cfg.JSONFilePath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			// Set os.Args to simulate command line arguments
			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}
