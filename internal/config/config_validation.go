// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; raw-config validation rules will be added
// as the application matures. The runtime view is validated separately by
// [ClientConfig.validate].
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Transport.ConnectTimeout < 0 {
		return ErrInvalidTransportConfigs
	}

	if (cfg.Transport.RelayUsername != "" || cfg.Transport.RelayCredential != "") && !cfg.hasRelayServer() {
		return ErrInvalidTransportConfigs
	}

	return nil
}

func (cfg *ClientConfig) hasRelayServer() bool {
	for _, url := range cfg.Transport.ICEServers {
		if strings.HasPrefix(url, "turn:") || strings.HasPrefix(url, "turns:") {
			return true
		}
	}
	return false
}
