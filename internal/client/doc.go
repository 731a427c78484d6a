// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive application runtime.
//
// It wires configuration, local storage, the session services, and the
// peer-to-peer transport into the terminal flows a user drives: pairing two
// devices, running an incremental sync, and moving a full backup between
// devices.
package client
