// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MergeSummary reports the outcome of one incremental sync session.
// It is a report object, never persisted.
type MergeSummary struct {
	// TotalSent is the number of records exported to the peer.
	TotalSent int `json:"totalSent"`

	// TotalReceived is the number of records the peer sent us.
	TotalReceived int `json:"totalReceived"`

	// TotalUpserted is how many of the received records actually won their
	// merge and were written locally.
	TotalUpserted int `json:"totalUpserted"`
}

// SyncProgress is delivered to session progress observers as frames move.
type SyncProgress struct {
	// Direction is "send" or "receive".
	Direction string

	// FramesDone and FramesTotal track chunk transfer of the current
	// payload. FramesTotal is zero until the first chunk is seen.
	FramesDone  int
	FramesTotal int
}
