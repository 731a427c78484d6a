// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxFramePayload is the number of payload bytes carried per frame, chosen
// with headroom under the 16 KiB per-write ceiling of the underlying
// channel.
const MaxFramePayload = 15000

// framePrefix tags every frame on the wire:
// "CHUNK:<index>:<total>:<payload>", index 1-based.
const framePrefix = "CHUNK:"

// FramePart is one parsed frame of a larger logical message.
type FramePart struct {
	Index   int
	Total   int
	Payload string
}

// Frame splits an arbitrary payload into size-bounded, self-describing
// frames. A payload that fits the limit still travels as a single tagged
// frame.
func Frame(payload string) []string {
	if len(payload) <= MaxFramePayload {
		return []string{framePrefix + "1:1:" + payload}
	}

	total := (len(payload) + MaxFramePayload - 1) / MaxFramePayload
	frames := make([]string, 0, total)
	for i := 0; i < total; i++ {
		start := i * MaxFramePayload
		end := start + MaxFramePayload
		if end > len(payload) {
			end = len(payload)
		}
		frames = append(frames, fmt.Sprintf("%s%d:%d:%s", framePrefix, i+1, total, payload[start:end]))
	}

	return frames
}

// ParseFrame returns the parsed frame, or nil when message is not a frame:
// missing prefix, missing header fields, non-numeric or out-of-range index
// and total. Foreign messages must never crash the reassembler, so every
// malformed shape maps to nil. The payload may contain any byte including
// ':'.
func ParseFrame(message string) *FramePart {
	rest, ok := strings.CutPrefix(message, framePrefix)
	if !ok {
		return nil
	}

	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		return nil
	}

	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	total, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	if index < 1 || total < 1 || index > total {
		return nil
	}

	return &FramePart{Index: index, Total: total, Payload: parts[2]}
}

// Reassemble concatenates the payloads for indices 1..total in order.
// Returns false when any index in that range is absent or the map holds a
// different number of frames than total. Arrival order never matters:
// completion is detected purely by count equality.
func Reassemble(parts map[int]string, total int) (string, bool) {
	if total < 1 || len(parts) != total {
		return "", false
	}

	indices := make([]int, 0, len(parts))
	for i := range parts {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	var sb strings.Builder
	for want, got := range indices {
		if got != want+1 {
			return "", false
		}
		sb.WriteString(parts[got])
	}

	return sb.String(), true
}

// assembler buffers the partial frame set of the message currently in
// flight. Each connection owns exactly one; it is cleared on close and never
// shared across connections.
type assembler struct {
	parts map[int]string
	total int
}

// add records one frame and returns the reassembled payload once the set is
// complete. The assembler resets itself after completion so the next
// message starts clean.
func (a *assembler) add(f FramePart) (payload string, done bool) {
	if a.parts == nil || a.total != f.Total {
		a.parts = make(map[int]string, f.Total)
		a.total = f.Total
	}
	a.parts[f.Index] = f.Payload

	payload, done = Reassemble(a.parts, a.total)
	if done {
		a.reset()
	}
	return payload, done
}

// received reports how many frames of the current message have arrived.
func (a *assembler) received() int {
	return len(a.parts)
}

func (a *assembler) reset() {
	a.parts = nil
	a.total = 0
}
