// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip frames the payload, parses every frame, and reassembles.
func roundTrip(t *testing.T, payload string) string {
	t.Helper()

	frames := Frame(payload)
	parts := make(map[int]string, len(frames))
	total := 0
	for _, frame := range frames {
		part := ParseFrame(frame)
		require.NotNil(t, part, "every produced frame must parse")
		parts[part.Index] = part.Payload
		total = part.Total
	}

	result, ok := Reassemble(parts, total)
	require.True(t, ok)
	return result
}

// TestFrame_RoundTrip verifies reconstruction across the boundary payload
// lengths: empty, exactly the limit, one past it, and far beyond it.
func TestFrame_RoundTrip(t *testing.T) {
	lengths := []int{0, 1, MaxFramePayload - 1, MaxFramePayload, MaxFramePayload + 1, 10*MaxFramePayload + 37}

	for _, n := range lengths {
		t.Run(fmt.Sprintf("len_%d", n), func(t *testing.T) {
			payload := strings.Repeat("x", n)
			assert.Equal(t, payload, roundTrip(t, payload))
		})
	}
}

func TestFrame_FrameCounts(t *testing.T) {
	assert.Len(t, Frame(strings.Repeat("a", MaxFramePayload)), 1)
	assert.Len(t, Frame(strings.Repeat("a", MaxFramePayload+1)), 2)
	assert.Len(t, Frame(""), 1)
}

func TestFrame_SmallPayloadIsTagged(t *testing.T) {
	frames := Frame("hello")
	require.Len(t, frames, 1)
	assert.Equal(t, "CHUNK:1:1:hello", frames[0])
}

func TestParseFrame_PayloadMayContainColons(t *testing.T) {
	part := ParseFrame(`CHUNK:2:3:{"a":"b:c"}`)
	require.NotNil(t, part)
	assert.Equal(t, 2, part.Index)
	assert.Equal(t, 3, part.Total)
	assert.Equal(t, `{"a":"b:c"}`, part.Payload)
}

func TestParseFrame_EmptyPayload(t *testing.T) {
	part := ParseFrame("CHUNK:1:1:")
	require.NotNil(t, part)
	assert.Equal(t, "", part.Payload)
}

// TestParseFrame_Malformed verifies that foreign and corrupted messages map
// to nil instead of crashing the reassembler.
func TestParseFrame_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{name: "no prefix", message: "hello world"},
		{name: "wrong prefix", message: "BLOCK:1:1:data"},
		{name: "missing second colon", message: "CHUNK:1"},
		{name: "missing payload separator", message: "CHUNK:1:2"},
		{name: "non-numeric index", message: "CHUNK:a:2:data"},
		{name: "non-numeric total", message: "CHUNK:1:b:data"},
		{name: "index zero", message: "CHUNK:0:2:data"},
		{name: "total zero", message: "CHUNK:1:0:data"},
		{name: "index beyond total", message: "CHUNK:3:2:data"},
		{name: "empty", message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseFrame(tt.message))
		})
	}
}

func TestReassemble_OutOfOrder(t *testing.T) {
	parts := map[int]string{3: "c", 1: "a", 2: "b"}

	result, ok := Reassemble(parts, 3)
	require.True(t, ok)
	assert.Equal(t, "abc", result)
}

func TestReassemble_Incomplete(t *testing.T) {
	_, ok := Reassemble(map[int]string{1: "a", 3: "c"}, 3)
	assert.False(t, ok, "missing index must not reassemble")

	_, ok = Reassemble(map[int]string{1: "a", 2: "b", 4: "d"}, 3)
	assert.False(t, ok, "frame count mismatch must not reassemble")

	_, ok = Reassemble(map[int]string{}, 0)
	assert.False(t, ok)
}

func TestAssembler_ResetsAfterCompletion(t *testing.T) {
	var a assembler

	_, done := a.add(FramePart{Index: 1, Total: 2, Payload: "first-"})
	require.False(t, done)

	payload, done := a.add(FramePart{Index: 2, Total: 2, Payload: "message"})
	require.True(t, done)
	assert.Equal(t, "first-message", payload)

	// следующее сообщение начинается с чистого состояния
	assert.Equal(t, 0, a.received())

	payload, done = a.add(FramePart{Index: 1, Total: 1, Payload: "second"})
	require.True(t, done)
	assert.Equal(t, "second", payload)
}
