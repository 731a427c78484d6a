package transport

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
)

// Descriptors are opaque strings carried out-of-band between the devices
// (optical code, clipboard, anything). The session description JSON is
// highly repetitive, so it is gzipped before base64 to keep the artifact
// small enough for optical transfer.

// EncodeDescriptor compresses and encodes a raw session description.
func EncodeDescriptor(raw []byte) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compress descriptor: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress descriptor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDescriptor reverses EncodeDescriptor. Any malformed input maps to
// [ErrBadDescriptor] so callers can distinguish a garbled out-of-band
// transfer from transport failures.
func DecodeDescriptor(descriptor string) ([]byte, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(descriptor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}

	return raw, nil
}
