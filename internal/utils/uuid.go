package utils

import "github.com/google/uuid"

// UUIDGenerator mints the identifiers this system treats as stable: the
// per-device id persisted in device_meta and the household id offered
// during pairing.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string. The time-ordered prefix keeps ids
// roughly sortable by creation; on the rare entropy failure it falls back
// to a random UUIDv4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
