package utils

import (
	"crypto/rand"
	"io"

	"github.com/google/uuid"
)

// UUIDGenerator issues ids for locally created records. Ids are UUIDv7, so
// they sort in creation order and two devices never collide.
type UUIDGenerator struct {
	entropy io.Reader
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{entropy: rand.Reader}
}

// Generate returns a new id. If the entropy source fails it falls back to a
// random v4 id rather than failing the write.
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7FromReader(g.entropy)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
