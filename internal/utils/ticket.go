package utils

import (
	"strings"

	"github.com/google/uuid"
)

// TicketIDLength is the fixed length of ticket identifiers.
const TicketIDLength = 8

// NewTicketID generates an opaque ticket identifier: the first group
// of a random UUID, uppercased — 8 hex characters drawn from 32 bits
// of a 128-bit random source.  Not a secret, just practically
// unique; the store's unique key catches the rare collision and the
// caller regenerates.
func NewTicketID() string {
	return strings.ToUpper(uuid.NewString()[:TicketIDLength])
}

// NormalizeTicketID upper-cases and trims a scanned ticket id so
// verification is case-insensitive.
func NormalizeTicketID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
