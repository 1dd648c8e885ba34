// Package ticket renders a registration's ticket as a QR code or a
// printable PDF.  Both artifacts encode only the ticket id; the
// guard-side scanner resolves everything else through verification.
package ticket

import qrcode "github.com/skip2/go-qrcode"

// QRPNG encodes a ticket id as a PNG QR code with the given pixel
// size.  Medium error correction matches what phone cameras handle
// comfortably on printed tickets.
func QRPNG(ticketID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(ticketID, qrcode.Medium, size)
}
