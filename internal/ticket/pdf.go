package ticket

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/campushq/seminar-registration/internal/model"
)

// PDF renders a printable A5 entry ticket: seminar details, the
// attendee's name, the seat label and the ticket id with its QR
// code.
func PDF(sem *model.Seminar, reg *model.Registration) ([]byte, error) {
	qr, err := QRPNG(reg.TicketID, 256)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Seminar Ticket "+reg.TicketID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, sem.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s at %s", sem.Date, sem.Time), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, sem.Venue, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, reg.StudentName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "Seat "+reg.SeatLabel, "", 1, "C", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(qr))
	pageW, _ := pdf.GetPageSize()
	qrSize := 50.0
	pdf.ImageOptions("ticket-qr", (pageW-qrSize)/2, pdf.GetY()+2, qrSize, qrSize, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 6)

	pdf.SetFont("Courier", "B", 14)
	pdf.CellFormat(0, 8, reg.TicketID, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, "Present this ticket at the entrance. Valid for one entry.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
