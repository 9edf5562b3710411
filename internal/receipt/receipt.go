package receipt

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/go-pdf/fpdf"
)

var ErrIncompletePayment = errors.New("payment record is missing required fields")

// Customer is the optional profile printed on the receipt.
type Customer struct {
	Name  string
	Email string
}

// Generate lays a completed purchase out as a PDF. No network call, no
// persistence; callers trigger the download themselves.
func Generate(p domain.TrackedPayment, customer Customer, currencySymbol string) ([]byte, error) {
	if p.Reference == "" || p.EventTitle == "" || p.Amount <= 0 {
		return nil, ErrIncompletePayment
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(0, 12, "EventFlow")
	doc.Ln(14)

	doc.SetFont("Helvetica", "B", 14)
	doc.Cell(0, 10, "Payment Receipt")
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	name := customer.Name
	if name == "" {
		name = "Guest"
	}
	line("Billed to", name)
	if customer.Email != "" {
		line("Email", customer.Email)
	}
	line("Reference", p.Reference)
	line("Date", p.TrackedAt.Format("02 Jan 2006 15:04"))
	doc.Ln(6)

	line("Event", p.EventTitle)
	line("Tickets", fmt.Sprintf("%d", p.Tickets))
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(45, 10, "Total", "T", 0, "L", false, 0, "")
	doc.CellFormat(0, 10, fmt.Sprintf("%s%.2f", currencySymbol, float64(p.Amount)/100), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
