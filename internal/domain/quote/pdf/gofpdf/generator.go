package gofpdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"squeegee-samurai/go_backend/internal/domain/quote/pdf"
)

const disclaimer = "*All quotes are estimates subject to change upon on-site evaluation. " +
	"Final pricing may vary based on window height, condition, accessibility, and safety requirements. " +
	"We strive to provide accurate estimates but reserve the right to adjust pricing to reflect the actual scope of work."

type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(doc pdf.Document) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("Squeegee Samurai Free Estimate", false)
	p.SetCreationDate(doc.CreatedAt)
	p.AddPage()

	// Header
	p.SetFont("Helvetica", "B", 18)
	p.SetTextColor(26, 32, 44)
	p.Cell(0, 10, "Squeegee Samurai Free Estimate")
	p.Ln(8)
	p.SetFont("Helvetica", "I", 11)
	p.SetTextColor(113, 128, 150)
	p.Cell(0, 6, "Clarity through Pane")
	p.Ln(8)
	p.SetDrawColor(229, 62, 62)
	p.SetLineWidth(0.8)
	p.Line(10, p.GetY(), 200, p.GetY())
	p.Ln(8)

	// Quote details
	p.SetTextColor(45, 55, 72)
	p.SetFont("Helvetica", "B", 13)
	p.Cell(0, 8, "Quote Details")
	p.Ln(9)

	detail := func(label, value string) {
		p.SetFont("Helvetica", "", 10)
		p.SetTextColor(74, 85, 104)
		p.Cell(50, 6, label)
		p.SetFont("Helvetica", "B", 10)
		p.SetTextColor(26, 32, 44)
		p.Cell(0, 6, value)
		p.Ln(6)
	}
	detail("Quote ID:", doc.QuoteID)
	detail("Prepared For:", preparedFor(doc))
	detail("Email:", doc.Contact.Email)
	detail("Date:", doc.CreatedAt.Format("January 2, 2006"))
	if doc.Segment != "" {
		detail("Service Type:", doc.Segment)
	}
	p.Ln(6)

	// Pricing breakdown
	p.SetFont("Helvetica", "B", 13)
	p.SetTextColor(45, 55, 72)
	p.Cell(0, 8, "Pricing")
	p.Ln(10)
	for _, line := range doc.Breakdown {
		p.SetFont("Helvetica", "", 11)
		p.SetTextColor(74, 85, 104)
		p.Cell(130, 7, line.Label)
		p.SetFont("Helvetica", "B", 11)
		p.SetTextColor(26, 32, 44)
		p.CellFormat(0, 7, formatDollars(line.AmountCents), "", 0, "R", false, 0, "")
		p.Ln(7)
	}
	p.Ln(4)
	p.SetDrawColor(45, 55, 72)
	p.Line(10, p.GetY(), 200, p.GetY())
	p.Ln(3)
	p.SetFont("Helvetica", "B", 14)
	p.SetTextColor(26, 32, 44)
	p.Cell(130, 9, "Total Estimate")
	p.SetTextColor(229, 62, 62)
	p.CellFormat(0, 9, formatDollars(doc.TotalCents), "", 0, "R", false, 0, "")

	// Footer
	p.SetY(-45)
	p.SetFont("Helvetica", "", 8)
	p.SetTextColor(113, 128, 150)
	p.MultiCell(0, 4, disclaimer, "", "L", false)
	p.Ln(3)
	p.SetFont("Helvetica", "", 9)
	p.SetTextColor(74, 85, 104)
	p.CellFormat(0, 5, "Questions? Contact us at (540) 335-1059 or email@squeegee-samurai.com", "", 0, "C", false, 0, "")

	if err := p.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// preparedFor resolves the addressee: business name, then full name, then
// the bare email (commercial leads often carry email only).
func preparedFor(doc pdf.Document) string {
	if doc.BusinessName != "" {
		return doc.BusinessName
	}
	if doc.Contact.FirstName != "" && doc.Contact.LastName != "" {
		return doc.Contact.FirstName + " " + doc.Contact.LastName
	}
	return doc.Contact.Email
}

func formatDollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
